package file

import (
	"baka-api/internal/domain/file"
)

// URLResolver turns a backend storage id into a public URL.
type URLResolver interface {
	GetPublicURL(key string) string
}

// ToResponseFile projects f. urls may be nil, in which case no url is set.
func ToResponseFile(f *file.File, urls URLResolver) File {
	var out = File{
		BackendFileID: f.BackendFileID,
		DBID:          f.ID,
		ResultCode:    f.ExternalID,
		FileName:      f.Filename,
		Ext:           f.Extension,
		IP:            f.IPUploadedFrom,
		Deleted:       f.Deleted,
		UploaderID:    f.UploaderID(),
		FileSize:      f.SizeMB,
		Timestamp:     f.Epoch(),
		ContentType:   f.ContentType(),
	}
	if urls != nil && f.BackendFileID != "" {
		out.URL = urls.GetPublicURL(f.BackendFileID)
	}

	return out
}

func ToResponseFiles(fs file.Files, urls URLResolver) Files {
	out := make(Files, len(fs))
	for idx, f := range fs {
		out[idx] = ToResponseFile(f, urls)
	}

	return out
}
