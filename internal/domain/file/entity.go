package file

import (
	"errors"
	"time"

	"baka-api/pkg/filetime"
)

var ErrMissingOwner = errors.New("file: uploader is required")

type (
	File struct {
		ID             int64
		BackendFileID  string
		ExternalID     string
		Filename       string
		Extension      string
		IPUploadedFrom string
		Deleted        bool
		SizeMB         float64
		Timestamp      time.Time

		uploaderID int64
	}
	Files []*File
)

// New binds f to its uploader. A file never exists without an owner.
func New(uploaderID int64, f File) (*File, error) {
	if uploaderID <= 0 {
		return nil, ErrMissingOwner
	}
	f.uploaderID = uploaderID

	return &f, nil
}

func (f *File) UploaderID() int64 { return f.uploaderID }

func (f *File) ContentType() string { return MimeType(f.Extension) }

func (f *File) Epoch() string { return filetime.String(f.Timestamp) }
