package link

import (
	"baka-api/internal/domain/link"
)

func ToResponseLink(l *link.Link) Link {
	return Link{
		Dest:       l.Destination,
		IP:         l.UploadedFromIP,
		Deleted:    l.Deleted,
		ExternalID: l.ExternalID,
		DBID:       l.ID,
		UploaderID: l.UploaderID(),
		Timestamp:  l.Epoch(),
	}
}

func ToResponseLinks(ls link.Links) Links {
	out := make(Links, len(ls))
	for idx, l := range ls {
		out[idx] = ToResponseLink(l)
	}

	return out
}
