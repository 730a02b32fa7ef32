package link

import (
	"errors"
	"time"

	"baka-api/pkg/filetime"
)

var ErrMissingOwner = errors.New("link: uploader is required")

type (
	// Link is a shortened redirect owned by a user.
	Link struct {
		ID             int64
		Destination    string
		ExternalID     string
		UploadedFromIP string
		Deleted        bool
		Timestamp      time.Time

		uploaderID int64
	}
	Links []*Link
)

func New(uploaderID int64, l Link) (*Link, error) {
	if uploaderID <= 0 {
		return nil, ErrMissingOwner
	}
	l.uploaderID = uploaderID

	return &l, nil
}

func (l *Link) UploaderID() int64 { return l.uploaderID }

func (l *Link) Epoch() string { return filetime.String(l.Timestamp) }
