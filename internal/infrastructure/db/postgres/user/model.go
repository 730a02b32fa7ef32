package user

import (
	"time"
)

type (
	User struct {
		ID            int64
		Username      string
		Name          string
		Email         string
		Token         string
		UploadLimitMB float64
		CreatedAt     time.Time
		InitialIP     *string
		Deleted       bool
		Disabled      bool
		AccountType   string
	}
	Users []*User

	File struct {
		ID            int64
		BackendFileID string
		ExternalID    string
		FileName      string
		Extension     string
		IP            string
		Deleted       bool
		SizeMB        float64
		CreatedAt     time.Time
		UploaderID    int64
	}

	Link struct {
		ID          int64
		Destination string
		ExternalID  string
		IP          string
		Deleted     bool
		CreatedAt   time.Time
		UploaderID  int64
	}
)
