package user

import (
	"baka-api/internal/interface/api/rest/dto/file"
	"baka-api/internal/interface/api/rest/dto/link"
)

type (
	User struct {
		ID          int64      `json:"id"`
		Username    string     `json:"username"`
		Name        string     `json:"name"`
		Email       string     `json:"email"`
		UploadLimit float64    `json:"upload_limit"`
		InitialIP   *string    `json:"initial_ip"`
		Timestamp   string     `json:"timestamp"`
		Token       string     `json:"token"`
		Deleted     bool       `json:"deleted"`
		Disabled    bool       `json:"disabled"`
		AccountType string     `json:"account_type"`
		Links       link.Links `json:"links"`
		Files       file.Files `json:"files"`
	}
	Users []User

	ListResponse struct {
		Users Users `json:"users"`
	}
	DeleteResponse struct {
		Success bool `json:"success"`
		Code    int  `json:"code"`
		Deleted bool `json:"deleted"`
	}
	DisableResponse struct {
		Success  bool `json:"success"`
		Code     int  `json:"code"`
		Disabled bool `json:"disabled"`
	}
	ResetTokenResponse struct {
		NewToken string `json:"new_token"`
	}
)
