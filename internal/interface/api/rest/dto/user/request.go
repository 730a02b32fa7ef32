package user

// CreateRequest is the create-user body. There is no account type field:
// new accounts always get the upload tier.
type CreateRequest struct {
	Name        string  `json:"name"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	UploadLimit float64 `json:"upload_limit"`
}
