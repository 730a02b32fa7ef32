package user

import (
	"time"

	"baka-api/internal/domain/file"
	"baka-api/internal/domain/link"
	"baka-api/pkg/filetime"
)

// Account types, lowest privilege first.
const (
	AccountTypeUpload = "su_upload"
	AccountTypeFull   = "su_full"
)

var tierRanks = map[string]int{
	AccountTypeUpload: 1,
	AccountTypeFull:   2,
}

type (
	ID   int64
	User struct {
		ID            ID
		Username      string
		Name          string
		Email         string
		Token         string
		UploadLimitMB float64
		Timestamp     time.Time
		InitialIP     *string
		Deleted       bool
		Disabled      bool
		AccountType   string

		Files file.Files
		Links link.Links
	}
	Users []*User

	// TokenFunc derives a fresh bearer token for u.
	TokenFunc func(u *User) (string, error)
)

// NewAccount builds an unsaved user with the defaults every new account gets.
// The tier is always the upload tier; callers cannot choose it.
func NewAccount(username, name, email string, uploadLimitMB float64, now time.Time) *User {
	return &User{
		Username:      username,
		Name:          name,
		Email:         email,
		UploadLimitMB: uploadLimitMB,
		Timestamp:     now,
		InitialIP:     nil,
		Deleted:       false,
		Disabled:      false,
		AccountType:   AccountTypeUpload,
		Files:         file.Files{},
		Links:         link.Links{},
	}
}

func (u *User) Epoch() string { return filetime.String(u.Timestamp) }

// TierRank orders account types; unknown types rank below every known tier.
func TierRank(accountType string) int { return tierRanks[accountType] }

func (u *User) HasCapability(required string) bool {
	rank := TierRank(u.AccountType)
	return rank > 0 && rank >= TierRank(required)
}
