package validator

import (
	"math"
	"net/mail"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"baka-api/internal/application/ports"
	"baka-api/internal/domain/user"
	dto "baka-api/internal/interface/api/rest/dto/user"
)

const (
	maxUsernameLen = 64
	maxNameLen     = 128
)

// ParseID parses a path id. Anything that is not a positive integer can
// never match a stored user.
func ParseID(s string) (user.ID, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return user.ID(id), true
}

// ValidateCreateUser normalizes r and checks it. errs is nil when the request
// is acceptable.
func ValidateCreateUser(r dto.CreateRequest) (ports.NewUser, map[string]string) {
	errs := make(map[string]string)

	// Normalize
	username := norm.NFC.String(strings.TrimSpace(r.Username))
	name := norm.NFC.String(strings.TrimSpace(r.Name))
	email := strings.TrimSpace(r.Email)

	// username (required + length + no control chars)
	if username == "" {
		errs["username"] = "username is required"
	} else if utf8.RuneCountInString(username) > maxUsernameLen {
		errs["username"] = "username must be at most 64 characters"
	} else if hasControl(username) {
		errs["username"] = "username contains control characters"
	}

	// name (optional + length)
	if utf8.RuneCountInString(name) > maxNameLen {
		errs["name"] = "name must be at most 128 characters"
	} else if hasControl(name) {
		errs["name"] = "name contains control characters"
	}

	// email (required + format)
	if email == "" {
		errs["email"] = "email is required"
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs["email"] = "invalid email format"
	}

	// upload_limit (non-negative, finite)
	if r.UploadLimit < 0 || math.IsInf(r.UploadLimit, 0) || math.IsNaN(r.UploadLimit) {
		errs["upload_limit"] = "upload_limit must be a non-negative number"
	}

	if len(errs) > 0 {
		return ports.NewUser{}, errs
	}

	return ports.NewUser{
		Username:      username,
		Name:          name,
		Email:         email,
		UploadLimitMB: r.UploadLimit,
	}, nil
}

func hasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
