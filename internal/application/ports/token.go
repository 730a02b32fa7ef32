package ports

import "baka-api/internal/domain/user"

type TokenGenerator interface {
	Generate(u *user.User) (string, error)
}
