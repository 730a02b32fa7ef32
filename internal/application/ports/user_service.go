package ports

import (
	"context"

	"baka-api/internal/domain/user"
)

type NewUser struct {
	Username      string
	Name          string
	Email         string
	UploadLimitMB float64
}

// UserService is the user directory. Finders and mutators return (nil, nil)
// when nothing matches the key.
type UserService interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id user.ID) (*user.User, error)
	FindByToken(ctx context.Context, token string) (*user.User, error)
	FindUsers(ctx context.Context) (user.Users, error)
	CreateUser(ctx context.Context, req NewUser) (*user.User, error)
	DeleteUser(ctx context.Context, token string) (*user.User, error)
	DisableUser(ctx context.Context, token string) (*user.User, error)
	ResetToken(ctx context.Context, token string) (*user.User, error)
}
