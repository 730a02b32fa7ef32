package user

import (
	"context"
	"errors"
)

// Repository is the user record store. Lookups return (nil, nil) when no
// record matches; mutations return (nil, nil) when the token is unknown.
// Every method runs as a single transaction. Mutations return the account row
// without its owned files and links.
type Repository interface {
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	FetchUserByToken(ctx context.Context, token string) (*User, error)
	FetchUsers(ctx context.Context) (Users, error)
	// FetchAccountByToken loads the account row only, without owned files and links.
	FetchAccountByToken(ctx context.Context, token string) (*User, error)

	CreateUser(ctx context.Context, u User) (*User, error)
	// DeleteUser removes the row when hard is set, otherwise flags it deleted.
	DeleteUser(ctx context.Context, token string, hard bool) (*User, error)
	DisableUser(ctx context.Context, token string) (*User, error)
	ResetToken(ctx context.Context, token string, generate TokenFunc) (*User, error)
}

// ErrTokenTaken is returned by CreateUser when the generated token collides
// with an existing account.
var ErrTokenTaken = errors.New("user: token already in use")
