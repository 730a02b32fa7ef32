package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"baka-api/internal/domain/user"
	"baka-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.TxBeginner
}

func NewRepository(db postgres.TxBeginner) user.Repository {
	return &Repository{db: db}
}

func scanUser(row pgx.Row) (*User, error) {
	u := new(User)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Name,
		&u.Email,
		&u.Token,
		&u.UploadLimitMB,
		&u.CreatedAt,
		&u.InitialIP,
		&u.Deleted,
		&u.Disabled,
		&u.AccountType,
	)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// fetchOne runs a single-row query inside its own transaction. A missing row
// yields (nil, nil).
func (r *Repository) fetchOne(ctx context.Context, withOwned bool, query string, args ...any) (*user.User, error) {
	var out *user.User
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		m, err := scanUser(tx.QueryRow(ctx, query, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		u := fromDBModel(m)
		if withOwned {
			if err = loadOwned(ctx, tx, user.Users{u}); err != nil {
				return err
			}
		}
		out = u

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// loadOwned fills Files and Links of every user in us with two queries.
func loadOwned(ctx context.Context, tx pgx.Tx, us user.Users) error {
	if len(us) == 0 {
		return nil
	}

	byID := make(map[int64]*user.User, len(us))
	ids := make([]int64, 0, len(us))
	for _, u := range us {
		byID[int64(u.ID)] = u
		ids = append(ids, int64(u.ID))
	}

	rows, err := tx.Query(ctx, SelectFilesByUploaders, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		m := new(File)
		if err = rows.Scan(
			&m.ID,
			&m.BackendFileID,
			&m.ExternalID,
			&m.FileName,
			&m.Extension,
			&m.IP,
			&m.Deleted,
			&m.SizeMB,
			&m.CreatedAt,
			&m.UploaderID,
		); err != nil {
			rows.Close()
			return err
		}
		f, err := fileFromDBModel(m)
		if err != nil {
			rows.Close()
			return fmt.Errorf("file %d: %w", m.ID, err)
		}
		if owner, ok := byID[m.UploaderID]; ok {
			owner.Files = append(owner.Files, f)
		}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return err
	}

	rows, err = tx.Query(ctx, SelectLinksByUploaders, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		m := new(Link)
		if err = rows.Scan(
			&m.ID,
			&m.Destination,
			&m.ExternalID,
			&m.IP,
			&m.Deleted,
			&m.CreatedAt,
			&m.UploaderID,
		); err != nil {
			return err
		}
		l, err := linkFromDBModel(m)
		if err != nil {
			return fmt.Errorf("link %d: %w", m.ID, err)
		}
		if owner, ok := byID[m.UploaderID]; ok {
			owner.Links = append(owner.Links, l)
		}
	}

	return rows.Err()
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	var out user.Users
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, SelectUsers)
		if err != nil {
			return err
		}

		var us Users
		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				rows.Close()
				return err
			}
			us = append(us, u)
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			return err
		}

		out = fromDBModels(us)

		return loadOwned(ctx, tx, out)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	return r.fetchOne(ctx, true, SelectUserByID, int64(id))
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.fetchOne(ctx, true, SelectUserByEmail, email)
}

func (r *Repository) FetchUserByToken(ctx context.Context, token string) (*user.User, error) {
	return r.fetchOne(ctx, true, SelectUserByToken, token)
}

func (r *Repository) FetchAccountByToken(ctx context.Context, token string) (*user.User, error) {
	return r.fetchOne(ctx, false, SelectUserByToken, token)
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := r.fetchOne(
		ctx,
		false,
		InsertUser,
		req.Username, req.Name, req.Email, req.Token, req.UploadLimitMB,
		req.Timestamp, req.InitialIP, req.Deleted, req.Disabled, req.AccountType,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrTokenTaken
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) DeleteUser(ctx context.Context, token string, hard bool) (*user.User, error) {
	// Owned files and links are orphaned by ON DELETE SET NULL.
	if hard {
		return r.fetchOne(ctx, false, DeleteUserByToken, token)
	}

	return r.fetchOne(ctx, false, SoftDeleteUserByToken, token)
}

func (r *Repository) DisableUser(ctx context.Context, token string) (*user.User, error) {
	return r.fetchOne(ctx, false, DisableUserByToken, token)
}

func (r *Repository) ResetToken(ctx context.Context, token string, generate user.TokenFunc) (*user.User, error) {
	var out *user.User
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		m, err := scanUser(tx.QueryRow(ctx, SelectUserByTokenForUpdate, token))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		next, err := generate(fromDBModel(m))
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}

		m, err = scanUser(tx.QueryRow(ctx, UpdateTokenByID, next, m.ID))
		if err != nil {
			if postgres.IsPgUniqueViolation(err) {
				return user.ErrTokenTaken
			}
			return err
		}
		out = fromDBModel(m)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
