package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"baka-api/internal/domain/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) user.Repository {
	return &Repository{db: db}
}

func byID(db *gorm.DB) *gorm.DB { return db.Order("id") }

func preloadOwned(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Files", byID).Preload("Links", byID)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// takeFirst loads the lowest-id row matching cond into m. It reports false
// when nothing matches.
func takeFirst(tx *gorm.DB, m *User, cond string, arg any) (bool, error) {
	err := tx.Where(cond, arg).Order("id").Take(m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) fetchOne(ctx context.Context, withOwned bool, cond string, arg any) (*user.User, error) {
	var out *user.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if withOwned {
			q = preloadOwned(tx)
		}

		var m User
		found, err := takeFirst(q, &m, cond, arg)
		if err != nil || !found {
			return err
		}

		out, err = fromDBModel(&m)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	var out user.Users
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ms []User
		if err := preloadOwned(tx).Order("id").Find(&ms).Error; err != nil {
			return err
		}

		out = make(user.Users, 0, len(ms))
		for i := range ms {
			u, err := fromDBModel(&ms[i])
			if err != nil {
				return err
			}
			out = append(out, u)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	return r.fetchOne(ctx, true, "id = ?", int64(id))
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.fetchOne(ctx, true, "email = ?", email)
}

func (r *Repository) FetchUserByToken(ctx context.Context, token string) (*user.User, error) {
	return r.fetchOne(ctx, true, "token = ?", token)
}

func (r *Repository) FetchAccountByToken(ctx context.Context, token string) (*user.User, error) {
	return r.fetchOne(ctx, false, "token = ?", token)
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	m := toDBModel(&req)
	m.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Files", "Links").Create(m).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, user.ErrTokenTaken
		}
		return nil, err
	}

	return fromDBModel(m)
}

// mutate looks the account up by token and applies the change in one
// transaction. Unknown tokens yield (nil, nil).
func (r *Repository) mutate(ctx context.Context, token string, apply func(tx *gorm.DB, m *User) error) (*user.User, error) {
	var out *user.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m User
		found, err := takeFirst(tx, &m, "token = ?", token)
		if err != nil || !found {
			return err
		}

		if err = apply(tx, &m); err != nil {
			return err
		}

		out, err = fromDBModel(&m)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) DeleteUser(ctx context.Context, token string, hard bool) (*user.User, error) {
	return r.mutate(ctx, token, func(tx *gorm.DB, m *User) error {
		if !hard {
			m.Deleted = true
			return tx.Model(&User{}).Where("id = ?", m.ID).Update("deleted", true).Error
		}

		if err := tx.Model(&File{}).Where("uploader_id = ?", m.ID).Update("uploader_id", nil).Error; err != nil {
			return fmt.Errorf("orphan files: %w", err)
		}
		if err := tx.Model(&Link{}).Where("uploader_id = ?", m.ID).Update("uploader_id", nil).Error; err != nil {
			return fmt.Errorf("orphan links: %w", err)
		}
		return tx.Delete(&User{}, m.ID).Error
	})
}

func (r *Repository) DisableUser(ctx context.Context, token string) (*user.User, error) {
	return r.mutate(ctx, token, func(tx *gorm.DB, m *User) error {
		m.Disabled = true
		return tx.Model(&User{}).Where("id = ?", m.ID).Update("disabled", true).Error
	})
}

func (r *Repository) ResetToken(ctx context.Context, token string, generate user.TokenFunc) (*user.User, error) {
	return r.mutate(ctx, token, func(tx *gorm.DB, m *User) error {
		u, err := fromDBModel(m)
		if err != nil {
			return err
		}
		next, err := generate(u)
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}

		if err = tx.Model(&User{}).Where("id = ?", m.ID).Update("token", next).Error; err != nil {
			if isDuplicate(err) {
				return user.ErrTokenTaken
			}
			return err
		}
		m.Token = next

		return nil
	})
}
