package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baka-api/config"
	"baka-api/internal/application/ports"
	domain "baka-api/internal/domain/user"
	"baka-api/internal/infrastructure/mq"
)

type userFixture struct {
	svc    *UserService
	repo   *memRepo
	tokens *seqTokens
	pub    *fakePublisher
}

func newUserFixture(t *testing.T, preserveDeleted bool) userFixture {
	t.Helper()

	repo := newMemRepo()
	tokens := &seqTokens{}
	pub := &fakePublisher{}
	svc := NewUserService(
		config.APP{PreserveDeleted: preserveDeleted},
		repo,
		tokens,
		pub,
		newCounter(),
	).(*UserService)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	return userFixture{svc: svc, repo: repo, tokens: tokens, pub: pub}
}

func sampleNewUser() ports.NewUser {
	return ports.NewUser{Name: "A", Username: "a", Email: "a@x.com", UploadLimitMB: 500}
}

func TestUserService_CreateUser_Defaults(t *testing.T) {
	f := newUserFixture(t, false)
	ctx := context.Background()

	u, err := f.svc.CreateUser(ctx, sampleNewUser())
	require.NoError(t, err)

	assert.NotZero(t, u.ID)
	assert.NotEmpty(t, u.Token)
	assert.Equal(t, domain.AccountTypeUpload, u.AccountType)
	assert.False(t, u.Deleted)
	assert.False(t, u.Disabled)
	assert.Nil(t, u.InitialIP)
	assert.Equal(t, 500.0, u.UploadLimitMB)

	byToken, err := f.svc.FindByToken(ctx, u.Token)
	require.NoError(t, err)
	require.NotNil(t, byToken)
	assert.Equal(t, u.ID, byToken.ID)

	assert.Equal(t, []string{mq.ActionUserCreated}, f.pub.actions())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.svc.mCounter.WithLabelValues("user_created_total")))
}

func TestUserService_CreateUser_TokenFailure(t *testing.T) {
	f := newUserFixture(t, false)
	f.tokens.err = errors.New("no entropy")

	u, err := f.svc.CreateUser(context.Background(), sampleNewUser())
	require.Error(t, err)
	assert.Nil(t, u)
	assert.Empty(t, f.repo.users)
	assert.Empty(t, f.pub.actions())
}

func TestUserService_ResetToken(t *testing.T) {
	f := newUserFixture(t, false)
	ctx := context.Background()

	u, err := f.svc.CreateUser(ctx, sampleNewUser())
	require.NoError(t, err)
	oldToken := u.Token

	reset, err := f.svc.ResetToken(ctx, oldToken)
	require.NoError(t, err)
	require.NotNil(t, reset)
	assert.NotEqual(t, oldToken, reset.Token)

	gone, err := f.svc.FindByToken(ctx, oldToken)
	require.NoError(t, err)
	assert.Nil(t, gone)

	fresh, err := f.svc.FindByToken(ctx, reset.Token)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, u.ID, fresh.ID)

	again, err := f.svc.ResetToken(ctx, oldToken)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestUserService_DeleteUser_RetentionPolicy(t *testing.T) {
	tests := []struct {
		name            string
		preserveDeleted bool
	}{
		{"hard delete", false},
		{"soft delete", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t, tt.preserveDeleted)
			ctx := context.Background()

			u, err := f.svc.CreateUser(ctx, sampleNewUser())
			require.NoError(t, err)

			deleted, err := f.svc.DeleteUser(ctx, u.Token)
			require.NoError(t, err)
			require.NotNil(t, deleted)

			byID, err := f.svc.FindByID(ctx, u.ID)
			require.NoError(t, err)
			users, err := f.svc.FindUsers(ctx)
			require.NoError(t, err)

			if tt.preserveDeleted {
				require.NotNil(t, byID)
				assert.True(t, byID.Deleted)
				require.Len(t, users, 1)
				assert.True(t, users[0].Deleted)
			} else {
				assert.Nil(t, byID)
				assert.Empty(t, users)
				assert.NotNil(t, users)
			}
			assert.Equal(t, []string{mq.ActionUserCreated, mq.ActionUserDeleted}, f.pub.actions())
		})
	}
}

func TestUserService_DisableUser(t *testing.T) {
	f := newUserFixture(t, true)
	ctx := context.Background()

	u, err := f.svc.CreateUser(ctx, sampleNewUser())
	require.NoError(t, err)

	disabled, err := f.svc.DisableUser(ctx, u.Token)
	require.NoError(t, err)
	require.NotNil(t, disabled)
	assert.True(t, disabled.Disabled)
	assert.Equal(t, u.Token, disabled.Token, "disable must not touch the token")

	byEmail, err := f.svc.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, byEmail.Disabled)

	reset, err := f.svc.ResetToken(ctx, u.Token)
	require.NoError(t, err)
	require.NotNil(t, reset)
	assert.True(t, reset.Disabled)

	deleted, err := f.svc.DeleteUser(ctx, reset.Token)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.True(t, deleted.Disabled)
	assert.True(t, deleted.Deleted)
}

func TestUserService_NotFound(t *testing.T) {
	f := newUserFixture(t, false)
	ctx := context.Background()

	u, err := f.svc.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = f.svc.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = f.svc.DeleteUser(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = f.svc.DisableUser(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, u)

	assert.Empty(t, f.pub.actions())
	assert.Empty(t, f.repo.users)
}

func TestUserService_RepositoryErrors(t *testing.T) {
	f := newUserFixture(t, false)
	f.repo.err = errors.New("db down")
	ctx := context.Background()

	_, err := f.svc.FindUsers(ctx)
	require.Error(t, err)
	_, err = f.svc.CreateUser(ctx, sampleNewUser())
	require.Error(t, err)
	_, err = f.svc.DeleteUser(ctx, "x")
	require.Error(t, err)
	_, err = f.svc.DisableUser(ctx, "x")
	require.Error(t, err)
	_, err = f.svc.ResetToken(ctx, "x")
	require.Error(t, err)

	assert.Empty(t, f.pub.actions())
}
