package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"baka-api/config"
	"baka-api/internal/application/ports"
	domain "baka-api/internal/domain/user"
	"baka-api/internal/infrastructure/metrics"
	"baka-api/internal/infrastructure/mq"
)

type UserService struct {
	cfg            config.APP
	userRepository domain.Repository
	tokens         ports.TokenGenerator
	mq             ports.EventPublisher
	mCounter       *prometheus.CounterVec
	now            func() time.Time
}

func NewUserService(
	cfg config.APP,
	userRepository domain.Repository,
	tokens ports.TokenGenerator,
	mq ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		cfg:            cfg,
		userRepository: userRepository,
		tokens:         tokens,
		mq:             mq,
		mCounter:       mCounter,
		now:            time.Now,
	}
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return us.userRepository.FetchUserByEmail(ctx, email)
}

func (us *UserService) FindByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return us.userRepository.FetchUserByID(ctx, id)
}

func (us *UserService) FindByToken(ctx context.Context, token string) (*domain.User, error) {
	return us.userRepository.FetchUserByToken(ctx, token)
}

func (us *UserService) FindUsers(ctx context.Context) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = domain.Users{}
	}

	return users, nil
}

func (us *UserService) CreateUser(ctx context.Context, req ports.NewUser) (*domain.User, error) {
	u := domain.NewAccount(req.Username, req.Name, req.Email, req.UploadLimitMB, us.now())

	tok, err := us.tokens.Generate(u)
	if err != nil {
		return nil, err
	}
	u.Token = tok

	uRet, err := us.userRepository.CreateUser(ctx, *u)
	if err != nil {
		return nil, err
	}

	us.mq.Publish(mq.NewUserEvent(mq.ActionUserCreated, uRet))
	us.mCounter.WithLabelValues(metrics.UserCreated).Inc()

	return uRet, nil
}

// DeleteUser honours the retention switch as configured at startup: soft
// delete keeps the row and its files and links, hard delete removes the row.
func (us *UserService) DeleteUser(ctx context.Context, token string) (*domain.User, error) {
	u, err := us.userRepository.DeleteUser(ctx, token, !us.cfg.PreserveDeleted)
	if err != nil || u == nil {
		return nil, err
	}

	us.mq.Publish(mq.NewUserEvent(mq.ActionUserDeleted, u))
	us.mCounter.WithLabelValues(metrics.UserDeleted).Inc()

	return u, nil
}

func (us *UserService) DisableUser(ctx context.Context, token string) (*domain.User, error) {
	u, err := us.userRepository.DisableUser(ctx, token)
	if err != nil || u == nil {
		return nil, err
	}

	us.mq.Publish(mq.NewUserEvent(mq.ActionUserDisabled, u))
	us.mCounter.WithLabelValues(metrics.UserDisabled).Inc()

	return u, nil
}

// ResetToken swaps the token in place; the old value stops resolving as soon
// as the transaction commits.
func (us *UserService) ResetToken(ctx context.Context, token string) (*domain.User, error) {
	u, err := us.userRepository.ResetToken(ctx, token, us.tokens.Generate)
	if err != nil || u == nil {
		return nil, err
	}

	us.mq.Publish(mq.NewUserEvent(mq.ActionUserTokenReset, u))
	us.mCounter.WithLabelValues(metrics.UserTokenReset).Inc()

	return u, nil
}
