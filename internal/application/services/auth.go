package services

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"baka-api/internal/application/ports"
	"baka-api/internal/domain/user"
	"baka-api/internal/infrastructure/metrics"
)

// Denial reasons are text only; callers get no other signal about why a
// credential was refused.
const (
	ReasonMissingToken     = "No token provided"
	ReasonInvalidToken     = "Invalid token"
	ReasonAccountDisabled  = "Account is disabled"
	ReasonInsufficientTier = "Insufficient permissions"
)

type AuthService struct {
	userRepository user.Repository
	mCounter       *prometheus.CounterVec
}

func NewAuthService(
	userRepository user.Repository,
	mCounter *prometheus.CounterVec,
) ports.Authorizer {
	return &AuthService{
		userRepository: userRepository,
		mCounter:       mCounter,
	}
}

// Authorize checks credential against the account store. It never writes.
func (as *AuthService) Authorize(ctx context.Context, credential, requiredCapability string) (ports.AuthDecision, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return as.deny(ReasonMissingToken), nil
	}

	u, err := as.userRepository.FetchAccountByToken(ctx, credential)
	if err != nil {
		return ports.AuthDecision{}, err
	}

	switch {
	case u == nil, u.Deleted:
		return as.deny(ReasonInvalidToken), nil
	case u.Disabled:
		return as.deny(ReasonAccountDisabled), nil
	case !u.HasCapability(requiredCapability):
		return as.deny(ReasonInsufficientTier), nil
	}

	return ports.AuthDecision{Authorized: true}, nil
}

func (as *AuthService) deny(reason string) ports.AuthDecision {
	as.mCounter.WithLabelValues(metrics.AuthDenied).Inc()

	return ports.AuthDecision{Authorized: false, Reason: reason}
}
