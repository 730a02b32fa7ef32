package ports

import (
	"context"
)

type AuthDecision struct {
	Authorized bool
	Reason     string
}

type Authorizer interface {
	Authorize(ctx context.Context, credential, requiredCapability string) (AuthDecision, error)
}
