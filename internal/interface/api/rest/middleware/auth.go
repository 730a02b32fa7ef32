package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"baka-api/internal/application/ports"
	"baka-api/internal/interface/api/rest/response"
)

const bearerScheme = "Bearer"

// Credential reads the caller token from the Authorization header. Both
// "Bearer <token>" and a bare token are accepted.
func Credential(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if scheme, rest, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, bearerScheme) {
		return strings.TrimSpace(rest)
	}
	if strings.EqualFold(h, bearerScheme) {
		return ""
	}
	return h
}

// RequireCapability aborts with 401 unless the caller holds at least the
// required account tier. Nothing downstream runs on denial.
func RequireCapability(
	authorizer ports.Authorizer,
	required string,
	debug bool,
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := authorizer.Authorize(c.Request.Context(), Credential(c), required)
		if err != nil {
			logger.Error("Authorize() error", zap.Error(err))
			response.Internal(c, debug, err)
			return
		}
		if !decision.Authorized {
			response.Unauthorized(c, decision.Reason)
			return
		}

		c.Next()
	}
}
