package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"baka-api/internal/application/ports"
)

type FakeAuthorizer struct {
	AuthorizeFunc func(ctx context.Context, credential, required string) (ports.AuthDecision, error)
	gotCredential string
	gotRequired   string
}

func (f *FakeAuthorizer) Authorize(ctx context.Context, credential, required string) (ports.AuthDecision, error) {
	f.gotCredential = credential
	f.gotRequired = required
	return f.AuthorizeFunc(ctx, credential, required)
}

func TestCredential(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "missing", header: "", want: ""},
		{name: "bearer", header: "Bearer abc123", want: "abc123"},
		{name: "bearer lowercase", header: "bearer abc123", want: "abc123"},
		{name: "raw token", header: "abc123", want: "abc123"},
		{name: "padded", header: "  Bearer   abc123  ", want: "abc123"},
		{name: "bearer only", header: "Bearer ", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			assert.Equal(t, tt.want, Credential(c))
		})
	}
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name          string
		decision      ports.AuthDecision
		err           error
		debug         bool
		wantStatus    int
		wantError     string
		wantException bool
		wantReached   bool
	}{
		{
			name:        "authorized",
			decision:    ports.AuthDecision{Authorized: true},
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
		{
			name:       "denied",
			decision:   ports.AuthDecision{Reason: "Insufficient permissions"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Insufficient permissions",
		},
		{
			name:       "store failure",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "500 Internal Server Error",
		},
		{
			name:          "store failure in debug",
			err:           errors.New("db down"),
			debug:         true,
			wantStatus:    http.StatusInternalServerError,
			wantError:     "500 Internal Server Error",
			wantException: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)

			fa := &FakeAuthorizer{
				AuthorizeFunc: func(context.Context, string, string) (ports.AuthDecision, error) {
					return tt.decision, tt.err
				},
			}

			reached := false
			r := gin.New()
			r.GET("/x", RequireCapability(fa, "su_full", tt.debug, zap.NewNop()), func(c *gin.Context) {
				reached = true
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("Authorization", "Bearer secret-token")
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantReached, reached)
			assert.Equal(t, "secret-token", fa.gotCredential)
			assert.Equal(t, "su_full", fa.gotRequired)

			if tt.wantError != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.wantError, body["error"])
				assert.EqualValues(t, tt.wantStatus, body["code"])
				_, hasException := body["exception"]
				assert.Equal(t, tt.wantException, hasException)
			}
		})
	}
}
