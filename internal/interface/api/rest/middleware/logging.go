package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"baka-api/internal/infrastructure/metrics"
)

const maxLogBodySize = 1 << 12 // 4 KB

type readCloser struct {
	io.Reader
	io.Closer
}

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request != nil && c.Request.Body != nil {
			ct := c.GetHeader("Content-Type")
			if strings.HasPrefix(ct, "multipart/form-data") {
				body = "<multipart/form-data omitted>"
			} else {
				var buf bytes.Buffer
				orig := c.Request.Body
				_, _ = io.Copy(&buf, io.LimitReader(orig, maxLogBodySize))
				body = buf.String()
				// handlers still see the whole body, not just the logged prefix
				c.Request.Body = readCloser{
					Reader: io.MultiReader(bytes.NewReader(buf.Bytes()), orig),
					Closer: orig,
				}
			}
		}

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues(metrics.AppRequests).Inc()
		}

		// Raw paths carry tokens; only the matched route pattern is logged.
		route := c.FullPath()
		if route == "" {
			route = "<unmatched>"
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("url", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("credential", MaskCredential(Credential(c))),
		)
	}
}

// MaskCredential keeps the last four characters of a token for correlation.
func MaskCredential(tok string) string {
	if tok == "" {
		return ""
	}
	if len(tok) <= 8 {
		return "****"
	}
	return "****" + tok[len(tok)-4:]
}
