package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	MsgBadRequest = "400 Bad Request"
	MsgNotFound   = "404 Not Found"
	MsgInternal   = "500 Internal Server Error"
)

// Error is the body of every failed request. Code always equals the HTTP
// status. Exception is only filled in debug mode.
type Error struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      int    `json:"code"`
	Exception string `json:"exception,omitempty"`
}

func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, Error{Success: false, Error: msg, Code: code})
}

func Unauthorized(c *gin.Context, reason string) {
	Abort(c, http.StatusUnauthorized, reason)
}

func NotFound(c *gin.Context) {
	Abort(c, http.StatusNotFound, MsgNotFound)
}

func BadRequest(c *gin.Context, detail string) {
	msg := MsgBadRequest
	if detail != "" {
		msg += ": " + detail
	}
	Abort(c, http.StatusBadRequest, msg)
}

// Internal reports an unexpected failure. err text reaches the client only
// when debug is set.
func Internal(c *gin.Context, debug bool, err error) {
	body := Error{Success: false, Error: MsgInternal, Code: http.StatusInternalServerError}
	if debug && err != nil {
		body.Exception = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}
