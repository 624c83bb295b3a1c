package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the flat error body every endpoint returns. The message is the
// whole contract; the cause stays server-side.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

// Abort records the cause on the gin context for the error middleware and
// writes the response.
func Abort(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("Abort: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
