// internal/common/errors/http.go
package errors

import (
	"github.com/gin-gonic/gin"
)

// Response is the wire shape every relay endpoint returns: a boolean flag
// plus an optional human-readable message. No internals leak through it.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// WriteError converts err to a StandardError and writes the JSON error
// response with the mapped status code.
func WriteError(c *gin.Context, err error) {
	stdErr := AsStandardError(err)
	c.JSON(stdErr.HTTPStatus(), Response{Success: false, Error: stdErr.Message})
}

// WriteSuccess writes the success acknowledgment.
func WriteSuccess(c *gin.Context) {
	c.JSON(200, Response{Success: true})
}
