package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AbortWithInternal sends a 500 Internal Server Error response and aborts the
// request. The message is a generic one; internal detail stays in the logs.
func AbortWithInternal(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, NewAPIError("Internal server error", nil))
}
