package middleware

import (
	"errors"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"promfeed/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a generic 500. The panic value and, in debug mode,
// the stack are logged but never written to the client.
func Recovery(logger *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if err, ok := recovered.(error); ok && isBrokenPipe(err) {
			c.Abort()
			return
		}

		if gin.IsDebugging() {
			logger.Error("[Recovery] panic recovered on %s %s: %v\n%s",
				c.Request.Method, c.Request.URL.Path, recovered, debug.Stack())
		} else {
			logger.Error("[Recovery] panic recovered on %s %s: %v",
				c.Request.Method, c.Request.URL.Path, recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

func isBrokenPipe(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr.Err, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
