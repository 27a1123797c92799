package utils

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Recovery turns a panic into a 500. Outside production the body also
// carries the panic value and stack.
func Recovery(production bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		stack := string(debug.Stack())
		log.WithFields(log.Fields{
			"request_id": c.GetString("requestId"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"panic":      fmt.Sprint(recovered),
		}).Error("panic recovered")

		body := gin.H{"message": "Internal server error"}
		if !production {
			body["error"] = fmt.Sprint(recovered)
			body["stack"] = stack
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
