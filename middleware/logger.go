package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		line := "%s %s %s %d %s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Writer.Status(), time.Since(start)}
		if s, ok := CurrentSession(c); ok {
			line += " user=%s"
			args = append(args, s.Username)
		}
		log.Printf(line, args...)
	}
}
