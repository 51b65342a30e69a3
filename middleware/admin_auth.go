package middleware

import (
	"errors"
	"net/http"
	"strings"

	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

const sessionKey = "lodge.session"

// credentials reads the username/password header pair, or HTTP Basic as the same pair.
func credentials(c *gin.Context) (string, string, bool) {
	username := strings.TrimSpace(c.GetHeader("username"))
	password := c.GetHeader("password")
	if username != "" && password != "" {
		return username, password, true
	}
	return c.Request.BasicAuth()
}

// AdminAuth resolves the request's session once and stores it on the context.
func AdminAuth(store *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := credentials(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "authentication required", "UNAUTHORIZED")
			return
		}

		session, err := store.Resolve(c.Request.Context(), username, password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "INVALID_CREDENTIALS")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to authenticate", "INTERNAL")
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequirePermission rejects sessions lacking p. It must run after AdminAuth.
func RequirePermission(p services.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "authentication required", "UNAUTHORIZED")
			return
		}
		if !session.Can(p) {
			utils.JSONError(c, http.StatusForbidden, "you do not have permission to do this", "FORBIDDEN")
			return
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) (services.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return services.Session{}, false
	}
	s, ok := v.(services.Session)
	return s, ok
}

// ClientKey identifies a browser for stored preferences: X-Client-ID, else the client IP.
func ClientKey(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader("X-Client-ID")); id != "" {
		return id
	}
	return c.ClientIP()
}
