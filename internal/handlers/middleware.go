package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context key under which the authenticated username is stored.
const usernameKey = "username"

// basicAuthMiddleware verifies HTTP Basic credentials against the user
// directory on every request. No token is ever issued; each call re-checks
// the plaintext pair.
func (h *Handler) basicAuthMiddleware(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		c.Header("WWW-Authenticate", `Basic realm="survey_registry"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing or malformed Basic authorization",
		})
		return
	}

	authenticated, err := h.services.Login(c.Request.Context(), username, password)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("auth_check_failed", "username", username, "err", err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "authorization check failed",
		})
		return
	}
	if !authenticated {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid credentials",
		})
		return
	}

	c.Set(usernameKey, username)
	c.Next()
}

// actingUsername returns the username set by basicAuthMiddleware, or "".
func (h *Handler) actingUsername(c *gin.Context) string {
	if v, ok := c.Get(usernameKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
