package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the authenticated session ID.
const SessionCookieName = "session_id"

const contextKeyUserID = "user_id"
const contextKeySessionID = "session_id_value"

// UserIDFromContext returns the current user ID set by RequireSession. 0 if not set.
func UserIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// SessionIDFromContext returns the session ID set by RequireSession.
func SessionIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeySessionID)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// RequireSession returns a middleware that checks for a valid session cookie
// and sets the current user and session IDs in context. If missing or
// invalid, responds with 401.
func RequireSession(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		userID, ok := sessions.GetUserID(c.Request.Context(), sessionID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Set(contextKeySessionID, sessionID)
		c.Next()
	}
}
