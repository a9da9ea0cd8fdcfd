package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DemoCookieName identifies an anonymous demo session. Each demo
// visitor gets an isolated in-memory task store, the way each browser
// gets its own local storage.
const DemoCookieName = "demo_id"

const contextKeyDemoID = "demo_id_value"

// DemoIDFromContext returns the demo session ID set by DemoSession.
func DemoIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyDemoID)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// DemoSession returns a middleware that assigns a demo session cookie
// on first visit. No identity is involved; the cookie only keys the
// visitor's ephemeral store.
func DemoSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(DemoCookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(DemoCookieName, id, 24*60*60, "/", "", false, true)
		}
		c.Set(contextKeyDemoID, id)
		c.Next()
	}
}
