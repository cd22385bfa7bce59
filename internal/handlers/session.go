package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/xconsult/internal/services"
)

const (
	SessionCookie = "xconsult_session"
	sessionKey    = "session_id"
)

// Sessions attaches the visitor's session to the request, issuing a new
// cookie when the old one is missing or has been evicted.
func Sessions(store *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(SessionCookie)
		sess := store.Open(raw)

		if sess.ID.String() != raw {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID.String(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(sessionKey, sess.ID)
		c.Next()
	}
}

func sessionID(c *gin.Context) uuid.UUID {
	return c.MustGet(sessionKey).(uuid.UUID)
}
