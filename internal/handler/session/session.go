// Package session binds each HTTP client to its own lookup history.
package session

import (
	"net/http"

	"github.com/TomasB/ipcheck/internal/history"
	"github.com/gin-gonic/gin"
)

// CookieName is the cookie carrying the session id.
const CookieName = "ipcheck_session"

const (
	storeKey    = "ipcheck.history"
	idKey       = "ipcheck.session"
	sessionsKey = "ipcheck.sessions"
)

// Middleware attaches the caller's history store to the request context
// when the cookie names a live session. Unknown callers get a session only
// once a handler asks for their Store.
func Middleware(sessions *history.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionsKey, sessions)
		if id, err := c.Cookie(CookieName); err == nil {
			if store, ok := sessions.Get(id); ok {
				c.Set(storeKey, store)
				c.Set(idKey, id)
			}
		}
		c.Next()
	}
}

// Store returns the caller's history store, opening a session and setting
// its cookie when the caller has none.
func Store(c *gin.Context) *history.Store {
	if store, ok := c.Get(storeKey); ok {
		return store.(*history.Store)
	}

	sessions := c.MustGet(sessionsKey).(*history.Sessions)
	id, store := sessions.Open()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(storeKey, store)
	c.Set(idKey, id)
	return store
}

// ID returns the caller's session id, or "" when no session is open.
func ID(c *gin.Context) string {
	return c.GetString(idKey)
}

// Handler manages session lifecycle endpoints.
type Handler struct {
	sessions *history.Sessions
}

// NewHandler creates a new session handler.
func NewHandler(sessions *history.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// End discards the caller's session and its history.
// DELETE /api/v1/session
func (h *Handler) End(c *gin.Context) {
	if id := ID(c); id != "" {
		h.sessions.End(id)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Status(http.StatusNoContent)
}
