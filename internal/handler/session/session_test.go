package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TomasB/ipcheck/internal/data"
	"github.com/TomasB/ipcheck/internal/history"
	"github.com/gin-gonic/gin"
)

func setupRouter(sessions *history.Sessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(sessions))
	r.GET("/count", func(c *gin.Context) {
		Store(c).Record(c.Query("ip"), data.EmptyRecord(c.Query("ip")))
		c.JSON(http.StatusOK, gin.H{"count": Store(c).Len(), "session": ID(c)})
	})
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"session": ID(c)}) })
	r.DELETE("/session", NewHandler(sessions).End)
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestMiddleware_OpensSession(t *testing.T) {
	sessions := history.NewSessions()
	router := setupRouter(sessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/count?ip=1.1.1.1", nil))

	cookie := sessionCookie(t, w)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly session cookie")
	}
	if sessions.Len() != 1 {
		t.Errorf("expected 1 session, got %d", sessions.Len())
	}
}

func TestMiddleware_ReusesSession(t *testing.T) {
	sessions := history.NewSessions()
	router := setupRouter(sessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/count?ip=1.1.1.1", nil))
	cookie := sessionCookie(t, w)

	req := httptest.NewRequest(http.MethodGet, "/count?ip=8.8.8.8", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if sessionCookie(t, w) != nil {
		t.Error("expected no new cookie for a known session")
	}
	if w.Body.String() != `{"count":2,"session":"`+cookie.Value+`"}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
	if sessions.Len() != 1 {
		t.Errorf("expected 1 session, got %d", sessions.Len())
	}
}

func TestMiddleware_UnknownCookie(t *testing.T) {
	sessions := history.NewSessions()
	router := setupRouter(sessions)

	req := httptest.NewRequest(http.MethodGet, "/count?ip=1.1.1.1", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookie := sessionCookie(t, w)
	if cookie == nil || cookie.Value == "forged" {
		t.Fatal("expected a fresh session for an unknown id")
	}
}

func TestEnd(t *testing.T) {
	sessions := history.NewSessions()
	router := setupRouter(sessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/count?ip=1.1.1.1", nil))
	cookie := sessionCookie(t, w)

	req := httptest.NewRequest(http.MethodDelete, "/session", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	if _, ok := sessions.Get(cookie.Value); ok {
		t.Error("expected session to be ended")
	}
	if sessions.Len() != 0 {
		t.Errorf("expected no live sessions, got %d", sessions.Len())
	}
}

func TestMiddleware_NoSessionUntilStoreUsed(t *testing.T) {
	sessions := history.NewSessions()
	router := setupRouter(sessions)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if sessionCookie(t, w) != nil {
			t.Error("expected no session cookie for a route that never uses history")
		}
		if w.Body.String() != `{"session":""}` {
			t.Errorf("unexpected body %s", w.Body.String())
		}
	}
	if sessions.Len() != 0 {
		t.Errorf("expected no sessions, got %d", sessions.Len())
	}
}

func TestMiddleware_KnownSessionWithoutStore(t *testing.T) {
	sessions := history.NewSessions()
	router := setupRouter(sessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/count?ip=1.1.1.1", nil))
	cookie := sessionCookie(t, w)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Body.String() != `{"session":"`+cookie.Value+`"}` {
		t.Errorf("expected known session to be attached, got %s", w.Body.String())
	}
}

func TestEnd_WithoutSession(t *testing.T) {
	sessions := history.NewSessions()
	router := setupRouter(sessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/session", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	if sessions.Len() != 0 {
		t.Errorf("expected no sessions, got %d", sessions.Len())
	}
}
