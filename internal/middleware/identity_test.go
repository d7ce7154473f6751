package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func runIdentity(t *testing.T, secret string, mutate func(*http.Request)) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/my-reservations", nil)
	mutate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got string
	h := Identity(secret)(func(c echo.Context) error {
		got, _ = c.Get("user_id").(string)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, got
}

func signedToken(t *testing.T, secret, sub string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	t.Run("accepts the identity header", func(t *testing.T) {
		rec, got := runIdentity(t, "", func(r *http.Request) {
			r.Header.Set(UserIDHeader, "user-7")
		})
		if rec.Code != http.StatusOK || got != "user-7" {
			t.Fatalf("code=%d user_id=%q", rec.Code, got)
		}
	})

	t.Run("trims header whitespace", func(t *testing.T) {
		rec, got := runIdentity(t, "", func(r *http.Request) {
			r.Header.Set(UserIDHeader, "  user-7  ")
		})
		if rec.Code != http.StatusOK || got != "user-7" {
			t.Fatalf("code=%d user_id=%q", rec.Code, got)
		}
	})

	t.Run("bearer subject wins over the header", func(t *testing.T) {
		rec, got := runIdentity(t, "sekrit", func(r *http.Request) {
			r.Header.Set(UserIDHeader, "header-user")
			r.Header.Set("Authorization", "Bearer "+signedToken(t, "sekrit", "token-user"))
		})
		if rec.Code != http.StatusOK || got != "token-user" {
			t.Fatalf("code=%d user_id=%q", rec.Code, got)
		}
	})

	t.Run("bad token falls back to the header", func(t *testing.T) {
		rec, got := runIdentity(t, "sekrit", func(r *http.Request) {
			r.Header.Set(UserIDHeader, "header-user")
			r.Header.Set("Authorization", "Bearer "+signedToken(t, "wrong-secret", "token-user"))
		})
		if rec.Code != http.StatusOK || got != "header-user" {
			t.Fatalf("code=%d user_id=%q", rec.Code, got)
		}
	})

	t.Run("401 with no identity at all", func(t *testing.T) {
		rec, _ := runIdentity(t, "sekrit", func(r *http.Request) {})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
