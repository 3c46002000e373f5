// Package httpapi exposes the admin service over HTTP: JSON handlers, the
// session cookie transport, and the authentication/authorization middleware.
package httpapi

import (
	"net/http"
	"time"
)

// sessionCookieName matches the cookie the web front end expects.
const sessionCookieName = "token"

// CookieStore persists the session token at the transport boundary. The rest
// of the server only ever calls Set/Get/Clear, so swapping the cookie for a
// bearer header would not touch the authentication logic.
type CookieStore struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

func NewCookieStore(secure bool, maxAge time.Duration) *CookieStore {
	return &CookieStore{Name: sessionCookieName, Secure: secure, MaxAge: maxAge}
}

// Set writes the session cookie. HttpOnly keeps it away from scripts,
// SameSite=Lax keeps it off cross-site requests.
func (c *CookieStore) Set(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Get returns the session token from the request, or "" when absent.
func (c *CookieStore) Get(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Clear expires the session cookie on the client.
func (c *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
