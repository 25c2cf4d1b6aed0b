// Package session carries session tokens between the browser and the server
// in an HttpOnly cookie.
package session

import (
	"net/http"
	"time"
)

// CookieName is the name of the session cookie.
const CookieName = "jobtracker_session"

// Cookies writes and clears the session cookie.
type Cookies struct {
	Secure bool
}

// FromRequest returns the session token carried by r, or "".
func FromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Set stores token in the session cookie until expiresAt.
func (c Cookies) Set(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (c Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
