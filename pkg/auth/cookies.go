package auth

import (
	"net/http"
	"time"
)

// CookieName is the auth cookie carrying the signed session token.
const CookieName = "auth_token"

// CookieExpiry is the cookie lifetime. It intentionally outlives the token:
// token expiry is enforced by Verify, not by the browser.
const CookieExpiry = 7 * 24 * time.Hour

// AttachSessionCookie sets the auth cookie on the response.
func AttachSessionCookie(w http.ResponseWriter, token, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   domain,
		Expires:  time.Now().Add(CookieExpiry),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ExpireSessionCookie deletes the auth cookie.
func ExpireSessionCookie(w http.ResponseWriter, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
