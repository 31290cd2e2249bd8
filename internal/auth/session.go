package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the only transport credential the service reads.
// There is no header fallback; the cookie is the single source of identity.
const SessionCookieName = "token"

// sessionContextKey is where the request gate stores resolved claims.
const sessionContextKey = "user"

// NewSessionCookie builds the cookie that carries a freshly issued token.
func NewSessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie builds a cookie that deletes the session client-side.
// The token itself stays valid until expiry; there is no revocation list.
func ClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CurrentUser returns the authenticated claims resolved by the request gate,
// or nil when the request carried no valid session.
func CurrentUser(c echo.Context) *Claims {
	claims, _ := c.Get(sessionContextKey).(*Claims)
	return claims
}
