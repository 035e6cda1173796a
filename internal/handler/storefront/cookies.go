package storefront

import (
	"net/http"

	"github.com/mpetrenko/voltride/internal/cookie"
)

// GetSessionToken retrieves the anonymous session token from the
// voltride_session cookie. Returns empty string if the cookie is absent.
func GetSessionToken(r *http.Request) string {
	return cookie.Get(r, cookie.SessionCookieName)
}

// SetSessionCookie sets the voltride_session cookie with appropriate
// security settings.
func SetSessionCookie(w http.ResponseWriter, token string, cookieConfig *cookie.Config) {
	cookieConfig.SetSession(w, cookie.SessionCookieName, token, cookie.SessionMaxAge)
}
