package helpers

import (
	"net/http"
	"strings"
	"time"
)

// RefreshCookieName es el nombre de la cookie que transporta el refresh token.
// El access token nunca viaja en cookie, solo en el body JSON.
const RefreshCookieName = "refresh_token"

func ParseSameSite(s string) http.SameSite {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func BuildCookie(name, value, domain, sameSite string, secure bool, ttl time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: ParseSameSite(sameSite),
	}
	if strings.TrimSpace(domain) != "" {
		ck.Domain = domain
	}
	if ttl > 0 {
		ck.Expires = time.Now().Add(ttl).UTC()
		ck.MaxAge = int(ttl.Seconds())
	}
	return ck
}

func BuildDeletionCookie(name, domain, sameSite string, secure bool) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: ParseSameSite(sameSite),
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
	}
	if strings.TrimSpace(domain) != "" {
		ck.Domain = domain
	}
	return ck
}

// BuildRefreshCookie arma la cookie HttpOnly del refresh token.
func BuildRefreshCookie(value, domain, sameSite string, secure bool, ttl time.Duration) *http.Cookie {
	return BuildCookie(RefreshCookieName, value, domain, sameSite, secure, ttl)
}

// BuildRefreshDeletionCookie arma la cookie que borra el refresh token
// (Max-Age negativo + Expires en el pasado).
func BuildRefreshDeletionCookie(domain, sameSite string, secure bool) *http.Cookie {
	return BuildDeletionCookie(RefreshCookieName, domain, sameSite, secure)
}

// ReadRefreshCookie lee el refresh token de la cookie del request, o "".
func ReadRefreshCookie(r *http.Request) string {
	ck, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return ""
	}
	return ck.Value
}
