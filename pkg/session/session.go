package session

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CookieName is the session cookie carrying the upstream bearer token.
const CookieName = "dj_token"

// HeaderSource abstracts the inbound request for token extraction, so cookie
// parsing is implemented once regardless of the request type behind it.
type HeaderSource interface {
	// HeaderValue returns the first value of the named header and whether it
	// was present.
	HeaderValue(name string) (string, bool)
}

// RequestSource adapts *http.Request to HeaderSource.
type RequestSource struct {
	Request *http.Request
}

func (s RequestSource) HeaderValue(name string) (string, bool) {
	value := s.Request.Header.Get(name)
	if value == "" {
		return "", false
	}
	return value, true
}

// Issue returns the session cookie directive for a freshly obtained token.
// HttpOnly keeps it away from client scripts; no expiry makes it session-scoped.
func Issue(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Revoke returns a cookie directive that makes the browser drop the session
// cookie immediately.
func Revoke() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
	}
}

// Extract returns the session token from the Cookie header, if present.
// Absence is not an error.
func Extract(src HeaderSource) (string, bool) {
	header, ok := src.HeaderValue("Cookie")
	if !ok {
		return "", false
	}

	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, found := strings.Cut(part, "=")
		if !found || name != CookieName {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			return decoded, true
		}
		return value, true
	}

	return "", false
}

// FromRequest extracts the session token directly from an *http.Request.
func FromRequest(r *http.Request) (string, bool) {
	return Extract(RequestSource{Request: r})
}
