package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_CookieAttributes(t *testing.T) {
	cookie := Issue("tok-123")

	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "tok-123", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	// session-scoped: no explicit expiry
	assert.True(t, cookie.Expires.IsZero())
	assert.Zero(t, cookie.MaxAge)
}

func TestRevoke_ExpiresAtEpoch(t *testing.T) {
	cookie := Revoke()

	assert.Equal(t, CookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, time.Unix(0, 0).UTC(), cookie.Expires)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestIssue_RoundTripsThroughResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	http.SetCookie(rec, Issue("tok-123"))

	resp := rec.Result()
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "tok-123", cookies[0].Value)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		noHeader  bool
		wantToken string
		wantFound bool
	}{
		{
			name:      "single cookie",
			header:    "dj_token=tok-123",
			wantToken: "tok-123",
			wantFound: true,
		},
		{
			name:      "among other cookies",
			header:    "a=1; dj_token=tok-123; b=2",
			wantToken: "tok-123",
			wantFound: true,
		},
		{
			name:      "url encoded value",
			header:    "dj_token=tok%20with%20spaces",
			wantToken: "tok with spaces",
			wantFound: true,
		},
		{
			name:      "value containing equals",
			header:    "dj_token=abc=def",
			wantToken: "abc=def",
			wantFound: true,
		},
		{
			name:      "name not present",
			header:    "other=value",
			wantFound: false,
		},
		{
			name:      "malformed pairs skipped",
			header:    "garbage; ;dj_token=tok-123",
			wantToken: "tok-123",
			wantFound: true,
		},
		{
			name:      "no cookie header",
			noHeader:  true,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			if !tt.noHeader {
				req.Header.Set("Cookie", tt.header)
			}

			token, found := FromRequest(req)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
