package handler

import (
	"net/http"
	"time"
)

// CookieConfig controls how the jwt cookie is emitted for browser flows.
type CookieConfig struct {
	// Secure switches SameSite=Lax to SameSite=None; Secure. Local
	// development stays on Lax so the cookie works without TLS.
	Secure bool
	// MaxAge matches the token TTL so cookie and token expire together.
	MaxAge time.Duration
}

// tokenCookie builds the HttpOnly jwt cookie carrying the token.
func (cc CookieConfig) tokenCookie(name, token string) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if cc.Secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cc.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: sameSite,
	}
}

// expiredCookie builds a cookie that instructs the client to discard
// its stored token. The token itself stays valid until natural expiry.
func (cc CookieConfig) expiredCookie(name string) *http.Cookie {
	c := cc.tokenCookie(name, "")
	c.MaxAge = -1
	return c
}
