package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "theatre_session"
	sessionContextKey = "session_id"
)

type SessionConfig struct {
	HashKey     []byte
	BlockKey    []byte
	IdleTimeout time.Duration
	Secure      bool
}

// Session gives every visitor an HttpOnly, signed session cookie. The cookie is
// re-issued on each request, so it expires after IdleTimeout without traffic.
// A block key must be 16, 24 or 32 bytes (AES-128/192/256) or empty for no encryption.
func Session(cfg SessionConfig) (echo.MiddlewareFunc, error) {
	hashKey := cfg.HashKey
	if len(hashKey) == 0 {
		// Sessions will not survive a restart.
		hashKey = securecookie.GenerateRandomKey(32)
	}
	var blockKey []byte
	switch n := len(cfg.BlockKey); n {
	case 0:
	case 16, 24, 32:
		blockKey = cfg.BlockKey
	default:
		return nil, fmt.Errorf("session block key must be 16, 24 or 32 bytes, got %d", n)
	}
	maxAge := int(cfg.IdleTimeout / time.Second)
	if maxAge <= 0 {
		maxAge = 10
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(maxAge)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if ck, err := c.Cookie(SessionCookieName); err == nil {
				value := map[string]string{}
				if err := sc.Decode(SessionCookieName, ck.Value, &value); err == nil {
					sid = value["sid"]
				}
			}
			if sid == "" {
				sid = uuid.NewString()
			}

			encoded, err := sc.Encode(SessionCookieName, map[string]string{"sid": sid})
			if err == nil {
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    encoded,
					Path:     "/",
					MaxAge:   maxAge,
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(sessionContextKey, sid)
			return next(c)
		}
	}, nil
}

// SessionID returns the visitor session id set by Session, or "".
func SessionID(c echo.Context) string {
	sid, _ := c.Get(sessionContextKey).(string)
	return sid
}
