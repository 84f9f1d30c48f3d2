package middleware

import (
	"consultacnpj/cmd/internal/utils"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "consulta_session"
	sessionCookieAge  = 24 * time.Hour
)

// NewSessionMiddleware identifies each browser with an anonymous uuid
// cookie. The id scopes the retained lookup state; there are no user
// accounts.
func NewSessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := readSessionID(c)
			if sessionID == "" {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(sessionCookieAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(utils.SessionContextKey, sessionID)
			return next(c)
		}
	}
}

func readSessionID(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}

	// Reject anything that is not one of our uuids; a forged value would
	// otherwise let a client pick an arbitrary session key.
	if _, err = uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}
