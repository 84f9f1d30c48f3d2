package utils

import (
	"consultacnpj/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// SessionContextKey is where the session middleware stores the session id.
const SessionContextKey = "session_id"

func GetSessionFromContext(c echo.Context) (string, apierror.ErrorResponse) {
	val := c.Get(SessionContextKey)
	if val == nil {
		log.Warnf("route %s attempted to read nil session id from context", c.Request().URL)
		return "", apierror.InternalServerError
	}

	sessionID, ok := val.(string)
	if !ok || sessionID == "" {
		log.Warnf("expected string at '%s' context key, got %v", SessionContextKey, val)
		return "", apierror.InternalServerError
	}
	return sessionID, nil
}
