package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/N30R4BB1t/login-register/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

// Auth extracts the bearer token from the Authorization header, validates it
// and injects the subject identity into the echo context. Both a bad
// signature and an expired token end the request with 401 before dispatch.
func Auth(tokens ports.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := tokens.Validate(parts[1])
			if err != nil {
				// ErrTokenInvalid / ErrTokenExpired both map to 401 in
				// the central error handler.
				return err
			}

			c.Set(CtxUserID, identity.UserID)
			c.Set(CtxEmail, identity.Email)

			return next(c)
		}
	}
}
