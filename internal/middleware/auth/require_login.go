package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// IsAuthenticated reports whether the request carries a valid session
// cookie.
func IsAuthenticated(c echo.Context, secret []byte) bool {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return false
	}
	return ValidateSessionToken(secret, cookie.Value)
}

// RequireLogin rejects API requests without a valid session.
func RequireLogin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsAuthenticated(c, secret) {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
