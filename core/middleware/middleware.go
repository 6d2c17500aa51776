package middleware

import (
	"net/http"
	"strings"

	"appointments-api/core/constants"
	"appointments-api/core/controller"
	"appointments-api/core/errors"
	"appointments-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// AuthMiddleware validates the Bearer token and stores its claims under
// constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			claims, err := utils.ValidateAndParseToken(parts[1])
			if err != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrUnauthorized, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
