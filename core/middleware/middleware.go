package middleware

import (
	"github.com/Ecospace254/employee-sub000/core/cache"
	"github.com/Ecospace254/employee-sub000/core/constants"
	"github.com/Ecospace254/employee-sub000/core/controller"
	"github.com/Ecospace254/employee-sub000/core/errors"
	"github.com/Ecospace254/employee-sub000/core/logger"
	"github.com/Ecospace254/employee-sub000/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles the request middlewares that need shared dependencies.
type Middleware struct {
	cache cache.Cache
}

func NewMiddleware(c cache.Cache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware requires a valid, non-revoked session token (cookie or
// bearer header) and places its claims into the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := utils.GetTokenFromRequest(c, constants.SessionCookieName)
			if token == "" {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Authentication required")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				logger.Warn("Middleware:Auth:InvalidToken", "error", err)
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Invalid or expired session")
			}

			if m.cache != nil {
				blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
				if err != nil {
					logger.Error("Middleware:Auth:IsTokenBlacklisted", err)
					return controller.NewErrorResponse(500, errors.ErrInternalServer, "Session check failed")
				}
				if blacklisted {
					return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Session has been revoked")
				}
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
