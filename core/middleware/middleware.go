package middleware

import (
	"strings"

	"toutouchic-api/core/controller"
	"toutouchic-api/core/errors"
	"toutouchic-api/core/logger"

	"github.com/labstack/echo/v4"
)

// TokenVerifier checks a bearer credential and returns the authenticated role.
// Implemented by the auth service; kept as a local interface so core does not
// depend on module packages.
type TokenVerifier interface {
	VerifyToken(token string) (string, *errors.AppError)
}

type Middleware struct {
	verifier TokenVerifier
}

func NewMiddleware(verifier TokenVerifier) *Middleware {
	return &Middleware{verifier: verifier}
}

// AuthMiddleware guards administrative routes with a bearer JWT.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return controller.NewErrorResponse(
					controller.HTTPStatusFor(errors.ErrMissingAuthorizationHeader),
					errors.ErrMissingAuthorizationHeader,
					"Token d'authentification manquant",
				)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return controller.NewErrorResponse(
					controller.HTTPStatusFor(errors.ErrInvalidTokenFormat),
					errors.ErrInvalidTokenFormat,
					"Format de token invalide",
				)
			}

			role, appErr := m.verifier.VerifyToken(parts[1])
			if appErr != nil {
				logger.Warn("Middleware:AuthMiddleware:VerifyToken", "code", appErr.Code, "path", c.Path())
				return controller.NewErrorResponse(
					controller.HTTPStatusFor(appErr.Code),
					appErr.Code,
					appErr.Message,
				)
			}

			c.Set("role", role)
			return next(c)
		}
	}
}
