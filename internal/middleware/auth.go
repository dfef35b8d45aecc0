package middleware

import (
	"net/http"
	"strings"

	"hfrat-service/internal/authz"
	"hfrat-service/pkg/jwtutil"
	"hfrat-service/pkg/logger"
	"hfrat-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const principalKey = "principal"

// AuthMiddleware validates the JWT from the Authorization header and
// stores the decoded principal in the echo context. A missing or invalid
// token is a 401; role checks happen later and answer with 403.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set(principalKey, authz.Principal{
			UserID:      claims.UserID,
			Username:    claims.Username,
			Role:        claims.Role,
			FacilityID:  claims.FacilityID,
			IsStaff:     claims.IsStaff,
			IsSuperuser: claims.IsSuperuser,
		})

		return next(c)
	}
}

// Require wraps an authorization predicate as route middleware. Denial is
// a 403 with the predicate's role-specific message, distinct from the
// 401s issued by AuthMiddleware.
func Require(allowed authz.Predicate, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := GetPrincipal(c)
			if !ok {
				prometheus.RecordAuthError("missing_principal")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			if !allowed(p) {
				logger.FromContext(c).Warn("role denied",
					zap.String("username", p.Username),
					zap.String("role", p.Role),
					zap.String("path", c.Path()))
				prometheus.RecordAuthError("role_denied")
				return c.JSON(http.StatusForbidden, echo.Map{"error": message})
			}
			return next(c)
		}
	}
}

// GetPrincipal retrieves the authenticated principal set by AuthMiddleware.
func GetPrincipal(c echo.Context) (authz.Principal, bool) {
	p, ok := c.Get(principalKey).(authz.Principal)
	return p, ok
}
