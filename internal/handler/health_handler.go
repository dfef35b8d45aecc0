package handler

import (
	"net/http"
	"strings"

	"hfrat-service/internal/authz"
	"hfrat-service/pkg/jwtutil"
	"hfrat-service/prometheus"

	"github.com/labstack/echo/v4"
)

// HealthCheck is public; when a valid bearer token accompanies the
// request the response includes the caller's effective role and facility
// so clients can route to the right view.
func HealthCheck(c echo.Context) error {
	response := echo.Map{"status": "ok"}

	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			if claims, err := jwtutil.ValidateToken(parts[1]); err == nil {
				p := authz.Principal{
					Role:        claims.Role,
					IsStaff:     claims.IsStaff,
					IsSuperuser: claims.IsSuperuser,
				}
				response["role"] = p.EffectiveRole()
				if claims.FacilityID != nil {
					response["facility_id"] = *claims.FacilityID
				}
			}
		}
	}

	return c.JSON(http.StatusOK, response)
}

// MetricsHandler exposes the Prometheus registry.
func MetricsHandler(c echo.Context) error {
	h := prometheus.GetPrometheusHandler()
	h.ServeHTTP(c.Response(), c.Request())
	return nil
}
