package handler

import (
	"net/http"
	"time"

	"hfrat-service/internal/model"
	"hfrat-service/internal/service"
	"hfrat-service/pkg/jwtutil"
	"hfrat-service/pkg/logger"
	"hfrat-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler serves login and reporter self-registration.
type AuthHandler struct {
	users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login verifies credentials and issues a JWT carrying role and facility.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		log.Error("Login failed", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Username, user.Role, user.FacilityID, user.IsStaff, user.IsSuperuser)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Register creates a REPORTER account; the hospital triple resolves to an
// existing facility or creates one.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Username     string `json:"username"`
		Password     string `json:"password"`
		HospitalName string `json:"hospital_name"`
		Country      string `json:"country"`
		City         string `json:"city"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := h.users.Create(service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     model.RoleReporter,
		Hospital: &service.FacilityDescriptor{
			Name:    req.HospitalName,
			Country: req.Country,
			City:    req.City,
		},
	})
	if err != nil {
		log.Error("Registration failed", zap.String("username", req.Username), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Reporter registered",
		zap.String("username", user.Username),
		zap.Uint("facility_id", *user.FacilityID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}
