package handler

import (
	"net/http"
	"strconv"
	"time"

	"hfrat-service/internal/middleware"
	"hfrat-service/internal/service"
	"hfrat-service/pkg/logger"
	"hfrat-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler serves administrator user management.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns all users ordered by username with facilities embedded.
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	users, err := h.users.List()
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Create adds a user of any role. Reporters resolve their facility from
// facility_id or the hospital descriptor fields.
func (h *UserHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("create")

	var req struct {
		Username     string `json:"username"`
		Password     string `json:"password"`
		Role         string `json:"role"`
		FacilityID   *uint  `json:"facility_id"`
		HospitalName string `json:"hospital_name"`
		Country      string `json:"country"`
		City         string `json:"city"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid user payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	in := service.CreateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		Role:       req.Role,
		FacilityID: req.FacilityID,
	}
	if req.HospitalName != "" {
		in.Hospital = &service.FacilityDescriptor{
			Name:    req.HospitalName,
			Country: req.Country,
			City:    req.City,
		}
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := h.users.Create(in)
	if err != nil {
		log.Error("Failed to create user", zap.String("username", req.Username), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("User created by administrator",
		zap.Uint("user_id", user.ID),
		zap.String("role", user.Role))
	return c.JSON(http.StatusCreated, user)
}

// Update applies a partial patch, re-validating the role/facility
// invariant on role changes.
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("update")

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	var req struct {
		Username     *string `json:"username"`
		Password     *string `json:"password"`
		Role         *string `json:"role"`
		FacilityID   *uint   `json:"facility_id"`
		HospitalName string  `json:"hospital_name"`
		Country      string  `json:"country"`
		City         string  `json:"city"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid user patch", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	patch := service.UpdateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		Role:       req.Role,
		FacilityID: req.FacilityID,
	}
	if req.HospitalName != "" {
		patch.Hospital = &service.FacilityDescriptor{
			Name:    req.HospitalName,
			Country: req.Country,
			City:    req.City,
		}
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	user, err := h.users.Update(id, patch)
	if err != nil {
		log.Error("Failed to update user", zap.Uint("user_id", id), zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// Delete removes a user. Self-deletion is refused with a 400.
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("delete")

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.users.Delete(id, p.UserID); err != nil {
		log.Error("Failed to delete user",
			zap.Uint("user_id", id),
			zap.Uint("acting_user_id", p.UserID),
			zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
