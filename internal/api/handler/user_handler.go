package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/N30R4BB1t/login-register/internal/api/metrics"
	"github.com/N30R4BB1t/login-register/internal/core/domain"
	"github.com/N30R4BB1t/login-register/internal/core/ports"
)

// UserHandler handles the authenticated CRUD surface. Every route in this
// handler sits behind the Auth middleware.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns all users ordered by id.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		metrics.UserOperationsTotal.WithLabelValues("list", opResult(err)).Inc()
		return err
	}
	metrics.UserOperationsTotal.WithLabelValues("list", "success").Inc()

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: users})
}

// Get returns a single user by id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		metrics.UserOperationsTotal.WithLabelValues("get", opResult(err)).Inc()
		return err
	}
	metrics.UserOperationsTotal.WithLabelValues("get", "success").Inc()

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: user})
}

// Update changes a user's name and email. The password is not mutable
// through this endpoint.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "New name and email"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), req.Name, req.Email)
	if err != nil {
		metrics.UserOperationsTotal.WithLabelValues("update", opResult(err)).Inc()
		return err
	}
	metrics.UserOperationsTotal.WithLabelValues("update", "success").Inc()

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: user})
}

// Delete removes a user permanently.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		metrics.UserOperationsTotal.WithLabelValues("delete", opResult(err)).Inc()
		return err
	}
	metrics.UserOperationsTotal.WithLabelValues("delete", "success").Inc()

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "user deleted"})
}

func opResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrEmailTaken):
		return "duplicate_email"
	default:
		return "error"
	}
}
