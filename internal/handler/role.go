package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/AbhishekDL36/LMS/internal/domain"
	"github.com/AbhishekDL36/LMS/internal/middleware"
	"github.com/AbhishekDL36/LMS/internal/utils"
	"github.com/labstack/echo/v4"
)

// UserAdminStore covers the administrative user operations.
type UserAdminStore interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, id int, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int) error
}

func SetupRoleRoutes(e *echo.Echo, storage UserAdminStore, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/role", authMiddleware, middleware.RequireRoles(domain.RoleAdmin))

	g.GET("/users", ListUsers(storage))
	g.PUT("/users/:id", UpdateUserRole(storage))
	g.DELETE("/users/:id", DeleteUser(storage))
}

// ListUsers godoc
// @Summary List all users
// @Description List every user with their role (admin only)
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.User
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /role/users [get]
func ListUsers(storage UserAdminStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := storage.ListUsers(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch users"})
		}

		return c.JSON(http.StatusOK, users)
	}
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Description Assign student, teacher or admin to a user (admin only)
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param role body domain.UpdateRoleRequest true "New role"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /role/users/{id} [put]
func UpdateUserRole(storage UserAdminStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid user id"})
		}

		var req domain.UpdateRoleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return err
		}

		user, err := storage.UpdateUserRole(c.Request().Context(), id, req.Role)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to update role"})
		}

		return c.JSON(http.StatusOK, user)
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Remove a user account (admin only)
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /role/users/{id} [delete]
func DeleteUser(storage UserAdminStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid user id"})
		}

		if err := storage.DeleteUser(c.Request().Context(), id); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to delete user"})
		}

		return c.NoContent(http.StatusNoContent)
	}
}
