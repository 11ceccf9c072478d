package handler

import (
	"context"
	"net/http"

	"github.com/AbhishekDL36/LMS/internal/domain"
	"github.com/AbhishekDL36/LMS/internal/middleware"
	"github.com/labstack/echo/v4"
)

type StatsStore interface {
	GetAdminStats(ctx context.Context) (*domain.AdminStats, error)
}

func SetupAdminRoutes(e *echo.Echo, storage StatsStore, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/admin", authMiddleware, middleware.RequireRoles(domain.RoleAdmin))

	g.GET("/stats", GetAdminStats(storage))
}

// GetAdminStats godoc
// @Summary Dashboard statistics
// @Description Aggregate user, course and enrollment counts (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.AdminStats
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/stats [get]
func GetAdminStats(storage StatsStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := storage.GetAdminStats(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch stats"})
		}

		return c.JSON(http.StatusOK, stats)
	}
}
