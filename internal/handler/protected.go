package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func SetupTestRoutes(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/test", authMiddleware)

	g.GET("/protected", Protected())
}

// Protected godoc
// @Summary Token smoke test
// @Description Echo back the identity decoded from the bearer token
// @Tags test
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /test/protected [get]
func Protected() echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid user context"})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "you are authenticated",
			"user_id": userID,
			"email":   c.Get("email"),
			"role":    c.Get("role"),
		})
	}
}
