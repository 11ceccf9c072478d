package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AbhishekDL36/LMS/internal/utils"
	"github.com/labstack/echo/v4"
)

// JWTAuth rejects requests without a valid bearer token and annotates the
// context with the token's identity. Validation is purely local; no database
// lookup happens here.
func JWTAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": utils.ErrUnauthorized.Error()})
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": utils.ErrInvalidToken.Error()})
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := utils.ValidateToken(token)

			if err != nil {
				msg := utils.ErrInvalidToken.Error()
				if errors.Is(err, utils.ErrExpiredToken) {
					msg = utils.ErrExpiredToken.Error()
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": msg})
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

// RequireRoles allows the request through only when the role set by JWTAuth
// is in the allow-list. Must run after JWTAuth.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": utils.ErrUnauthorized.Error()})
			}

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, map[string]string{"message": utils.ErrForbidden.Error()})
		}
	}
}
