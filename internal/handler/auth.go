package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/AbhishekDL36/LMS/internal/domain"
	"github.com/AbhishekDL36/LMS/internal/utils"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the storage layer the auth handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int) (*domain.User, error)
}

func SetupAuthRoutes(e *echo.Echo, storage UserStore, authMiddleware echo.MiddlewareFunc) {
	e.POST("/api/auth/register", Register(storage))
	e.POST("/api/auth/login", Login(storage))

	e.GET("/api/users/me", GetCurrentUser(storage), authMiddleware)
}

// dummyHash keeps a bcrypt comparison on the unknown-email path so the two
// login failure cases take comparable time.
var dummyHash = func() string {
	h, _ := bcrypt.GenerateFromPassword([]byte("lms-placeholder-password"), bcrypt.DefaultCost)
	return string(h)
}()

// Register godoc
// @Summary Register a new user
// @Description Create a user account; the role always starts as student
// @Tags auth
// @Accept json
// @Produce json
// @Param user body domain.RegisterRequest true "Registration details"
// @Success 201 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/register [post]
func Register(storage UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.RegisterRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return err
		}

		user, err := domain.NewUser(req.Name, req.Email, req.Password, domain.RoleStudent)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to hash password"})
		}

		created, err := storage.CreateUser(c.Request().Context(), user)
		if err != nil {
			if utils.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, map[string]string{"message": utils.ErrDuplicateEmail.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to create user"})
		}

		return c.JSON(http.StatusCreated, created)
	}
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Login credentials"
// @Success 200 {object} domain.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/login [post]
func Login(storage UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.LoginRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return err
		}

		user, err := storage.GetUserByEmail(c.Request().Context(), req.Email)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				// Burn the same bcrypt work as the wrong-password path so the
				// response does not reveal whether the email exists.
				bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": utils.ErrInvalidCredentials.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to look up user"})
		}

		if !user.CheckPassword(req.Password) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": utils.ErrInvalidCredentials.Error()})
		}

		token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to generate token"})
		}

		return c.JSON(http.StatusOK, domain.AuthResponse{
			Token: token,
			User:  *user,
		})
	}
}

// GetCurrentUser godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/me [get]
func GetCurrentUser(storage UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid user context"})
		}

		user, err := storage.GetUserByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch user"})
		}

		return c.JSON(http.StatusOK, user)
	}
}
