package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AbhishekDL36/LMS/internal/domain"
	"github.com/AbhishekDL36/LMS/internal/middleware"
	"github.com/AbhishekDL36/LMS/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*domain.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := f.users[user.Email]; exists {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.Email] = &stored
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, utils.ErrNotFound
	}
	found := *user
	return &found, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, utils.ErrNotFound
}

func newAuthEcho(store UserStore) *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	SetupAuthRoutes(e, store, middleware.JWTAuth())
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegister_Success(t *testing.T) {
	store := newFakeUserStore()
	e := newAuthEcho(store)

	rec := postJSON(e, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, 1, user.ID)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, domain.RoleStudent, user.Role)

	// Hash must never leave the server and never equal the plaintext.
	require.NotContains(t, rec.Body.String(), "password")
	require.NotEqual(t, "correct-horse", store.users["alice@example.com"].PasswordHash)
}

func TestRegister_ValidationError(t *testing.T) {
	e := newAuthEcho(newFakeUserStore())

	rec := postJSON(e, "/api/auth/register",
		`{"name":"Alice","email":"not-an-email","password":"short"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	e := newAuthEcho(store)

	first := postJSON(e, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, first.Code)
	originalHash := store.users["alice@example.com"].PasswordHash

	second := postJSON(e, "/api/auth/register",
		`{"name":"Mallory","email":"alice@example.com","password":"other-password"}`)
	require.Equal(t, http.StatusConflict, second.Code)
	require.JSONEq(t, `{"message":"email already registered"}`, second.Body.String())

	// First record untouched by the failed attempt.
	require.Equal(t, "Alice", store.users["alice@example.com"].Name)
	require.Equal(t, originalHash, store.users["alice@example.com"].PasswordHash)
}

func TestLogin_Success_TokenCarriesIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	store := newFakeUserStore()
	e := newAuthEcho(store)

	rec := postJSON(e, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(e, "/api/auth/login",
		`{"email":"alice@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "alice@example.com", resp.User.Email)

	claims, err := utils.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)
	require.Equal(t, resp.User.Role, claims.Role)
}

func TestLogin_FailureIsIndistinguishable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	store := newFakeUserStore()
	e := newAuthEcho(store)

	rec := postJSON(e, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	unknownEmail := postJSON(e, "/api/auth/login",
		`{"email":"nobody@example.com","password":"correct-horse"}`)
	wrongPassword := postJSON(e, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong-password"}`)

	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
}

func TestGetCurrentUser_ReturnsProfile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	store := newFakeUserStore()
	e := newAuthEcho(store)

	rec := postJSON(e, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	token := mustToken(t, 1, domain.RoleStudent)
	rec = doWithToken(e, http.MethodGet, "/api/users/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, 1, user.ID)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotContains(t, rec.Body.String(), "password")
}

func TestGetCurrentUser_TokenForDeletedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	e := newAuthEcho(newFakeUserStore())

	token := mustToken(t, 42, domain.RoleStudent)
	rec := doWithToken(e, http.MethodGet, "/api/users/me", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"user not found"}`, rec.Body.String())
}

func TestGetCurrentUser_NoToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	e := newAuthEcho(newFakeUserStore())

	rec := doWithToken(e, http.MethodGet, "/api/users/me", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
