// Package client is the Go API client for the LMS backend. It mirrors the
// web frontend's behavior: a stored bearer token is attached to every
// request, and any 401 response clears the stored token and fires the
// unauthorized hook (the "force logout and go to login" policy).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/AbhishekDL36/LMS/internal/domain"
)

// APIError is a structured error response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL        string
	http           *http.Client
	creds          CredentialHolder
	onUnauthorized func()
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUnauthorizedHook sets the hook invoked once per 401 response, after
// the credential holder has been cleared.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

// New builds a Client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, creds CredentialHolder, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one JSON request. A held token rides along as a bearer header;
// a 401 clears the holder and fires the unauthorized hook exactly once.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.creds.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &APIError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func readMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return "unexpected response"
	}
	return payload.Message
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	req := domain.RegisterRequest{Name: name, Email: email, Password: password}
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the returned token in the holder.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	req := domain.LoginRequest{Email: email, Password: password}
	var resp domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.creds.SetToken(resp.Token)
	return &resp, nil
}

// Logout discards the stored token. Tokens are stateless, so nothing is
// sent to the server.
func (c *Client) Logout() {
	c.creds.Clear()
}

// CurrentUser fetches the profile behind the stored token.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Courses(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	if err := c.do(ctx, http.MethodGet, "/api/course", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) Course(ctx context.Context, id int) (*domain.CourseWithLectures, error) {
	var course domain.CourseWithLectures
	if err := c.do(ctx, http.MethodGet, "/api/course/"+strconv.Itoa(id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) CreateCourse(ctx context.Context, req domain.CreateCourseRequest) (*domain.Course, error) {
	var course domain.Course
	if err := c.do(ctx, http.MethodPost, "/api/course", req, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) Enroll(ctx context.Context, courseID int) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	path := "/api/course/" + strconv.Itoa(courseID) + "/enroll"
	if err := c.do(ctx, http.MethodPost, path, nil, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (c *Client) EnrolledCourses(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	if err := c.do(ctx, http.MethodGet, "/api/course/enrolled", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) CourseLectures(ctx context.Context, courseID int) ([]domain.Lecture, error) {
	var lectures []domain.Lecture
	path := "/api/lecture/course/" + strconv.Itoa(courseID)
	if err := c.do(ctx, http.MethodGet, path, nil, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/api/role/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, userID int, role string) (*domain.User, error) {
	req := domain.UpdateRoleRequest{Role: role}
	var user domain.User
	path := "/api/role/users/" + strconv.Itoa(userID)
	if err := c.do(ctx, http.MethodPut, path, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
