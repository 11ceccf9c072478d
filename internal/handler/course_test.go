package handler

import (
	"context"
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

type fakeCourseStore struct {
	courses     map[int]*domain.Course
	enrollments map[[2]int]bool
	nextID      int
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses:     map[int]*domain.Course{},
		enrollments: map[[2]int]bool{},
	}
}

func (f *fakeCourseStore) addCourse(teacherID int, title string) *domain.Course {
	f.nextID++
	c := &domain.Course{ID: f.nextID, Title: title, TeacherID: teacherID, CreatedAt: time.Now()}
	f.courses[c.ID] = c
	return c
}

func (f *fakeCourseStore) CreateCourse(_ context.Context, teacherID int, req *domain.CreateCourseRequest) (*domain.Course, error) {
	c := f.addCourse(teacherID, req.Title)
	c.Description = req.Description
	return c, nil
}

func (f *fakeCourseStore) GetAllCourses(_ context.Context) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range f.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourseStore) GetCourseByID(_ context.Context, id int) (*domain.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	found := *c
	return &found, nil
}

func (f *fakeCourseStore) GetCourseWithLectures(ctx context.Context, id int) (*domain.CourseWithLectures, error) {
	c, err := f.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.CourseWithLectures{Course: *c}, nil
}

func (f *fakeCourseStore) UpdateCourse(_ context.Context, id int, req *domain.UpdateCourseRequest) (*domain.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	c.Title = req.Title
	c.Description = req.Description
	updated := *c
	return &updated, nil
}

func (f *fakeCourseStore) DeleteCourse(_ context.Context, id int) error {
	if _, ok := f.courses[id]; !ok {
		return utils.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseStore) EnrollStudent(_ context.Context, courseID, studentID int) (*domain.Enrollment, error) {
	key := [2]int{courseID, studentID}
	if f.enrollments[key] {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	f.enrollments[key] = true
	return &domain.Enrollment{ID: len(f.enrollments), CourseID: courseID, StudentID: studentID, CreatedAt: time.Now()}, nil
}

func (f *fakeCourseStore) GetStudentCourses(_ context.Context, studentID int) ([]domain.Course, error) {
	var out []domain.Course
	for key := range f.enrollments {
		if key[1] != studentID {
			continue
		}
		if c, ok := f.courses[key[0]]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func newCourseEcho(store CourseStore) *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	SetupCourseRoutes(e, store, middleware.JWTAuth())
	return e
}

func doWithToken(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func mustToken(t *testing.T, userID int, role string) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, "user@example.com", role)
	require.NoError(t, err)
	return token
}

func TestCreateCourse_StudentForbidden(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	e := newCourseEcho(newFakeCourseStore())
	token := mustToken(t, 1, domain.RoleStudent)

	rec := doWithToken(e, http.MethodPost, "/api/course", token, `{"title":"Go 101"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateCourse_TeacherOwnsCourse(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	store := newFakeCourseStore()
	e := newCourseEcho(store)
	token := mustToken(t, 5, domain.RoleTeacher)

	rec := doWithToken(e, http.MethodPost, "/api/course", token, `{"title":"Go 101"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 5, store.courses[1].TeacherID)
}

func TestUpdateCourse_NonOwnerTeacherForbidden(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	store := newFakeCourseStore()
	store.addCourse(5, "Go 101")
	e := newCourseEcho(store)

	otherTeacher := mustToken(t, 6, domain.RoleTeacher)
	rec := doWithToken(e, http.MethodPut, "/api/course/1", otherTeacher, `{"title":"Hijacked"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Go 101", store.courses[1].Title)
}

func TestUpdateCourse_AdminBypassesOwnership(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	store := newFakeCourseStore()
	store.addCourse(5, "Go 101")
	e := newCourseEcho(store)

	admin := mustToken(t, 99, domain.RoleAdmin)
	rec := doWithToken(e, http.MethodPut, "/api/course/1", admin, `{"title":"Go 102"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Go 102", store.courses[1].Title)
}

func TestEnroll_DuplicateConflict(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	store := newFakeCourseStore()
	store.addCourse(5, "Go 101")
	e := newCourseEcho(store)

	student := mustToken(t, 2, domain.RoleStudent)

	first := doWithToken(e, http.MethodPost, "/api/course/1/enroll", student, "")
	require.Equal(t, http.StatusCreated, first.Code)

	second := doWithToken(e, http.MethodPost, "/api/course/1/enroll", student, "")
	require.Equal(t, http.StatusConflict, second.Code)
}

func TestEnroll_CourseNotFound(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	e := newCourseEcho(newFakeCourseStore())
	student := mustToken(t, 2, domain.RoleStudent)

	rec := doWithToken(e, http.MethodPost, "/api/course/42/enroll", student, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
