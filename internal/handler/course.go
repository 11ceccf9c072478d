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

// CourseStore is the slice of the storage layer the course handlers need.
type CourseStore interface {
	CreateCourse(ctx context.Context, teacherID int, req *domain.CreateCourseRequest) (*domain.Course, error)
	GetAllCourses(ctx context.Context) ([]domain.Course, error)
	GetCourseByID(ctx context.Context, id int) (*domain.Course, error)
	GetCourseWithLectures(ctx context.Context, id int) (*domain.CourseWithLectures, error)
	UpdateCourse(ctx context.Context, id int, req *domain.UpdateCourseRequest) (*domain.Course, error)
	DeleteCourse(ctx context.Context, id int) error
	EnrollStudent(ctx context.Context, courseID, studentID int) (*domain.Enrollment, error)
	GetStudentCourses(ctx context.Context, studentID int) ([]domain.Course, error)
}

func SetupCourseRoutes(e *echo.Echo, storage CourseStore, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/course", authMiddleware)

	g.GET("", GetCourses(storage))
	g.GET("/enrolled", GetEnrolledCourses(storage), middleware.RequireRoles(domain.RoleStudent))
	g.GET("/:id", GetCourseByID(storage))
	g.POST("", CreateCourse(storage), middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin))
	g.PUT("/:id", UpdateCourse(storage), middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin))
	g.DELETE("/:id", DeleteCourse(storage), middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin))
	g.POST("/:id/enroll", EnrollInCourse(storage), middleware.RequireRoles(domain.RoleStudent))
}

// GetCourses godoc
// @Summary List all courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Course
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /course [get]
func GetCourses(storage CourseStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		courses, err := storage.GetAllCourses(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch courses"})
		}

		return c.JSON(http.StatusOK, courses)
	}
}

// GetCourseByID godoc
// @Summary Get a course with its lectures
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} domain.CourseWithLectures
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /course/{id} [get]
func GetCourseByID(storage CourseStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid course id"})
		}

		course, err := storage.GetCourseWithLectures(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "course not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch course"})
		}

		return c.JSON(http.StatusOK, course)
	}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Create a course owned by the authenticated teacher
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body domain.CreateCourseRequest true "Course details"
// @Success 201 {object} domain.Course
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /course [post]
func CreateCourse(storage CourseStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		teacherID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid user context"})
		}

		var req domain.CreateCourseRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return err
		}

		course, err := storage.CreateCourse(c.Request().Context(), teacherID, &req)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to create course"})
		}

		return c.JSON(http.StatusCreated, course)
	}
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Teachers can update only their own courses; admins any course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param course body domain.UpdateCourseRequest true "Course details"
// @Success 200 {object} domain.Course
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /course/{id} [put]
func UpdateCourse(storage CourseStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid course id"})
		}

		if ok, err := requireCourseOwnership(c, storage, id); !ok {
			return err
		}

		var req domain.UpdateCourseRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return err
		}

		course, err := storage.UpdateCourse(c.Request().Context(), id, &req)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "course not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to update course"})
		}

		return c.JSON(http.StatusOK, course)
	}
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Teachers can delete only their own courses; admins any course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /course/{id} [delete]
func DeleteCourse(storage CourseStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid course id"})
		}

		if ok, err := requireCourseOwnership(c, storage, id); !ok {
			return err
		}

		if err := storage.DeleteCourse(c.Request().Context(), id); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "course not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to delete course"})
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// EnrollInCourse godoc
// @Summary Enroll in a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 201 {object} domain.Enrollment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /course/{id}/enroll [post]
func EnrollInCourse(storage CourseStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid user context"})
		}

		courseID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid course id"})
		}

		if _, err := storage.GetCourseByID(c.Request().Context(), courseID); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "course not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch course"})
		}

		enrollment, err := storage.EnrollStudent(c.Request().Context(), courseID, studentID)
		if err != nil {
			if utils.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, map[string]string{"message": "already enrolled"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to enroll"})
		}

		return c.JSON(http.StatusCreated, enrollment)
	}
}

// GetEnrolledCourses godoc
// @Summary List courses the authenticated student is enrolled in
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Course
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /course/enrolled [get]
func GetEnrolledCourses(storage CourseStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid user context"})
		}

		courses, err := storage.GetStudentCourses(c.Request().Context(), studentID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch courses"})
		}

		return c.JSON(http.StatusOK, courses)
	}
}

// requireCourseOwnership lets admins through and teachers only for courses
// they own. On rejection it writes the terminal response and returns
// ok=false with the write's error for the handler to propagate.
func requireCourseOwnership(c echo.Context, storage CourseStore, courseID int) (bool, error) {
	role, _ := c.Get("role").(string)
	if role == domain.RoleAdmin {
		return true, nil
	}

	userID, ok := c.Get("user_id").(int)
	if !ok {
		return false, c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid user context"})
	}

	course, err := storage.GetCourseByID(c.Request().Context(), courseID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return false, c.JSON(http.StatusNotFound, map[string]string{"message": "course not found"})
		}
		return false, c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch course"})
	}

	if course.TeacherID != userID {
		return false, c.JSON(http.StatusForbidden, map[string]string{"message": utils.ErrForbidden.Error()})
	}

	return true, nil
}
