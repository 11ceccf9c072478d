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

// LectureStore is the slice of the storage layer the lecture handlers need.
// GetCourseByID is here for the ownership check on writes.
type LectureStore interface {
	CreateLecture(ctx context.Context, req *domain.CreateLectureRequest) (*domain.Lecture, error)
	GetLecturesForCourse(ctx context.Context, courseID int) ([]domain.Lecture, error)
	GetLectureByID(ctx context.Context, id int) (*domain.Lecture, error)
	UpdateLecture(ctx context.Context, id int, req *domain.UpdateLectureRequest) (*domain.Lecture, error)
	DeleteLecture(ctx context.Context, id int) error
	GetCourseByID(ctx context.Context, id int) (*domain.Course, error)
}

func SetupLectureRoutes(e *echo.Echo, storage LectureStore, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/lecture", authMiddleware)

	g.GET("/course/:courseId", GetCourseLectures(storage))
	g.GET("/:id", GetLectureByID(storage))
	g.POST("", CreateLecture(storage), middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin))
	g.PUT("/:id", UpdateLecture(storage), middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin))
	g.DELETE("/:id", DeleteLecture(storage), middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin))
}

// GetCourseLectures godoc
// @Summary List lectures of a course
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {array} domain.Lecture
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /lecture/course/{courseId} [get]
func GetCourseLectures(storage LectureStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		courseID, err := strconv.Atoi(c.Param("courseId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid course id"})
		}

		lectures, err := storage.GetLecturesForCourse(c.Request().Context(), courseID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch lectures"})
		}

		return c.JSON(http.StatusOK, lectures)
	}
}

// GetLectureByID godoc
// @Summary Get a lecture
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Success 200 {object} domain.Lecture
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lecture/{id} [get]
func GetLectureByID(storage LectureStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid lecture id"})
		}

		lecture, err := storage.GetLectureByID(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "lecture not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch lecture"})
		}

		return c.JSON(http.StatusOK, lecture)
	}
}

// CreateLecture godoc
// @Summary Create a lecture
// @Description Add a lecture to a course the authenticated teacher owns
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lecture body domain.CreateLectureRequest true "Lecture details"
// @Success 201 {object} domain.Lecture
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lecture [post]
func CreateLecture(storage LectureStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.CreateLectureRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return err
		}

		if ok, err := requireLectureCourseOwnership(c, storage, req.CourseID); !ok {
			return err
		}

		lecture, err := storage.CreateLecture(c.Request().Context(), &req)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to create lecture"})
		}

		return c.JSON(http.StatusCreated, lecture)
	}
}

// UpdateLecture godoc
// @Summary Update a lecture
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Param lecture body domain.UpdateLectureRequest true "Lecture details"
// @Success 200 {object} domain.Lecture
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lecture/{id} [put]
func UpdateLecture(storage LectureStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid lecture id"})
		}

		lecture, err := storage.GetLectureByID(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "lecture not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch lecture"})
		}

		if ok, err := requireLectureCourseOwnership(c, storage, lecture.CourseID); !ok {
			return err
		}

		var req domain.UpdateLectureRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return err
		}

		updated, err := storage.UpdateLecture(c.Request().Context(), id, &req)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to update lecture"})
		}

		return c.JSON(http.StatusOK, updated)
	}
}

// DeleteLecture godoc
// @Summary Delete a lecture
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lecture/{id} [delete]
func DeleteLecture(storage LectureStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid lecture id"})
		}

		lecture, err := storage.GetLectureByID(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "lecture not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to fetch lecture"})
		}

		if ok, err := requireLectureCourseOwnership(c, storage, lecture.CourseID); !ok {
			return err
		}

		if err := storage.DeleteLecture(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "failed to delete lecture"})
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// requireLectureCourseOwnership mirrors requireCourseOwnership for the
// lecture write paths, which address the course through the lecture body.
func requireLectureCourseOwnership(c echo.Context, storage LectureStore, courseID int) (bool, error) {
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
