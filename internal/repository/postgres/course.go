package postgres

import (
	"context"
	"errors"

	"github.com/AbhishekDL36/LMS/internal/domain"
	"github.com/AbhishekDL36/LMS/internal/utils"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) CreateCourse(ctx context.Context, teacherID int, req *domain.CreateCourseRequest) (*domain.Course, error) {
	const query = `
        INSERT INTO courses (title, description, teacher_id)
        VALUES ($1, $2, $3)
        RETURNING id, title, description, teacher_id, created_at;
    `

	var c domain.Course
	err := s.pool.QueryRow(ctx, query, req.Title, req.Description, teacherID).Scan(
		&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Storage) GetAllCourses(ctx context.Context) ([]domain.Course, error) {
	const query = `
        SELECT id, title, description, teacher_id, created_at
        FROM courses
        ORDER BY id;
    `

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, nil
}

func (s *Storage) GetCourseByID(ctx context.Context, id int) (*domain.Course, error) {
	const query = `
        SELECT id, title, description, teacher_id, created_at
        FROM courses WHERE id = $1;
    `

	var c domain.Course
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (s *Storage) GetCourseWithLectures(ctx context.Context, id int) (*domain.CourseWithLectures, error) {
	course, err := s.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lectures, err := s.GetLecturesForCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.CourseWithLectures{
		Course:   *course,
		Lectures: lectures,
	}, nil
}

func (s *Storage) UpdateCourse(ctx context.Context, id int, req *domain.UpdateCourseRequest) (*domain.Course, error) {
	const query = `
        UPDATE courses SET title = $2, description = $3
        WHERE id = $1
        RETURNING id, title, description, teacher_id, created_at;
    `

	var c domain.Course
	err := s.pool.QueryRow(ctx, query, id, req.Title, req.Description).Scan(
		&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (s *Storage) DeleteCourse(ctx context.Context, id int) error {
	const query = `DELETE FROM courses WHERE id = $1;`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}

	return nil
}
