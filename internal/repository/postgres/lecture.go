package postgres

import (
	"context"
	"errors"

	"github.com/AbhishekDL36/LMS/internal/domain"
	"github.com/AbhishekDL36/LMS/internal/utils"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) CreateLecture(ctx context.Context, req *domain.CreateLectureRequest) (*domain.Lecture, error) {
	const query = `
        INSERT INTO lectures (course_id, title, content, position)
        VALUES ($1, $2, $3, $4)
        RETURNING id, course_id, title, content, position, created_at;
    `

	var l domain.Lecture
	err := s.pool.QueryRow(ctx, query, req.CourseID, req.Title, req.Content, req.Position).Scan(
		&l.ID, &l.CourseID, &l.Title, &l.Content, &l.Position, &l.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &l, nil
}

func (s *Storage) GetLecturesForCourse(ctx context.Context, courseID int) ([]domain.Lecture, error) {
	const query = `
        SELECT id, course_id, title, content, position, created_at
        FROM lectures
        WHERE course_id = $1
        ORDER BY position, id;
    `

	rows, err := s.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var lectures []domain.Lecture
	for rows.Next() {
		var l domain.Lecture
		err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Content, &l.Position, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		lectures = append(lectures, l)
	}

	return lectures, nil
}

func (s *Storage) GetLectureByID(ctx context.Context, id int) (*domain.Lecture, error) {
	const query = `
        SELECT id, course_id, title, content, position, created_at
        FROM lectures WHERE id = $1;
    `

	var l domain.Lecture
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.CourseID, &l.Title, &l.Content, &l.Position, &l.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	return &l, nil
}

func (s *Storage) UpdateLecture(ctx context.Context, id int, req *domain.UpdateLectureRequest) (*domain.Lecture, error) {
	const query = `
        UPDATE lectures SET title = $2, content = $3, position = $4
        WHERE id = $1
        RETURNING id, course_id, title, content, position, created_at;
    `

	var l domain.Lecture
	err := s.pool.QueryRow(ctx, query, id, req.Title, req.Content, req.Position).Scan(
		&l.ID, &l.CourseID, &l.Title, &l.Content, &l.Position, &l.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	return &l, nil
}

func (s *Storage) DeleteLecture(ctx context.Context, id int) error {
	const query = `DELETE FROM lectures WHERE id = $1;`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}

	return nil
}
