package postgres

import (
	"context"

	"github.com/AbhishekDL36/LMS/internal/domain"
)

func (s *Storage) EnrollStudent(ctx context.Context, courseID, studentID int) (*domain.Enrollment, error) {
	const query = `
        INSERT INTO enrollments (course_id, student_id)
        VALUES ($1, $2)
        RETURNING id, course_id, student_id, created_at;
    `

	var e domain.Enrollment
	err := s.pool.QueryRow(ctx, query, courseID, studentID).Scan(
		&e.ID, &e.CourseID, &e.StudentID, &e.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (s *Storage) GetStudentCourses(ctx context.Context, studentID int) ([]domain.Course, error) {
	const query = `
        SELECT c.id, c.title, c.description, c.teacher_id, c.created_at
        FROM courses c
        JOIN enrollments e ON e.course_id = c.id
        WHERE e.student_id = $1
        ORDER BY c.id;
    `

	rows, err := s.pool.Query(ctx, query, studentID)
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

// GetAdminStats aggregates the dashboard counters in a single round trip.
func (s *Storage) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM users WHERE role = 'student'),
            (SELECT COUNT(*) FROM users WHERE role = 'teacher'),
            (SELECT COUNT(*) FROM courses),
            (SELECT COUNT(*) FROM enrollments);
    `

	var stats domain.AdminStats
	err := s.pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalStudents, &stats.TotalTeachers,
		&stats.TotalCourses, &stats.TotalEnrollments,
	)

	if err != nil {
		return nil, err
	}

	return &stats, nil
}
