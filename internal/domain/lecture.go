package domain

import "time"

type Lecture struct {
	ID        int       `db:"id" json:"id"`
	CourseID  int       `db:"course_id" json:"course_id"`
	Title     string    `db:"title" json:"title"`
	Content   *string   `db:"content" json:"content"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateLectureRequest struct {
	CourseID int     `json:"course_id" validate:"required"`
	Title    string  `json:"title" validate:"required"`
	Content  *string `json:"content"`
	Position int     `json:"position" validate:"min=0"`
}

type UpdateLectureRequest struct {
	Title    string  `json:"title" validate:"required"`
	Content  *string `json:"content"`
	Position int     `json:"position" validate:"min=0"`
}
