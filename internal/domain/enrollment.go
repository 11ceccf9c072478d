package domain

import "time"

type Enrollment struct {
	ID        int       `db:"id" json:"id"`
	CourseID  int       `db:"course_id" json:"course_id"`
	StudentID int       `db:"student_id" json:"student_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AdminStats is the payload of the admin dashboard endpoint. Field names
// follow the dashboard's JSON contract.
type AdminStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalStudents    int `json:"totalStudents"`
	TotalTeachers    int `json:"totalTeachers"`
	TotalCourses     int `json:"totalCourses"`
	TotalEnrollments int `json:"totalEnrollments"`
}
