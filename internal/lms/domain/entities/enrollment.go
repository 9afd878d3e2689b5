package entities

import "time"

// Enrollment представляет запись студента на курс.
type Enrollment struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"course_id"`
	StudentID  string    `json:"student_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Grade      *int      `json:"grade,omitempty"`
}

// NewEnrollment создает новую запись студента на курс.
func NewEnrollment(courseID, studentID string) *Enrollment {
	return &Enrollment{
		CourseID:   courseID,
		StudentID:  studentID,
		EnrolledAt: time.Now(),
	}
}
