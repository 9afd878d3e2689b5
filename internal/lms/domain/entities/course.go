// Package entities определяет доменные сущности сервиса курсов.
package entities

import "time"

// Course представляет учебный курс.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TeacherID   string    `json:"teacher_id"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCourse создает новый курс, принадлежащий преподавателю.
func NewCourse(teacherID, title, description string, capacity int) *Course {
	now := time.Now()
	return &Course{
		TeacherID:   teacherID,
		Title:       title,
		Description: description,
		Capacity:    capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CourseSummary содержит курс вместе с количеством записанных студентов.
type CourseSummary struct {
	Course        *Course `json:"course"`
	EnrolledCount int     `json:"enrolled_count"`
}
