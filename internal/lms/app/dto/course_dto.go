// Package dto содержит объекты передачи данных HTTP API сервиса курсов.
package dto

import (
	"time"

	"projectathena/internal/lms/domain/entities"
)

// CreateCourseRequest содержит данные для создания курса.
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
}

// UpdateCourseRequest содержит данные для обновления курса.
type UpdateCourseRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
}

// CourseResponse содержит данные курса.
type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TeacherID   string    `json:"teacher_id"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseListResponse содержит страницу списка курсов.
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// CourseSummaryResponse содержит курс с количеством записанных студентов.
type CourseSummaryResponse struct {
	Course        CourseResponse `json:"course"`
	EnrolledCount int            `json:"enrolled_count"`
}

// EnrollmentResponse содержит данные записи на курс.
type EnrollmentResponse struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"course_id"`
	StudentID  string    `json:"student_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Grade      *int      `json:"grade,omitempty"`
}

// NewCourseResponse строит CourseResponse из доменной сущности.
func NewCourseResponse(course *entities.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		TeacherID:   course.TeacherID,
		Capacity:    course.Capacity,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}

// NewEnrollmentResponse строит EnrollmentResponse из доменной сущности.
func NewEnrollmentResponse(enrollment *entities.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         enrollment.ID,
		CourseID:   enrollment.CourseID,
		StudentID:  enrollment.StudentID,
		EnrolledAt: enrollment.EnrolledAt,
		Grade:      enrollment.Grade,
	}
}
