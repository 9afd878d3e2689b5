// Package app реализует бизнес-логику сервиса курсов.
package app

import (
	"context"
	"errors"
	"fmt"

	"projectathena/internal/lms/domain/entities"
	"projectathena/internal/lms/ports/repositories"
	"projectathena/internal/lms/ports/services"
)

// Роли, приходящие из claims access токена.
const (
	RoleStudent = "Student"
	RoleTeacher = "Teacher"
	RoleAdmin   = "Admin"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound      = errors.New("course not found")
	ErrForbidden     = errors.New("operation not permitted for this role")
	ErrInvalidParams = errors.New("invalid parameters")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// CourseUseCase представляет бизнес-логику работы с курсами.
type CourseUseCase struct {
	courseRepo repositories.CourseRepository
}

// NewCourseUseCase создает новый экземпляр CourseUseCase.
func NewCourseUseCase(courseRepo repositories.CourseRepository) *CourseUseCase {
	return &CourseUseCase{
		courseRepo: courseRepo,
	}
}

// CreateCourse создает новый курс. Доступно преподавателям и администраторам.
func (uc *CourseUseCase) CreateCourse(ctx context.Context, actor *services.SessionClaims, title, description string, capacity int) (string, error) {
	if actor.Role != RoleTeacher && actor.Role != RoleAdmin {
		return "", ErrForbidden
	}
	if title == "" || capacity <= 0 {
		return "", ErrInvalidParams
	}

	course := entities.NewCourse(actor.UserID, title, description, capacity)
	courseID, err := uc.courseRepo.Create(ctx, course)
	if err != nil {
		return "", fmt.Errorf("failed to create course: %w", err)
	}

	return courseID, nil
}

// GetCourse возвращает курс по ID.
func (uc *CourseUseCase) GetCourse(ctx context.Context, courseID string) (*entities.Course, error) {
	if courseID == "" {
		return nil, ErrInvalidParams
	}

	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, ErrNotFound
	}

	return course, nil
}

// ListCourses возвращает список курсов с пагинацией.
func (uc *CourseUseCase) ListCourses(ctx context.Context, limit, offset int) ([]*entities.Course, int, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	courses, total, err := uc.courseRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, total, nil
}

// UpdateCourse обновляет курс. Доступно владеющему преподавателю и
// администраторам.
func (uc *CourseUseCase) UpdateCourse(ctx context.Context, actor *services.SessionClaims, courseID, title, description string, capacity int) error {
	if courseID == "" || title == "" || capacity <= 0 {
		return ErrInvalidParams
	}

	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return ErrNotFound
	}
	if !uc.canManage(actor, course) {
		return ErrForbidden
	}

	course.Title = title
	course.Description = description
	course.Capacity = capacity

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	return nil
}

// DeleteCourse удаляет курс вместе с записями на него. Доступно владеющему
// преподавателю и администраторам.
func (uc *CourseUseCase) DeleteCourse(ctx context.Context, actor *services.SessionClaims, courseID string) error {
	if courseID == "" {
		return ErrInvalidParams
	}

	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return ErrNotFound
	}
	if !uc.canManage(actor, course) {
		return ErrForbidden
	}

	if err := uc.courseRepo.Delete(ctx, courseID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return nil
}

// CourseSummary возвращает курс вместе с количеством записанных студентов.
func (uc *CourseUseCase) CourseSummary(ctx context.Context, courseID string) (*entities.CourseSummary, error) {
	course, err := uc.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	count, err := uc.courseRepo.CountEnrollments(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}

	return &entities.CourseSummary{
		Course:        course,
		EnrolledCount: count,
	}, nil
}

func (uc *CourseUseCase) canManage(actor *services.SessionClaims, course *entities.Course) bool {
	if actor.Role == RoleAdmin {
		return true
	}
	return actor.Role == RoleTeacher && course.TeacherID == actor.UserID
}
