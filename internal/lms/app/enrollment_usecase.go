package app

import (
	"context"
	"errors"
	"fmt"

	"projectathena/internal/lms/adapters/postgres"
	"projectathena/internal/lms/domain/entities"
	"projectathena/internal/lms/ports/repositories"
	"projectathena/internal/lms/ports/services"
)

// Ошибки записи на курсы.
var (
	ErrCourseFull      = errors.New("course is at capacity")
	ErrAlreadyEnrolled = errors.New("already enrolled in course")
	ErrNotEnrolled     = errors.New("not enrolled in course")
)

// EnrollmentUseCase представляет бизнес-логику записи на курсы.
type EnrollmentUseCase struct {
	courseRepo     repositories.CourseRepository
	enrollmentRepo repositories.EnrollmentRepository
}

// NewEnrollmentUseCase создает новый экземпляр EnrollmentUseCase.
func NewEnrollmentUseCase(courseRepo repositories.CourseRepository, enrollmentRepo repositories.EnrollmentRepository) *EnrollmentUseCase {
	return &EnrollmentUseCase{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// Enroll записывает студента на курс. Доступно только студентам; вместимость
// курса проверяется на момент записи.
func (uc *EnrollmentUseCase) Enroll(ctx context.Context, actor *services.SessionClaims, courseID string) (string, error) {
	if actor.Role != RoleStudent {
		return "", ErrForbidden
	}
	if courseID == "" {
		return "", ErrInvalidParams
	}

	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return "", fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return "", ErrNotFound
	}

	count, err := uc.courseRepo.CountEnrollments(ctx, courseID)
	if err != nil {
		return "", fmt.Errorf("failed to count enrollments: %w", err)
	}
	if count >= course.Capacity {
		return "", ErrCourseFull
	}

	enrollment := entities.NewEnrollment(courseID, actor.UserID)
	enrollmentID, err := uc.enrollmentRepo.Create(ctx, enrollment)
	if err != nil {
		if errors.Is(err, postgres.ErrAlreadyEnrolled) {
			return "", ErrAlreadyEnrolled
		}
		return "", fmt.Errorf("failed to create enrollment: %w", err)
	}

	return enrollmentID, nil
}

// Unenroll снимает студента с курса.
func (uc *EnrollmentUseCase) Unenroll(ctx context.Context, actor *services.SessionClaims, courseID string) error {
	if actor.Role != RoleStudent {
		return ErrForbidden
	}
	if courseID == "" {
		return ErrInvalidParams
	}

	err := uc.enrollmentRepo.Delete(ctx, courseID, actor.UserID)
	if err != nil {
		if errors.Is(err, postgres.ErrEnrollmentNotFound) {
			return ErrNotEnrolled
		}
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	return nil
}

// ListCourseEnrollments возвращает записи студентов на курс. Доступно
// владеющему преподавателю и администраторам.
func (uc *EnrollmentUseCase) ListCourseEnrollments(ctx context.Context, actor *services.SessionClaims, courseID string) ([]*entities.Enrollment, error) {
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

	if actor.Role != RoleAdmin && !(actor.Role == RoleTeacher && course.TeacherID == actor.UserID) {
		return nil, ErrForbidden
	}

	enrollments, err := uc.enrollmentRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	return enrollments, nil
}

// ListStudentEnrollments возвращает записи текущего студента на курсы.
func (uc *EnrollmentUseCase) ListStudentEnrollments(ctx context.Context, actor *services.SessionClaims) ([]*entities.Enrollment, error) {
	enrollments, err := uc.enrollmentRepo.ListByStudent(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	return enrollments, nil
}
