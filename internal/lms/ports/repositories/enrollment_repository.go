package repositories

import (
	"context"

	"projectathena/internal/lms/domain/entities"
)

// EnrollmentRepository определяет интерфейс для работы с записями на курсы.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entities.Enrollment) (string, error)
	Delete(ctx context.Context, courseID, studentID string) error
	ListByCourse(ctx context.Context, courseID string) ([]*entities.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]*entities.Enrollment, error)
}
