// Package repositories определяет интерфейсы репозиториев сервиса курсов.
package repositories

import (
	"context"

	"projectathena/internal/lms/domain/entities"
)

// CourseRepository определяет интерфейс для работы с репозиторием курсов.
type CourseRepository interface {
	Create(ctx context.Context, course *entities.Course) (string, error)
	GetByID(ctx context.Context, courseID string) (*entities.Course, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Course, int, error)
	Update(ctx context.Context, course *entities.Course) error
	Delete(ctx context.Context, courseID string) error
	CountEnrollments(ctx context.Context, courseID string) (int, error)
}
