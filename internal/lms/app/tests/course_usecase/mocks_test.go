package courseusecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"projectathena/internal/lms/domain/entities"
)

type mockCourseRepository struct {
	mock.Mock
}

func (m *mockCourseRepository) Create(ctx context.Context, course *entities.Course) (string, error) {
	args := m.Called(ctx, course)
	return args.String(0), args.Error(1)
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id string) (*entities.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Course), args.Error(1)
}

func (m *mockCourseRepository) List(ctx context.Context, limit, offset int) ([]*entities.Course, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Course), args.Int(1), args.Error(2)
}

func (m *mockCourseRepository) Update(ctx context.Context, course *entities.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *mockCourseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCourseRepository) CountEnrollments(ctx context.Context, courseID string) (int, error) {
	args := m.Called(ctx, courseID)
	return args.Int(0), args.Error(1)
}
