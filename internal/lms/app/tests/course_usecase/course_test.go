package courseusecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"projectathena/internal/lms/app"
	"projectathena/internal/lms/domain/entities"
	"projectathena/internal/lms/ports/services"
)

var errDatabase = errors.New("database error")

func teacherActor() *services.SessionClaims {
	return &services.SessionClaims{UserID: "teacher-1", Email: "teacher@example.com", Role: app.RoleTeacher}
}

func studentActor() *services.SessionClaims {
	return &services.SessionClaims{UserID: "student-1", Email: "student@example.com", Role: app.RoleStudent}
}

func adminActor() *services.SessionClaims {
	return &services.SessionClaims{UserID: "admin-1", Email: "admin@example.com", Role: app.RoleAdmin}
}

func ownedCourse() *entities.Course {
	return &entities.Course{
		ID:          "course-1",
		Title:       "Distributed Systems",
		Description: "Consensus and replication",
		TeacherID:   "teacher-1",
		Capacity:    30,
	}
}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		actor       *services.SessionClaims
		title       string
		capacity    int
		setupMocks  func(repo *mockCourseRepository)
		expectedID  string
		expectedErr error
	}{
		{
			name:     "teacher creates a course",
			actor:    teacherActor(),
			title:    "Distributed Systems",
			capacity: 30,
			setupMocks: func(repo *mockCourseRepository) {
				repo.On("Create", ctx, mock.MatchedBy(func(c *entities.Course) bool {
					return c.Title == "Distributed Systems" && c.TeacherID == "teacher-1" && c.Capacity == 30
				})).Return("course-1", nil).Once()
			},
			expectedID: "course-1",
		},
		{
			name:     "admin creates a course",
			actor:    adminActor(),
			title:    "Algorithms",
			capacity: 50,
			setupMocks: func(repo *mockCourseRepository) {
				repo.On("Create", ctx, mock.Anything).Return("course-2", nil).Once()
			},
			expectedID: "course-2",
		},
		{
			name:        "student cannot create courses",
			actor:       studentActor(),
			title:       "Algorithms",
			capacity:    50,
			setupMocks:  func(_ *mockCourseRepository) {},
			expectedErr: app.ErrForbidden,
		},
		{
			name:        "empty title rejected",
			actor:       teacherActor(),
			title:       "",
			capacity:    30,
			setupMocks:  func(_ *mockCourseRepository) {},
			expectedErr: app.ErrInvalidParams,
		},
		{
			name:        "non-positive capacity rejected",
			actor:       teacherActor(),
			title:       "Algorithms",
			capacity:    0,
			setupMocks:  func(_ *mockCourseRepository) {},
			expectedErr: app.ErrInvalidParams,
		},
		{
			name:     "repository failure",
			actor:    teacherActor(),
			title:    "Algorithms",
			capacity: 30,
			setupMocks: func(repo *mockCourseRepository) {
				repo.On("Create", ctx, mock.Anything).Return("", errDatabase).Once()
			},
			expectedErr: errDatabase,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := new(mockCourseRepository)
			testCase.setupMocks(repo)

			useCase := app.NewCourseUseCase(repo)
			courseID, err := useCase.CreateCourse(ctx, testCase.actor, testCase.title, "desc", testCase.capacity)

			if testCase.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, testCase.expectedErr)
				assert.Empty(t, courseID)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testCase.expectedID, courseID)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestGetCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("existing course", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("GetByID", ctx, "course-1").Return(ownedCourse(), nil).Once()

		useCase := app.NewCourseUseCase(repo)
		course, err := useCase.GetCourse(ctx, "course-1")

		require.NoError(t, err)
		assert.Equal(t, "Distributed Systems", course.Title)
		repo.AssertExpectations(t)
	})

	t.Run("missing course", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("GetByID", ctx, "missing").Return(nil, nil).Once()

		useCase := app.NewCourseUseCase(repo)
		course, err := useCase.GetCourse(ctx, "missing")

		assert.Nil(t, course)
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		repo := new(mockCourseRepository)

		useCase := app.NewCourseUseCase(repo)
		_, err := useCase.GetCourse(ctx, "")

		assert.ErrorIs(t, err, app.ErrInvalidParams)
		repo.AssertNotCalled(t, "GetByID")
	})
}

func TestListCourses(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults applied to out-of-range paging", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("List", ctx, 20, 0).Return([]*entities.Course{ownedCourse()}, 1, nil).Once()

		useCase := app.NewCourseUseCase(repo)
		courses, total, err := useCase.ListCourses(ctx, -5, -10)

		require.NoError(t, err)
		assert.Len(t, courses, 1)
		assert.Equal(t, 1, total)
		repo.AssertExpectations(t)
	})

	t.Run("limit capped", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("List", ctx, 100, 40).Return([]*entities.Course{}, 0, nil).Once()

		useCase := app.NewCourseUseCase(repo)
		_, _, err := useCase.ListCourses(ctx, 1000, 40)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestUpdateCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("owning teacher updates", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("GetByID", ctx, "course-1").Return(ownedCourse(), nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(c *entities.Course) bool {
			return c.ID == "course-1" && c.Title == "New Title" && c.Capacity == 40
		})).Return(nil).Once()

		useCase := app.NewCourseUseCase(repo)
		err := useCase.UpdateCourse(ctx, teacherActor(), "course-1", "New Title", "new desc", 40)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("foreign teacher forbidden", func(t *testing.T) {
		other := &services.SessionClaims{UserID: "teacher-2", Role: app.RoleTeacher}

		repo := new(mockCourseRepository)
		repo.On("GetByID", ctx, "course-1").Return(ownedCourse(), nil).Once()

		useCase := app.NewCourseUseCase(repo)
		err := useCase.UpdateCourse(ctx, other, "course-1", "New Title", "new desc", 40)

		assert.ErrorIs(t, err, app.ErrForbidden)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("admin may update any course", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("GetByID", ctx, "course-1").Return(ownedCourse(), nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()

		useCase := app.NewCourseUseCase(repo)
		err := useCase.UpdateCourse(ctx, adminActor(), "course-1", "New Title", "new desc", 40)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing course", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("GetByID", ctx, "missing").Return(nil, nil).Once()

		useCase := app.NewCourseUseCase(repo)
		err := useCase.UpdateCourse(ctx, adminActor(), "missing", "New Title", "new desc", 40)

		assert.ErrorIs(t, err, app.ErrNotFound)
	})
}

func TestDeleteCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("owning teacher deletes", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("GetByID", ctx, "course-1").Return(ownedCourse(), nil).Once()
		repo.On("Delete", ctx, "course-1").Return(nil).Once()

		useCase := app.NewCourseUseCase(repo)
		err := useCase.DeleteCourse(ctx, teacherActor(), "course-1")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("student forbidden", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("GetByID", ctx, "course-1").Return(ownedCourse(), nil).Once()

		useCase := app.NewCourseUseCase(repo)
		err := useCase.DeleteCourse(ctx, studentActor(), "course-1")

		assert.ErrorIs(t, err, app.ErrForbidden)
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestCourseSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("course with enrollment count", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("GetByID", ctx, "course-1").Return(ownedCourse(), nil).Once()
		repo.On("CountEnrollments", ctx, "course-1").Return(12, nil).Once()

		useCase := app.NewCourseUseCase(repo)
		summary, err := useCase.CourseSummary(ctx, "course-1")

		require.NoError(t, err)
		assert.Equal(t, "course-1", summary.Course.ID)
		assert.Equal(t, 12, summary.EnrolledCount)
		repo.AssertExpectations(t)
	})

	t.Run("missing course short-circuits", func(t *testing.T) {
		repo := new(mockCourseRepository)
		repo.On("GetByID", ctx, "missing").Return(nil, nil).Once()

		useCase := app.NewCourseUseCase(repo)
		summary, err := useCase.CourseSummary(ctx, "missing")

		assert.Nil(t, summary)
		assert.ErrorIs(t, err, app.ErrNotFound)
		repo.AssertNotCalled(t, "CountEnrollments")
	})
}
