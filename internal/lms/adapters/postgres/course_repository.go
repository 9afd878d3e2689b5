// Package postgres содержит реализации репозиториев поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projectathena/internal/lms/domain/entities"
	"projectathena/internal/lms/ports/repositories"
	"projectathena/pkg/logger"
)

// ErrCourseNotFound возвращается, когда курс не существует.
var ErrCourseNotFound = errors.New("course not found")

// CourseRepository реализует интерфейс repositories.CourseRepository.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository создает новый репозиторий курсов.
func NewCourseRepository(pool *pgxpool.Pool) repositories.CourseRepository {
	return &CourseRepository{pool: pool}
}

// Create сохраняет новый курс в БД.
func (r *CourseRepository) Create(ctx context.Context, course *entities.Course) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "CourseRepository.Create"))
	log.Debug(ctx, "creating new course", zap.String("teacherID", course.TeacherID))

	var courseID string
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, description, teacher_id, capacity) VALUES ($1, $2, $3, $4) RETURNING id`,
		course.Title, course.Description, course.TeacherID, course.Capacity,
	).Scan(&courseID)

	if err != nil {
		log.Error(ctx, "failed to create course", zap.Error(err))
		return "", fmt.Errorf("failed to create course: %w", err)
	}

	log.Debug(ctx, "course created", zap.String("courseID", courseID))
	return courseID, nil
}

// GetByID получает курс по ID.
func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (*entities.Course, error) {
	log := logger.Log(ctx).With(zap.String("method", "CourseRepository.GetByID"))
	log.Debug(ctx, "getting course", zap.String("courseID", courseID))

	var course entities.Course
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, teacher_id, capacity, created_at, updated_at
         FROM courses
         WHERE id = $1`,
		courseID,
	).Scan(&course.ID, &course.Title, &course.Description, &course.TeacherID,
		&course.Capacity, &course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "course not found", zap.String("courseID", courseID))
			return nil, nil
		}
		log.Error(ctx, "failed to get course", zap.Error(err))
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return &course, nil
}

// List получает список курсов с пагинацией.
func (r *CourseRepository) List(ctx context.Context, limit, offset int) ([]*entities.Course, int, error) {
	log := logger.Log(ctx).With(zap.String("method", "CourseRepository.List"))
	log.Debug(ctx, "listing courses", zap.Int("limit", limit), zap.Int("offset", offset))

	var totalCount int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&totalCount)
	if err != nil {
		log.Error(ctx, "failed to count courses", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, teacher_id, capacity, created_at, updated_at
         FROM courses
         ORDER BY created_at DESC
         LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		log.Error(ctx, "failed to list courses", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*entities.Course, 0)
	for rows.Next() {
		var course entities.Course
		err := rows.Scan(&course.ID, &course.Title, &course.Description, &course.TeacherID,
			&course.Capacity, &course.CreatedAt, &course.UpdatedAt)
		if err != nil {
			log.Error(ctx, "failed to scan course", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, totalCount, nil
}

// Update обновляет существующий курс.
func (r *CourseRepository) Update(ctx context.Context, course *entities.Course) error {
	log := logger.Log(ctx).With(zap.String("method", "CourseRepository.Update"))
	log.Debug(ctx, "updating course", zap.String("courseID", course.ID))

	result, err := r.pool.Exec(ctx,
		`UPDATE courses SET title = $1, description = $2, capacity = $3, updated_at = NOW() WHERE id = $4`,
		course.Title, course.Description, course.Capacity, course.ID,
	)
	if err != nil {
		log.Error(ctx, "failed to update course", zap.Error(err))
		return fmt.Errorf("failed to update course: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "course not found")
		return ErrCourseNotFound
	}

	return nil
}

// Delete удаляет курс вместе с записями на него.
func (r *CourseRepository) Delete(ctx context.Context, courseID string) error {
	log := logger.Log(ctx).With(zap.String("method", "CourseRepository.Delete"))
	log.Debug(ctx, "deleting course", zap.String("courseID", courseID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM courses WHERE id = $1`,
		courseID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete course", zap.Error(err))
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "course not found")
		return ErrCourseNotFound
	}

	return nil
}

// CountEnrollments возвращает количество студентов, записанных на курс.
func (r *CourseRepository) CountEnrollments(ctx context.Context, courseID string) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", "CourseRepository.CountEnrollments"))
	log.Debug(ctx, "counting enrollments", zap.String("courseID", courseID))

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1`,
		courseID,
	).Scan(&count)

	if err != nil {
		log.Error(ctx, "failed to count enrollments", zap.Error(err))
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	return count, nil
}
