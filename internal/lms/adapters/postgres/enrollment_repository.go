package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projectathena/internal/lms/domain/entities"
	"projectathena/internal/lms/ports/repositories"
	"projectathena/pkg/logger"
)

const uniqueViolationCode = "23505"

// Ошибки репозитория записей на курсы.
var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("student already enrolled in course")
)

// EnrollmentRepository реализует интерфейс repositories.EnrollmentRepository.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository создает новый репозиторий записей на курсы.
func NewEnrollmentRepository(pool *pgxpool.Pool) repositories.EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Create сохраняет новую запись студента на курс. Повторная запись на тот
// же курс выражается через уникальное ограничение (course_id, student_id).
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *entities.Enrollment) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "EnrollmentRepository.Create"))
	log.Debug(ctx, "creating enrollment",
		zap.String("courseID", enrollment.CourseID),
		zap.String("studentID", enrollment.StudentID))

	var enrollmentID string
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (course_id, student_id) VALUES ($1, $2) RETURNING id`,
		enrollment.CourseID, enrollment.StudentID,
	).Scan(&enrollmentID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "student already enrolled")
			return "", ErrAlreadyEnrolled
		}
		log.Error(ctx, "failed to create enrollment", zap.Error(err))
		return "", fmt.Errorf("failed to create enrollment: %w", err)
	}

	log.Debug(ctx, "enrollment created", zap.String("enrollmentID", enrollmentID))
	return enrollmentID, nil
}

// Delete удаляет запись студента на курс.
func (r *EnrollmentRepository) Delete(ctx context.Context, courseID, studentID string) error {
	log := logger.Log(ctx).With(zap.String("method", "EnrollmentRepository.Delete"))
	log.Debug(ctx, "deleting enrollment",
		zap.String("courseID", courseID),
		zap.String("studentID", studentID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM enrollments WHERE course_id = $1 AND student_id = $2`,
		courseID, studentID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete enrollment", zap.Error(err))
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "enrollment not found")
		return ErrEnrollmentNotFound
	}

	return nil
}

// ListByCourse получает записи всех студентов на курс.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]*entities.Enrollment, error) {
	log := logger.Log(ctx).With(zap.String("method", "EnrollmentRepository.ListByCourse"))
	log.Debug(ctx, "listing enrollments by course", zap.String("courseID", courseID))

	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, student_id, enrolled_at, grade
         FROM enrollments
         WHERE course_id = $1
         ORDER BY enrolled_at`,
		courseID,
	)
	if err != nil {
		log.Error(ctx, "failed to list enrollments", zap.Error(err))
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	return scanEnrollments(ctx, rows)
}

// ListByStudent получает все записи студента на курсы.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]*entities.Enrollment, error) {
	log := logger.Log(ctx).With(zap.String("method", "EnrollmentRepository.ListByStudent"))
	log.Debug(ctx, "listing enrollments by student", zap.String("studentID", studentID))

	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, student_id, enrolled_at, grade
         FROM enrollments
         WHERE student_id = $1
         ORDER BY enrolled_at DESC`,
		studentID,
	)
	if err != nil {
		log.Error(ctx, "failed to list enrollments", zap.Error(err))
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	return scanEnrollments(ctx, rows)
}

func scanEnrollments(ctx context.Context, rows pgx.Rows) ([]*entities.Enrollment, error) {
	log := logger.Log(ctx)

	enrollments := make([]*entities.Enrollment, 0)
	for rows.Next() {
		var enrollment entities.Enrollment
		err := rows.Scan(&enrollment.ID, &enrollment.CourseID, &enrollment.StudentID,
			&enrollment.EnrolledAt, &enrollment.Grade)
		if err != nil {
			log.Error(ctx, "failed to scan enrollment", zap.Error(err))
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return enrollments, nil
}
