// Package courses содержит HTTP обработчики сервиса курсов.
package courses

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"projectathena/internal/lms/adapters/http/middleware"
	"projectathena/internal/lms/app"
	"projectathena/internal/lms/app/dto"
	"projectathena/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreateCourse    = "course handler: create course"
	LogHandlerGetCourse       = "course handler: get course"
	LogHandlerListCourses     = "course handler: list courses"
	LogHandlerUpdateCourse    = "course handler: update course"
	LogHandlerDeleteCourse    = "course handler: delete course"
	LogHandlerCourseSummary   = "course handler: course summary"
	LogHandlerEnroll          = "course handler: enroll"
	LogHandlerUnenroll        = "course handler: unenroll"
	LogHandlerListEnrollments = "course handler: list enrollments"
	LogHandlerMyEnrollments   = "course handler: my enrollments"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorUnauthorized         = "unauthorized"
)

// Вспомогательная функция для отправки ошибки HTTP.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// statusForError переводит ошибки бизнес-логики в HTTP статусы.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound, "course not found"
	case errors.Is(err, app.ErrForbidden):
		return http.StatusForbidden, "operation not permitted for this role"
	case errors.Is(err, app.ErrInvalidParams):
		return http.StatusBadRequest, "invalid parameters"
	case errors.Is(err, app.ErrCourseFull):
		return http.StatusConflict, "course is at capacity"
	case errors.Is(err, app.ErrAlreadyEnrolled):
		return http.StatusConflict, "already enrolled in course"
	case errors.Is(err, app.ErrNotEnrolled):
		return http.StatusNotFound, "not enrolled in course"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// Handler содержит HTTP обработчики курсов и записей на них.
type Handler struct {
	courseUseCase     *app.CourseUseCase
	enrollmentUseCase *app.EnrollmentUseCase
}

// NewHandler создает новый экземпляр обработчика курсов.
func NewHandler(courseUseCase *app.CourseUseCase, enrollmentUseCase *app.EnrollmentUseCase) *Handler {
	return &Handler{
		courseUseCase:     courseUseCase,
		enrollmentUseCase: enrollmentUseCase,
	}
}

// CreateCourse обрабатывает запрос на создание курса.
func (h *Handler) CreateCourse(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateCourse)

	actor, ok := middleware.SessionFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.CreateCourseRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	courseID, err := h.courseUseCase.CreateCourse(requestCtx, actor, req.Title, req.Description, req.Capacity)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"id": courseID,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetCourse обрабатывает запрос на получение курса.
func (h *Handler) GetCourse(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetCourse)

	course, err := h.courseUseCase.GetCourse(requestCtx, ctx.Params("course_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewCourseResponse(course)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ListCourses обрабатывает запрос на список курсов.
func (h *Handler) ListCourses(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListCourses)

	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	courses, total, err := h.courseUseCase.ListCourses(requestCtx, limit, offset)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForError(err)
		return sendErrorResponse(ctx, status, message)
	}

	response := dto.CourseListResponse{
		Courses: make([]dto.CourseResponse, 0, len(courses)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for _, course := range courses {
		response.Courses = append(response.Courses, dto.NewCourseResponse(course))
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// UpdateCourse обрабатывает запрос на обновление курса.
func (h *Handler) UpdateCourse(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateCourse)

	actor, ok := middleware.SessionFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.UpdateCourseRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	err := h.courseUseCase.UpdateCourse(requestCtx, actor, ctx.Params("course_id"), req.Title, req.Description, req.Capacity)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "course updated",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// DeleteCourse обрабатывает запрос на удаление курса.
func (h *Handler) DeleteCourse(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteCourse)

	actor, ok := middleware.SessionFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	err := h.courseUseCase.DeleteCourse(requestCtx, actor, ctx.Params("course_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "course deleted",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// CourseSummary обрабатывает запрос на сводку по курсу.
func (h *Handler) CourseSummary(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCourseSummary)

	summary, err := h.courseUseCase.CourseSummary(requestCtx, ctx.Params("course_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.CourseSummaryResponse{
		Course:        dto.NewCourseResponse(summary.Course),
		EnrolledCount: summary.EnrolledCount,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Enroll обрабатывает запрос студента на запись на курс.
func (h *Handler) Enroll(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerEnroll)

	actor, ok := middleware.SessionFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	enrollmentID, err := h.enrollmentUseCase.Enroll(requestCtx, actor, ctx.Params("course_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"id": enrollmentID,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Unenroll обрабатывает запрос студента на снятие с курса.
func (h *Handler) Unenroll(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUnenroll)

	actor, ok := middleware.SessionFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	err := h.enrollmentUseCase.Unenroll(requestCtx, actor, ctx.Params("course_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "unenrolled successfully",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ListEnrollments обрабатывает запрос на список записей на курс.
func (h *Handler) ListEnrollments(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListEnrollments)

	actor, ok := middleware.SessionFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	enrollments, err := h.enrollmentUseCase.ListCourseEnrollments(requestCtx, actor, ctx.Params("course_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForError(err)
		return sendErrorResponse(ctx, status, message)
	}

	response := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		response = append(response, dto.NewEnrollmentResponse(enrollment))
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// MyEnrollments обрабатывает запрос студента на список своих записей.
func (h *Handler) MyEnrollments(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerMyEnrollments)

	actor, ok := middleware.SessionFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	enrollments, err := h.enrollmentUseCase.ListStudentEnrollments(requestCtx, actor)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForError(err)
		return sendErrorResponse(ctx, status, message)
	}

	response := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		response = append(response, dto.NewEnrollmentResponse(enrollment))
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
