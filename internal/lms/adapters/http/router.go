// Package http содержит компоненты HTTP сервера сервиса курсов.
package http

import (
	"github.com/gofiber/fiber/v3"

	"projectathena/internal/lms/adapters/http/courses"
	"projectathena/internal/lms/adapters/http/middleware"
	"projectathena/internal/lms/app"
	svc "projectathena/internal/lms/ports/services"
)

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(fiberApp *fiber.App, courseUseCase *app.CourseUseCase, enrollmentUseCase *app.EnrollmentUseCase, tokenSvc svc.TokenService) {
	courseHandler := courses.NewHandler(courseUseCase, enrollmentUseCase)

	// Middleware для всех запросов.
	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())

	// API версии 1, все маршруты за проверкой токена.
	apiV1 := fiberApp.Group("/api/v1")
	apiV1.Use(middleware.NewAuthMiddleware(tokenSvc))

	courseRoutes := apiV1.Group("/courses")
	courseRoutes.Post("/", courseHandler.CreateCourse)
	courseRoutes.Get("/", courseHandler.ListCourses)
	courseRoutes.Get("/:course_id", courseHandler.GetCourse)
	courseRoutes.Put("/:course_id", courseHandler.UpdateCourse)
	courseRoutes.Delete("/:course_id", courseHandler.DeleteCourse)
	courseRoutes.Get("/:course_id/summary", courseHandler.CourseSummary)

	courseRoutes.Post("/:course_id/enrollments", courseHandler.Enroll)
	courseRoutes.Delete("/:course_id/enrollments", courseHandler.Unenroll)
	courseRoutes.Get("/:course_id/enrollments", courseHandler.ListEnrollments)

	enrollmentRoutes := apiV1.Group("/enrollments")
	enrollmentRoutes.Get("/my", courseHandler.MyEnrollments)

	// Обработчик для несуществующих маршрутов.
	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
