package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/edulane/edulane-api/internal/config"
	"github.com/edulane/edulane-api/internal/handler"
	"github.com/edulane/edulane-api/internal/middleware"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AttendanceHandler       *handler.AttendanceHandler
	TeacherDashboardHandler *handler.TeacherDashboardHandler
	HomeworkHandler         *handler.HomeworkHandler
	GradeHandler            *handler.GradeHandler
	AdminContractHandler    *handler.AdminContractHandler
	AdminAttendanceHandler  *handler.AdminAttendanceHandler
	AdminDashboardHandler   *handler.AdminDashboardHandler
	AdminSubscription       *handler.AdminSubscriptionHandler
	AdminTeacherHandler     *handler.AdminTeacherHandler
	HolidayHandler          *handler.HolidayHandler
	NotificationHandler     *handler.NotificationHandler
	ParentHandler           *handler.ParentHandler
	JWTMiddleware           fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Teacher portal
	teacher := api.Group("/teacher", jwtMiddleware, middleware.RequireRole(models.RoleTeacher),
		middleware.RateLimit("teacher", cfg.RateLimitPerMinute, time.Minute))
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(teacher)
	}
	if deps.TeacherDashboardHandler != nil {
		deps.TeacherDashboardHandler.Register(teacher)
	}
	if deps.HomeworkHandler != nil {
		deps.HomeworkHandler.Register(teacher.Group("/homework"))
	}
	if deps.GradeHandler != nil {
		deps.GradeHandler.Register(teacher.Group("/grades"))
	}

	// Admin portal
	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
	if deps.AdminContractHandler != nil {
		deps.AdminContractHandler.Register(admin.Group("/contracts"))
	}
	if deps.AdminAttendanceHandler != nil {
		deps.AdminAttendanceHandler.Register(admin.Group("/attendance"))
	}
	if deps.AdminDashboardHandler != nil {
		deps.AdminDashboardHandler.Register(admin)
	}
	if deps.AdminSubscription != nil {
		deps.AdminSubscription.Register(admin.Group("/subscriptions"))
	}
	if deps.AdminTeacherHandler != nil {
		deps.AdminTeacherHandler.Register(admin.Group("/teachers"))
	}
	if deps.HolidayHandler != nil {
		deps.HolidayHandler.RegisterAdmin(admin.Group("/holidays"))
	}

	// Parent portal
	if deps.ParentHandler != nil {
		parent := api.Group("/parent", jwtMiddleware, middleware.RequireRole(models.RoleParent),
			middleware.RateLimit("parent", cfg.RateLimitPerMinute, time.Minute))
		deps.ParentHandler.Register(parent)
	}

	// Any authenticated role
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications", jwtMiddleware))
	}
	if deps.HolidayHandler != nil {
		deps.HolidayHandler.RegisterPublic(api.Group("/holidays", jwtMiddleware))
	}
}
