package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/config"
	"github.com/edulane/edulane-api/internal/database"
	"github.com/edulane/edulane-api/internal/handler"
	"github.com/edulane/edulane-api/internal/middleware"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
	"github.com/edulane/edulane-api/internal/router"
	"github.com/edulane/edulane-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	location, err := cfg.Location()
	if err != nil {
		log.Fatalf("failed to resolve timezone: %v", err)
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.ApplicationUser{},
		&models.TeacherProfile{},
		&models.Student{},
		&models.ContractSession{},
		&models.Subscription{},
		&models.AttendanceLog{},
		&models.GroupClass{},
		&models.GroupEnrollment{},
		&models.GroupSession{},
		&models.GroupSessionAttendance{},
		&models.Homework{},
		&models.StudentGrade{},
		&models.Notification{},
		&models.Holiday{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	contractRepo := repository.NewContractRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	homeworkRepo := repository.NewHomeworkRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	auditService := service.NewAuditService(auditRepo, logger)
	notificationService := service.NewNotificationService(
		notificationRepo, contractRepo, attendanceRepo, groupRepo, userRepo,
		cfg.ExpiryAlertDays, cfg.PersistedNotifyCap, cfg.VirtualNotifyLimit,
		location, logger,
	)
	attendanceService := service.NewAttendanceService(attendanceRepo, contractRepo, groupRepo, userRepo, auditService, logger)
	contractService := service.NewContractService(contractRepo, studentRepo, userRepo, notificationService, auditService, validate, cfg.ExpiryAlertDays, logger)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, studentRepo, validate, logger)
	homeworkService := service.NewHomeworkService(homeworkRepo, studentRepo, userRepo, notificationService, validate, logger)
	gradeService := service.NewGradeService(gradeRepo, studentRepo, userRepo, notificationService, validate, logger)
	holidayService := service.NewHolidayService(holidayRepo, validate, location, logger)
	userService := service.NewUserService(userRepo, studentRepo, notificationService, auditService, validate, logger)
	teacherDashboardService := service.NewTeacherDashboardService(attendanceRepo, groupRepo, contractRepo, homeworkRepo, holidayRepo, userRepo, location, logger)
	adminDashboardService := service.NewAdminDashboardService(
		contractRepo, attendanceRepo, userRepo, redisClient,
		cfg.DashboardCacheTTL, cfg.ExpiryAlertDays, cfg.LowHoursThreshold,
		location, logger,
	)

	development := cfg.Development()

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AttendanceHandler:       handler.NewAttendanceHandler(attendanceService, development, logger),
		TeacherDashboardHandler: handler.NewTeacherDashboardHandler(teacherDashboardService, development, logger),
		HomeworkHandler:         handler.NewHomeworkHandler(homeworkService, development, logger),
		GradeHandler:            handler.NewGradeHandler(gradeService, development, logger),
		AdminContractHandler:    handler.NewAdminContractHandler(contractService, development, logger),
		AdminAttendanceHandler:  handler.NewAdminAttendanceHandler(attendanceService, development, logger),
		AdminDashboardHandler:   handler.NewAdminDashboardHandler(adminDashboardService, auditService, development, logger),
		AdminSubscription:       handler.NewAdminSubscriptionHandler(subscriptionService, development, logger),
		AdminTeacherHandler:     handler.NewAdminTeacherHandler(userService, development, logger),
		HolidayHandler:          handler.NewHolidayHandler(holidayService, development, logger),
		NotificationHandler:     handler.NewNotificationHandler(notificationService, development, logger),
		ParentHandler:           handler.NewParentHandler(userService, contractService, subscriptionService, homeworkService, gradeService, development, logger),
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
