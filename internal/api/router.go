package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ddp/interlock-portal/docs"
	"github.com/ddp/interlock-portal/internal/api/handler"
	"github.com/ddp/interlock-portal/internal/api/middleware"
	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
	"github.com/ddp/interlock-portal/internal/core/service"
	"github.com/ddp/interlock-portal/internal/infrastructure/config"
	mongodb "github.com/ddp/interlock-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/ddp/interlock-portal/internal/infrastructure/db/redis"
	"github.com/ddp/interlock-portal/internal/infrastructure/email"
	"github.com/ddp/interlock-portal/internal/session"
	"github.com/ddp/interlock-portal/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// Cookie-presence redirects run before routing so protected pages
	// bounce to /login without touching the session store.
	e.Pre(middleware.EdgeRedirect(middleware.DefaultEdgeConfig(cfg.Session.CookieName)))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	deviceRepo := mongodb.NewDeviceRepository(db)
	companyRepo := mongodb.NewCompanyRepository(db)
	reservationRepo := mongodb.NewReservationRepository(db)
	recordRepo := mongodb.NewRecordRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	drivingLogRepo := mongodb.NewDrivingLogRepository(db)
	logScheduleRepo := mongodb.NewLogScheduleRepository(db)
	sessionRepo := redisdb.NewSessionRepository(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	var authenticator ports.Authenticator = authService
	if cfg.Session.MockAuth {
		authenticator = session.NewTableAuthenticator(nil)
	}
	sessions := session.NewStore(sessionRepo, authenticator, cfg.Session.TTL)

	var sender ports.EmailSender = email.NoopSender{}
	if cfg.Resend.APIKey != "" {
		sender = email.NewResendSender(cfg.Resend.APIKey, cfg.Resend.From)
	}

	notificationService := service.NewNotificationService(notificationRepo, sender, logger.Component("notifications"))
	deviceService := service.NewDeviceService(deviceRepo, logger.Component("devices"))
	companyService := service.NewCompanyService(companyRepo, logger.Component("companies"))
	reservationService := service.NewReservationService(
		reservationRepo, recordRepo, deviceService, userRepo, notificationService, logger.Component("reservations"))
	drivingLogService := service.NewDrivingLogService(
		drivingLogRepo, logScheduleRepo, userRepo, notificationService, logger.Component("driving-logs"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, sessions, cfg.Session.CookieName, cfg.Session.TTL)
	deviceHandler := handler.NewDeviceHandler(deviceService)
	companyHandler := handler.NewCompanyHandler(companyService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	recordHandler := handler.NewRecordHandler(recordRepo)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	drivingLogHandler := handler.NewDrivingLogHandler(drivingLogService)
	dashboardHandler := handler.NewDashboardHandler(reservationService, deviceService, companyService)

	// --- Auth routes (session-cookie flow, no guard) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	// --- User portal ---
	user := e.Group("/user", middleware.Guard(sessions, cfg.Session.CookieName, domain.RoleUser))
	user.GET("/dashboard", dashboardHandler.User)
	user.PUT("/profile", authHandler.UpdateProfile)
	user.GET("/device", deviceHandler.Mine)
	user.GET("/operators", companyHandler.ListApproved)
	user.POST("/reservations", reservationHandler.Create)
	user.GET("/reservations", reservationHandler.ListMine)
	user.POST("/reservations/:id/cancel", reservationHandler.Cancel)
	user.GET("/records", recordHandler.ListMine)
	user.POST("/driving-logs", drivingLogHandler.Submit)
	user.GET("/driving-logs", drivingLogHandler.ListMine)
	user.GET("/log-schedule", drivingLogHandler.MySchedule)
	user.GET("/log-schedule/dday", drivingLogHandler.Dday)
	user.GET("/notifications", notificationHandler.List)
	user.POST("/notifications/:id/read", notificationHandler.MarkRead)

	// --- Company portal ---
	company := e.Group("/company", middleware.Guard(sessions, cfg.Session.CookieName, domain.RoleCompany))
	company.GET("/dashboard", dashboardHandler.Company)
	company.GET("/devices", deviceHandler.ListForCompany)
	company.POST("/devices/:id/assign", deviceHandler.Assign)
	company.GET("/reservations", reservationHandler.ListForCompany)
	company.POST("/reservations/:id/confirm", reservationHandler.Confirm)
	company.POST("/reservations/:id/reject", reservationHandler.Reject)
	company.POST("/reservations/:id/complete", reservationHandler.Complete)
	company.GET("/service-records", recordHandler.ListForCompany)

	// --- Admin portal ---
	admin := e.Group("/admin", middleware.Guard(sessions, cfg.Session.CookieName, domain.RoleAdmin))
	admin.GET("/dashboard", dashboardHandler.Admin)
	admin.GET("/users", authHandler.ListUsers)
	admin.POST("/companies", companyHandler.Create)
	admin.GET("/companies", companyHandler.List)
	admin.PUT("/companies/:id/status", companyHandler.SetStatus)
	admin.POST("/devices", deviceHandler.Register)
	admin.GET("/devices", deviceHandler.ListAll)
	admin.PUT("/devices/:id/status", deviceHandler.ChangeStatus)
	admin.GET("/reservations", reservationHandler.ListAll)
	admin.GET("/log", recordHandler.ListAll)
	admin.GET("/driving-logs", drivingLogHandler.ListAll)
	admin.GET("/driving-logs/flagged", drivingLogHandler.ListFlagged)
	admin.GET("/driving-logs/pending-review", drivingLogHandler.ListPendingReview)
	admin.PUT("/driving-logs/:id/review", drivingLogHandler.Review)
	admin.POST("/log-schedules", drivingLogHandler.SetSchedule)
	admin.GET("/log-schedules", drivingLogHandler.ListSchedules)

	// --- Token API for integrations (bearer JWT instead of session cookie) ---
	apiV1 := e.Group("/api/v1", middleware.Auth(cfg.JWTSecret), middleware.RBAC(domain.RoleAdmin))
	apiV1.GET("/devices", deviceHandler.ListAll)
	apiV1.GET("/reservations", reservationHandler.ListAll)
	apiV1.GET("/records", recordHandler.ListAll)
	apiV1.GET("/driving-logs", drivingLogHandler.ListAll)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
