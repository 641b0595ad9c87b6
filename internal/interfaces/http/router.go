package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/gestion-ti-api/internal/application/analytics"
	"github.com/jhoicas/gestion-ti-api/internal/application/auth"
	"github.com/jhoicas/gestion-ti-api/internal/application/report"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	TaskUC          *usecase.TaskUseCase
	TicketUC        *usecase.TicketUseCase
	CalendarUC      *usecase.CalendarUseCase
	MatrixUC        *usecase.MatrixUseCase
	JournalUC       *usecase.JournalUseCase
	ReminderUC      *usecase.PaymentReminderUseCase
	ServiceOrderUC  *usecase.ServiceOrderUseCase
	NotificationUC  *usecase.NotificationUseCase
	UserUC          *usecase.UserUseCase
	DepartmentUC    *usecase.DepartmentUseCase
	BackupUC        *usecase.BackupUseCase
	DashboardUC     *analytics.DashboardUseCase
	ExportUC        *report.ExportUseCase
	JWTSecret       string
	CORSOrigins     string
	LoginRateLimit  int // intentos de login por minuto e IP; 0 desactiva el límite
	MetricsRegistry *prometheus.Registry
	Log             *logger.Logger
}

// Router registra middlewares globales y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	var metrics *Metrics
	if deps.MetricsRegistry != nil {
		metrics = NewMetrics(deps.MetricsRegistry)
	}

	app.Use(requestid.New())
	app.Use(RequestLogger(log.Component("http"), metrics))
	if deps.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: deps.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsRegistry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	loginHandlers := []fiber.Handler{}
	if deps.LoginRateLimit > 0 {
		loginHandlers = append(loginHandlers, limiter.New(limiter.Config{
			Max:        deps.LoginRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return fail(c, fiber.StatusTooManyRequests, CodeTooManyRequests, "demasiados intentos de login")
			},
		}))
	}
	api.Post("/auth/login", append(loginHandlers, authHandler.Login)...)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/verify", authHandler.Verify)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	exportHandler := NewExportHandler(deps.ExportUC, metrics, log)

	// Tasks
	taskHandler := NewTaskHandler(deps.TaskUC, log)
	tasks := protected.Group("/tasks")
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/:id", taskHandler.GetByID)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)

	// Tickets
	ticketHandler := NewTicketHandler(deps.TicketUC, log)
	tickets := protected.Group("/tickets")
	tickets.Get("/", ticketHandler.List)
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/export/:format", exportHandler.Tickets)
	tickets.Get("/:id", ticketHandler.GetByID)
	tickets.Put("/:id", ticketHandler.Update)
	tickets.Delete("/:id", ticketHandler.Delete)
	tickets.Post("/:id/rate", ticketHandler.Rate)
	tickets.Get("/:id/comments", ticketHandler.ListComments)
	tickets.Post("/:id/comments", ticketHandler.AddComment)
	tickets.Get("/:id/history", ticketHandler.History)

	// Calendar
	calendarHandler := NewCalendarHandler(deps.CalendarUC, log)
	events := protected.Group("/calendar-events")
	events.Get("/", calendarHandler.List)
	events.Post("/", calendarHandler.Create)
	events.Get("/:id", calendarHandler.GetByID)
	events.Put("/:id", calendarHandler.Update)
	events.Delete("/:id", calendarHandler.Delete)
	events.Put("/:id/update-recurring", calendarHandler.UpdateRecurring)
	events.Delete("/:id/delete-recurring", calendarHandler.DeleteRecurring)

	// Matrices
	matrixHandler := NewMatrixHandler(deps.MatrixUC, log)
	protected.Get("/matrix-templates", matrixHandler.Templates)
	matrices := protected.Group("/matrices")
	matrices.Get("/", matrixHandler.List)
	matrices.Post("/", matrixHandler.Create)
	matrices.Get("/export/:format", exportHandler.Matrices)
	matrices.Get("/:id", matrixHandler.GetByID)
	matrices.Put("/:id", matrixHandler.Update)
	matrices.Delete("/:id", matrixHandler.Delete)
	matrices.Get("/:id/history", matrixHandler.History)

	// Journal (las rutas fijas van antes que /:id)
	journalHandler := NewJournalHandler(deps.JournalUC, log)
	journal := protected.Group("/journal")
	journal.Get("/", journalHandler.List)
	journal.Post("/", journalHandler.Create)
	journal.Get("/stats", journalHandler.Stats)
	journal.Get("/export/:format", exportHandler.Journal)
	journal.Get("/:id", journalHandler.GetByID)
	journal.Put("/:id", journalHandler.Update)
	journal.Delete("/:id", journalHandler.Delete)

	// Payment reminders
	reminderHandler := NewPaymentReminderHandler(deps.ReminderUC, log)
	reminders := protected.Group("/payment-reminders")
	reminders.Get("/", reminderHandler.List)
	reminders.Post("/", reminderHandler.Create)
	reminders.Get("/:id", reminderHandler.GetByID)
	reminders.Put("/:id", reminderHandler.Update)
	reminders.Delete("/:id", reminderHandler.Delete)
	reminders.Post("/:id/pay", reminderHandler.Pay)

	// Service orders
	orderHandler := NewServiceOrderHandler(deps.ServiceOrderUC, log)
	orders := protected.Group("/service-orders")
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Put("/:id/monthly-status", orderHandler.MonthlyStatus)

	// Notifications
	notificationHandler := NewNotificationHandler(deps.NotificationUC, log)
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Post("/", RequireRole(access.RoleAdmin), notificationHandler.Create)
	notifications.Put("/mark-all-read", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)

	// Users y roles
	userHandler := NewUserHandler(deps.UserUC, log)
	protected.Get("/roles", userHandler.Roles)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", RequireRole(access.RoleAdmin), userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", RequireRole(access.RoleSuperAdmin), userHandler.Delete)
	users.Put("/:id/toggle-status", RequireRole(access.RoleAdmin), userHandler.ToggleStatus)
	users.Post("/:id/suspend", RequireRole(access.RoleAdmin), userHandler.Suspend)
	users.Post("/:id/unsuspend", RequireRole(access.RoleSuperAdmin), userHandler.Unsuspend)
	users.Put("/:id/password", userHandler.ResetPassword)

	// Departments
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC, log)
	departments := protected.Group("/departments")
	departments.Get("/", departmentHandler.List)
	departments.Post("/", RequireRole(access.RoleSuperAdmin), departmentHandler.Create)
	departments.Put("/:id", RequireRole(access.RoleSuperAdmin), departmentHandler.Update)
	departments.Delete("/:id", RequireRole(access.RoleSuperAdmin), departmentHandler.Delete)
	departments.Get("/:id/admins", departmentHandler.ListAdmins)
	departments.Post("/:id/admins", RequireRole(access.RoleSuperAdmin), departmentHandler.AssignAdmin)
	departments.Delete("/:id/admins/:adminId", RequireRole(access.RoleSuperAdmin), departmentHandler.UnassignAdmin)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// System
	backupHandler := NewBackupHandler(deps.BackupUC, metrics, log)
	system := protected.Group("/system", RequireRole(access.RoleSuperAdmin))
	system.Get("/backups", backupHandler.List)
	system.Post("/backups", backupHandler.Run)
}
