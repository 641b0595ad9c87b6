package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	appanalytics "github.com/jhoicas/gestion-ti-api/internal/application/analytics"
	"github.com/jhoicas/gestion-ti-api/internal/application/auth"
	"github.com/jhoicas/gestion-ti-api/internal/application/report"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	infrabackup "github.com/jhoicas/gestion-ti-api/internal/infrastructure/backup"
	infraexcel "github.com/jhoicas/gestion-ti-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/gestion-ti-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-ti-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gestion-ti-api/internal/interfaces/http"
	"github.com/jhoicas/gestion-ti-api/pkg/config"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = randomSecret()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto efímero, los tokens no sobreviven a un reinicio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	store := postgres.NewStore(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(store, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	if cfg.Bootstrap.AdminPassword != "" {
		admin, created, err := authUC.EnsureBootstrapAdmin(ctx, cfg.Bootstrap)
		if err != nil {
			log.Fatal().Err(err).Msg("super administrador inicial")
		}
		log.Info().Int64("user_id", admin.ID).Bool("created", created).Msg("super administrador inicial verificado")
	}

	ucLog := log.Component("usecase")
	exportUC := report.NewExportUseCase(store, infrapdf.NewTableRenderer(cfg.App.Name), infraexcel.NewTableRenderer())
	backupUC := usecase.NewBackupUseCase(store, txRunner, infrabackup.NewFileWriter(cfg.Backup.Dir), ucLog)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Gestión TI API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		TaskUC:          usecase.NewTaskUseCase(store, txRunner),
		TicketUC:        usecase.NewTicketUseCase(store, txRunner, cfg.Bootstrap.AdminID, ucLog),
		CalendarUC:      usecase.NewCalendarUseCase(store, txRunner),
		MatrixUC:        usecase.NewMatrixUseCase(store, txRunner),
		JournalUC:       usecase.NewJournalUseCase(store, txRunner),
		ReminderUC:      usecase.NewPaymentReminderUseCase(store, txRunner),
		ServiceOrderUC:  usecase.NewServiceOrderUseCase(store, txRunner),
		NotificationUC:  usecase.NewNotificationUseCase(store, txRunner),
		UserUC:          usecase.NewUserUseCase(store, txRunner, cfg.Bootstrap.AdminID, ucLog),
		DepartmentUC:    usecase.NewDepartmentUseCase(store, txRunner),
		BackupUC:        backupUC,
		DashboardUC:     appanalytics.NewDashboardUseCase(store),
		ExportUC:        exportUC,
		JWTSecret:       cfg.JWT.Secret,
		CORSOrigins:     cfg.HTTP.CORSAllowOrigins,
		LoginRateLimit:  cfg.HTTP.LoginRateLimit,
		MetricsRegistry: registry,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generar secreto: " + err.Error())
	}
	return hex.EncodeToString(b)
}
