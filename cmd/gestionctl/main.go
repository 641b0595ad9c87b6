package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/gestion-ti-api/internal/application/auth"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	infrabackup "github.com/jhoicas/gestion-ti-api/internal/infrastructure/backup"
	"github.com/jhoicas/gestion-ti-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-ti-api/pkg/config"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "gestionctl",
	Short: "Herramienta de administración de Gestión TI",
	Long: `gestionctl ejecuta tareas de mantenimiento sobre la base de datos de Gestión TI:
migraciones, creación del super administrador inicial y respaldos.

Lee la misma configuración que la API (variables de entorno o .env).`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(ctx context.Context, env *environment) error {
			return postgres.Migrate(ctx, env.pool, env.log)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Muestra el estado de las migraciones",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(ctx context.Context, env *environment) error {
			return postgres.MigrationStatus(ctx, env.pool, env.log)
		})
	},
}

var (
	adminEmailFlag    string
	adminPasswordFlag string
	adminNameFlag     string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Crea o promueve el super administrador inicial",
	Long: `Garantiza que exista la cuenta super_admin configurada en BOOTSTRAP_ADMIN_*.
Si el email ya existe la cuenta se promueve y reactiva; si no, se crea.
Los flags tienen prioridad sobre la configuración.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(ctx context.Context, env *environment) error {
			bootstrap := env.cfg.Bootstrap
			if adminEmailFlag != "" {
				bootstrap.AdminEmail = adminEmailFlag
			}
			if adminPasswordFlag != "" {
				bootstrap.AdminPassword = adminPasswordFlag
			}
			if adminNameFlag != "" {
				bootstrap.AdminName = adminNameFlag
			}
			if bootstrap.AdminPassword == "" {
				return fmt.Errorf("falta la contraseña: use --password o BOOTSTRAP_ADMIN_PASSWORD")
			}
			store := postgres.NewStore(env.pool)
			uc := auth.NewAuthUseCase(store, postgres.NewTxRunner(env.pool), auth.JWTConfig{
				Secret:     env.cfg.JWT.Secret,
				ExpMinutes: env.cfg.JWT.Expiration,
				Issuer:     env.cfg.JWT.Issuer,
			}, env.log)
			user, created, err := uc.EnsureBootstrapAdmin(ctx, bootstrap)
			if err != nil {
				return err
			}
			action := "actualizado"
			if created {
				action = "creado"
			}
			fmt.Printf("super administrador %s: id=%d email=%s\n", action, user.ID, user.Email)
			return nil
		})
	},
}

var backupDirFlag string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Genera un respaldo JSON de todas las tablas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(ctx context.Context, env *environment) error {
			dir := env.cfg.Backup.Dir
			if backupDirFlag != "" {
				dir = backupDirFlag
			}
			uc := usecase.NewBackupUseCase(
				postgres.NewStore(env.pool),
				postgres.NewTxRunner(env.pool),
				infrabackup.NewFileWriter(dir),
				env.log,
			)
			caller := access.Subject{UserID: env.cfg.Bootstrap.AdminID, Role: access.RoleSuperAdmin}
			out, err := uc.Run(ctx, caller)
			if err != nil {
				return err
			}
			if out.Status != entity.BackupStatusCompleted {
				msg := ""
				if out.ErrorMessage != nil {
					msg = *out.ErrorMessage
				}
				return fmt.Errorf("respaldo %d fallido: %s", out.ID, msg)
			}
			fmt.Printf("respaldo %d completado: %s (%d bytes)\n", out.ID, *out.FilePath, *out.SizeBytes)
			return nil
		})
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&adminEmailFlag, "email", "", "Email del super administrador")
	seedAdminCmd.Flags().StringVar(&adminPasswordFlag, "password", "", "Contraseña del super administrador")
	seedAdminCmd.Flags().StringVar(&adminNameFlag, "name", "", "Nombre visible")
	backupCmd.Flags().StringVar(&backupDirFlag, "dir", "", "Directorio destino (por defecto BACKUP_DIR)")

	rootCmd.AddCommand(migrateCmd, statusCmd, seedAdminCmd, backupCmd)
}

type environment struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

// withPool carga la configuración, abre el pool y lo cierra al terminar.
func withPool(ctx context.Context, fn func(ctx context.Context, env *environment) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("gestionctl")
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	return fn(ctx, &environment{cfg: cfg, log: log, pool: pool})
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
