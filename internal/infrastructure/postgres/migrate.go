package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jhoicas/gestion-ti-api/migrations"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
	"github.com/pressly/goose/v3"
)

// gooseLogger adapta el logger de la app a la interfaz de goose.
type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msgf(format, v...)
}

// Migrate aplica las migraciones embebidas pendientes.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	goose.SetLogger(gooseLogger{log: log.Component("migrations")})
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	// goose trabaja sobre database/sql
	db := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer db.Close()

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	return nil
}

// MigrationStatus muestra el estado de cada migración a través del logger.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	goose.SetLogger(gooseLogger{log: log.Component("migrations")})
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	db := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer db.Close()
	return goose.StatusContext(ctx, db, ".")
}
