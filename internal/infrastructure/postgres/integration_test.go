//go:build integration

package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/matrix"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/internal/infrastructure/backup"
	"github.com/jhoicas/gestion-ti-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Ejecutar con: go test -tags=integration ./internal/infrastructure/postgres/...

var (
	root = access.Subject{UserID: 1, Role: access.RoleSuperAdmin}
	ana  = access.Subject{UserID: 2, Role: access.RoleUsuario}
	beto = access.Subject{UserID: 3, Role: access.RoleUsuario}
)

// setupDB levanta PostgreSQL, aplica las migraciones y siembra root(1), ana(2) y beto(3).
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("omitiendo prueba de integración")
	}
	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("gestion_ti"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, logger.Nop()))

	store := postgres.NewStore(pool)
	now := time.Now()
	for _, u := range []struct{ email, role string }{
		{"root@empresa.local", access.RoleSuperAdmin},
		{"ana@empresa.local", access.RoleUsuario},
		{"beto@empresa.local", access.RoleUsuario},
	} {
		require.NoError(t, store.Users().Create(ctx, &entity.User{
			Email:        u.email,
			PasswordHash: "-",
			Name:         u.email,
			Role:         u.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}))
	}
	return pool
}

func TestIntegration_Postgres(t *testing.T) {
	pool := setupDB(t)
	store := postgres.NewStore(pool)
	tx := postgres.NewTxRunner(pool)
	ctx := context.Background()

	t.Run("email duplicado", func(t *testing.T) {
		err := store.Users().Create(ctx, &entity.User{
			Email: "ana@empresa.local", PasswordHash: "-", Name: "otra", Role: access.RoleUsuario,
			IsActive: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("ticket resuelto y calificado", func(t *testing.T) {
		uc := usecase.NewTicketUseCase(store, tx, root.UserID, logger.Nop())

		created, err := uc.Create(ctx, ana, dto.CreateTicketRequest{Title: "Sin acceso a la VPN"})
		require.NoError(t, err)
		assert.Equal(t, entity.TicketStatusOpen, created.Status)

		_, err = uc.Get(ctx, beto, created.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		resolved, err := uc.Update(ctx, ana, created.ID, dto.UpdateTicketRequest{Status: dto.Some(entity.TicketStatusResolved)})
		require.NoError(t, err)
		assert.NotNil(t, resolved.ResolvedAt)
		assert.Equal(t, "Sin acceso a la VPN", resolved.Title)

		rated, err := uc.Rate(ctx, ana, "ana@empresa.local", created.ID, dto.RateTicketRequest{Rating: 4})
		require.NoError(t, err)
		require.NotNil(t, rated.Rating)
		assert.Equal(t, 4, *rated.Rating)

		_, err = uc.Rate(ctx, ana, "ana@empresa.local", created.ID, dto.RateTicketRequest{Rating: 5})
		assert.ErrorIs(t, err, domain.ErrConflict)

		_, err = uc.AddComment(ctx, ana, created.ID, dto.CreateTicketCommentRequest{Comment: "Gracias"})
		require.NoError(t, err)
		comments, err := uc.ListComments(ctx, ana, created.ID)
		require.NoError(t, err)
		assert.Len(t, comments, 1)

		history, err := uc.History(ctx, ana, created.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, history)

		notes, err := store.Notifications().ListByUser(ctx, root.UserID, repository.NotificationFilter{Now: time.Now()})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, entity.NotificationSuccess, notes[0].Type)
	})

	t.Run("serie recurrente", func(t *testing.T) {
		uc := usecase.NewCalendarUseCase(store, tx)
		series := "serie-integracion"
		var ids []int64
		for day := 1; day <= 3; day++ {
			e, err := uc.Create(ctx, ana, dto.CreateCalendarEventRequest{
				Title:        "Mantenimiento",
				StartDate:    &dto.Timestamp{Time: time.Date(2025, time.June, day, 9, 0, 0, 0, time.UTC)},
				IsRecurring:  true,
				RecurrenceID: &series,
			})
			require.NoError(t, err)
			ids = append(ids, e.ID)
		}

		_, err := uc.DeleteRecurring(ctx, beto, ids[0], true)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		n, err := uc.DeleteRecurring(ctx, ana, ids[1], true)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		left, err := store.CalendarEvents().ListByRecurrence(ctx, series)
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("historial de matriz", func(t *testing.T) {
		uc := usecase.NewMatrixUseCase(store, tx)
		m, err := uc.Create(ctx, ana, dto.CreateMatrixRequest{Name: "Riesgos 2026", MatrixType: matrix.TypeRisk})
		require.NoError(t, err)
		assert.Equal(t, 3, m.Rows)

		updated, err := uc.Update(ctx, ana, m.ID, dto.UpdateMatrixRequest{Data: dto.Some(map[string]string{"0-2": "caída del ERP"})})
		require.NoError(t, err)
		assert.Equal(t, "caída del ERP", updated.Data["0-2"])

		require.NoError(t, uc.Delete(ctx, ana, m.ID))

		history, err := uc.History(ctx, ana, m.ID)
		require.NoError(t, err)
		actions := make([]string, 0, len(history))
		for _, h := range history {
			actions = append(actions, h.Action)
		}
		assert.ElementsMatch(t, []string{entity.MatrixActionCreated, entity.MatrixActionUpdated, entity.MatrixActionDeleted}, actions)

		_, err = uc.History(ctx, beto, m.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("bitácora ordenada por fecha", func(t *testing.T) {
		uc := usecase.NewJournalUseCase(store, tx)
		for _, day := range []int{3, 10, 5} {
			_, err := uc.Create(ctx, ana, dto.CreateJournalEntryRequest{
				Title:     "Entrada",
				Content:   "Revisión de servidores",
				EntryDate: &dto.Date{Time: time.Date(2025, time.July, day, 0, 0, 0, 0, time.UTC)},
				Tags:      []string{"servidores"},
			})
			require.NoError(t, err)
		}

		list, err := uc.List(ctx, ana, repository.JournalFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, 10, list[0].EntryDate.Day())
		assert.Equal(t, 5, list[1].EntryDate.Day())
		assert.Equal(t, 3, list[2].EntryDate.Day())

		others, err := uc.List(ctx, beto, repository.JournalFilter{})
		require.NoError(t, err)
		assert.Empty(t, others)
	})

	t.Run("respaldo completo", func(t *testing.T) {
		dir := t.TempDir()
		uc := usecase.NewBackupUseCase(store, tx, backup.NewFileWriter(dir), logger.Nop())

		out, err := uc.Run(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, entity.BackupStatusCompleted, out.Status)
		require.NotNil(t, out.FilePath)

		info, err := os.Stat(*out.FilePath)
		require.NoError(t, err)
		require.NotNil(t, out.SizeBytes)
		assert.Equal(t, info.Size(), *out.SizeBytes)

		_, err = uc.Run(ctx, ana)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		list, err := uc.List(ctx, root)
		require.NoError(t, err)
		require.NotEmpty(t, list)
		assert.Equal(t, out.ID, list[0].ID)
	})
}
