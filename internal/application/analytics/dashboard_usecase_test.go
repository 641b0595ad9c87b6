package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/analytics"
	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/testutil/memstore"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = access.Subject{UserID: 1, Role: access.RoleAdmin}
	ana   = access.Subject{UserID: 2, Role: access.RoleUsuario}
	beto  = access.Subject{UserID: 3, Role: access.RoleUsuario}
)

func seed(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	s := memstore.New()
	now := time.Now()
	for _, u := range []struct{ email, role string }{
		{"admin@empresa.local", access.RoleAdmin},
		{"ana@empresa.local", access.RoleUsuario},
		{"beto@empresa.local", access.RoleUsuario},
	} {
		require.NoError(t, s.Users().Create(ctx, &entity.User{
			Email: u.email, PasswordHash: "-", Name: u.email, Role: u.role, IsActive: true, CreatedAt: now, UpdatedAt: now,
		}))
	}

	tasks := usecase.NewTaskUseCase(s, s)
	for _, in := range []dto.CreateTaskRequest{
		{Title: "a", Status: "todo"},
		{Title: "b", Status: "review"},
		{Title: "c", Status: "done"},
	} {
		_, err := tasks.Create(ctx, ana, in)
		require.NoError(t, err)
	}
	_, err := tasks.Create(ctx, beto, dto.CreateTaskRequest{Title: "de beto"})
	require.NoError(t, err)

	desc := "no imprime"
	tickets := usecase.NewTicketUseCase(s, s, 99, logger.Nop())
	_, err = tickets.Create(ctx, ana, dto.CreateTicketRequest{Title: "Impresora", Description: &desc})
	require.NoError(t, err)

	calendar := usecase.NewCalendarUseCase(s, s)
	_, err = calendar.Create(ctx, ana, dto.CreateCalendarEventRequest{Title: "Hoy", StartDate: &dto.Timestamp{Time: now}})
	require.NoError(t, err)

	notifications := usecase.NewNotificationUseCase(s, s)
	_, err = notifications.Create(ctx, admin, dto.CreateNotificationRequest{UserID: ana.UserID, Title: "Aviso", Message: "x"})
	require.NoError(t, err)
	return s
}

func TestDashboard_ResumenDelUsuario(t *testing.T) {
	s := seed(t)
	summary, err := analytics.NewDashboardUseCase(s).GetSummary(context.Background(), ana)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"todo": 1, "in_progress": 0, "review": 1, "done": 1}, summary.Tasks)
	assert.Equal(t, 2, summary.PendingTasks)
	assert.Equal(t, 1, summary.Tickets["open"])
	assert.Equal(t, 0, summary.Tickets["closed"])
	assert.Equal(t, 1, summary.OpenTickets)
	assert.Equal(t, 1, summary.EventsToday)
	assert.Equal(t, 1, summary.EventsThisMonth)
	assert.Equal(t, 1, summary.UnreadNotifications)
	assert.Nil(t, summary.TotalUsers)
}

func TestDashboard_AdministradorVeTodoYTotalDeUsuarios(t *testing.T) {
	s := seed(t)
	summary, err := analytics.NewDashboardUseCase(s).GetSummary(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.PendingTasks)
	require.NotNil(t, summary.TotalUsers)
	assert.Equal(t, 3, *summary.TotalUsers)
	assert.Zero(t, summary.UnreadNotifications)
}

func TestDashboard_SinDatosDevuelveCeros(t *testing.T) {
	summary, err := analytics.NewDashboardUseCase(memstore.New()).GetSummary(context.Background(), ana)
	require.NoError(t, err)
	assert.Len(t, summary.Tickets, 4)
	assert.Len(t, summary.Tasks, 4)
	assert.Zero(t, summary.OpenTickets)
}
