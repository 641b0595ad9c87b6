package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/internal/testutil/memstore"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicketUseCase(s *memstore.Store) *usecase.TicketUseCase {
	return usecase.NewTicketUseCase(s, s, bootstrapAdminID, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: crear, resolver y calificar
// ──────────────────────────────────────────────────────────────────────────────

func TestTicketUseCase_FlujoCrearResolverCalificar(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := newTicketUseCase(s)

	created, err := uc.Create(ctx, ana, dto.CreateTicketRequest{Title: "Impresora sin red"})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketStatusOpen, created.Status)
	assert.Equal(t, entity.PriorityMedium, created.Priority)
	assert.Nil(t, created.ResolvedAt)

	resolved, err := uc.Update(ctx, ana, created.ID, dto.UpdateTicketRequest{Status: dto.Some(entity.TicketStatusResolved)})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketStatusResolved, resolved.Status)
	assert.Equal(t, "Impresora sin red", resolved.Title)
	assert.Equal(t, entity.PriorityMedium, resolved.Priority)
	assert.NotNil(t, resolved.ResolvedAt)

	rated, err := uc.Rate(ctx, ana, "ana@empresa.local", created.ID, dto.RateTicketRequest{Rating: 3, Comment: str("ok")})
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 3, *rated.Rating)
	assert.NotNil(t, rated.RatedAt)

	stored, err := uc.Get(ctx, ana, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Rating)
	assert.Equal(t, 3, *stored.Rating)

	notes, err := s.Notifications().ListByUser(ctx, bootstrapAdminID, repository.NotificationFilter{Now: created.CreatedAt})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, entity.NotificationSuccess, notes[0].Type)
	require.NotNil(t, notes[0].RelatedTicketID)
	assert.Equal(t, created.ID, *notes[0].RelatedTicketID)

	_, err = uc.Rate(ctx, ana, "", created.ID, dto.RateTicketRequest{Rating: 5})
	assert.ErrorIs(t, err, domain.ErrConflict, "solo se califica una vez")
}

func TestTicketUseCase_UpdateRegistraHistorial(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := newTicketUseCase(s)
	created, err := uc.Create(ctx, ana, dto.CreateTicketRequest{Title: "VPN"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, ana, created.ID, dto.UpdateTicketRequest{
		Status:   dto.Some(entity.TicketStatusInProgress),
		Priority: dto.Some(entity.PriorityHigh),
		Title:    dto.Some("VPN caída"),
	})
	require.NoError(t, err)

	history, err := uc.History(ctx, ana, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 2, "solo estado y prioridad se rastrean")
	fields := []string{history[0].FieldName, history[1].FieldName}
	assert.ElementsMatch(t, []string{"status", "priority"}, fields)
}

// ──────────────────────────────────────────────────────────────────────────────
// Calificación
// ──────────────────────────────────────────────────────────────────────────────

func TestTicketUseCase_RateReglas(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := newTicketUseCase(s)
	created, err := uc.Create(ctx, admin, dto.CreateTicketRequest{
		Title:          "Correo lento",
		RequesterEmail: str("Beto@Empresa.local"),
	})
	require.NoError(t, err)

	_, err = uc.Rate(ctx, beto, "beto@empresa.local", created.ID, dto.RateTicketRequest{Rating: 4})
	assert.ErrorIs(t, err, domain.ErrConflict, "abierto no se califica")

	_, err = uc.Update(ctx, admin, created.ID, dto.UpdateTicketRequest{Status: dto.Some(entity.TicketStatusClosed)})
	require.NoError(t, err)

	_, err = uc.Rate(ctx, ana, "ana@empresa.local", created.ID, dto.RateTicketRequest{Rating: 4})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Rate(ctx, beto, "beto@empresa.local", created.ID, dto.RateTicketRequest{Rating: 6})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rated, err := uc.Rate(ctx, beto, "beto@empresa.local", created.ID, dto.RateTicketRequest{Rating: 4})
	require.NoError(t, err, "el email del solicitante habilita la calificación")
	assert.Equal(t, 4, *rated.Rating)

	_, err = uc.Rate(ctx, ana, "", 999, dto.RateTicketRequest{Rating: 4})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketUseCase_RateSinAdministradorPrincipalNoFalla(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewTicketUseCase(s, s, 99, logger.Nop())
	created, err := uc.Create(ctx, ana, dto.CreateTicketRequest{Title: "x", Status: entity.TicketStatusResolved})
	require.NoError(t, err)

	_, err = uc.Rate(ctx, ana, "", created.ID, dto.RateTicketRequest{Rating: 5})
	require.NoError(t, err)
	n, err := s.Notifications().CountUnread(ctx, 99, created.CreatedAt)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación y visibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestTicketUseCase_AsignadoVeYEditaElTicket(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := newTicketUseCase(s)

	created, err := uc.Create(ctx, ana, dto.CreateTicketRequest{Title: "Monitor", AssignedTo: i64(beto.UserID)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, ana, dto.CreateTicketRequest{Title: "Teclado"})
	require.NoError(t, err)

	list, err := uc.List(ctx, beto, repository.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Monitor", list[0].Title)

	_, err = uc.Update(ctx, beto, created.ID, dto.UpdateTicketRequest{Status: dto.Some(entity.TicketStatusInProgress)})
	require.NoError(t, err)

	unread, err := s.Notifications().CountUnread(ctx, beto.UserID, created.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, 1, unread, "la asignación notifica al responsable")
}

func TestTicketUseCase_ResponsableInexistente(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := newTicketUseCase(s)

	_, err := uc.Create(ctx, ana, dto.CreateTicketRequest{Title: "x", AssignedTo: i64(404)})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

	list, err := uc.List(ctx, superAdmin, repository.TicketFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "la transacción fallida no deja filas")
}

func TestTicketUseCase_ComentariosInternos(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := newTicketUseCase(s)
	created, err := uc.Create(ctx, ana, dto.CreateTicketRequest{Title: "Licencias"})
	require.NoError(t, err)

	_, err = uc.AddComment(ctx, ana, created.ID, dto.CreateTicketCommentRequest{Comment: "¿novedades?"})
	require.NoError(t, err)
	_, err = uc.AddComment(ctx, ana, created.ID, dto.CreateTicketCommentRequest{Comment: "nota", IsInternal: true})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.AddComment(ctx, admin, created.ID, dto.CreateTicketCommentRequest{Comment: "proveedor contactado", IsInternal: true})
	require.NoError(t, err)

	own, err := uc.ListComments(ctx, ana, created.ID)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := uc.ListComments(ctx, admin, created.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
