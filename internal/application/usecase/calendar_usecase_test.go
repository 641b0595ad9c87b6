package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(title string, day int, recurrence *string) dto.CreateCalendarEventRequest {
	return dto.CreateCalendarEventRequest{
		Title:        title,
		StartDate:    &dto.Timestamp{Time: time.Date(2025, time.May, day, 9, 0, 0, 0, time.UTC)},
		IsRecurring:  recurrence != nil,
		RecurrenceID: recurrence,
	}
}

func createSeries(t *testing.T, uc *usecase.CalendarUseCase, owners ...access.Subject) []dto.CalendarEventResponse {
	t.Helper()
	out := make([]dto.CalendarEventResponse, 0, len(owners))
	for i, owner := range owners {
		e, err := uc.Create(context.Background(), owner, eventAt("Mantenimiento", i+1, str("serie-1")))
		require.NoError(t, err)
		out = append(out, *e)
	}
	return out
}

func TestCalendarUseCase_CreateValidaYAsignaRecurrencia(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewCalendarUseCase(s, s)

	_, err := uc.Create(ctx, ana, dto.CreateCalendarEventRequest{Title: "sin fecha"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := eventAt("Visita", 3, nil)
	in.EndDate = &dto.Timestamp{Time: in.StartDate.Add(-time.Hour)}
	_, err = uc.Create(ctx, ana, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = eventAt("Visita", 3, nil)
	in.IsRecurring = true
	e, err := uc.Create(ctx, ana, in)
	require.NoError(t, err)
	assert.Equal(t, "other", e.EventType)
	require.NotNil(t, e.RecurrenceID)
	assert.NotEmpty(t, *e.RecurrenceID)
}

func TestCalendarUseCase_UpdateAllCambiaTodaLaSerie(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewCalendarUseCase(s, s)
	series := createSeries(t, uc, ana, ana, ana)

	res, err := uc.UpdateRecurring(ctx, ana, series[1].ID, dto.UpdateRecurringRequest{
		UpdateAll:                  true,
		UpdateCalendarEventRequest: dto.UpdateCalendarEventRequest{Title: dto.Some("Revisión mensual")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Len(t, res.Events, 3)

	list, err := uc.List(ctx, ana, repository.CalendarFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, e := range list {
		assert.Equal(t, "Revisión mensual", e.Title)
	}
}

func TestCalendarUseCase_UpdateAllDesplazaFechasSinColapsarLaSerie(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewCalendarUseCase(s, s)
	series := createSeries(t, uc, ana, ana, ana)

	start := time.Date(2025, time.May, 9, 10, 0, 0, 0, time.UTC)
	res, err := uc.UpdateRecurring(ctx, ana, series[1].ID, dto.UpdateRecurringRequest{
		UpdateAll: true,
		UpdateCalendarEventRequest: dto.UpdateCalendarEventRequest{
			Title:     dto.Some("Nuevo"),
			StartDate: dto.Some(dto.Timestamp{Time: start}),
			EndDate:   dto.Some(dto.Timestamp{Time: start.Add(time.Hour)}),
		},
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Count)

	want := map[int64]time.Time{
		series[0].ID: time.Date(2025, time.May, 8, 10, 0, 0, 0, time.UTC),
		series[1].ID: start,
		series[2].ID: time.Date(2025, time.May, 10, 10, 0, 0, 0, time.UTC),
	}
	for _, id := range []int64{series[0].ID, series[1].ID, series[2].ID} {
		e, err := uc.Get(ctx, ana, id)
		require.NoError(t, err)
		assert.Equal(t, "Nuevo", e.Title)
		assert.True(t, want[id].Equal(e.StartDate), "evento %d empieza %s", id, e.StartDate)
		require.NotNil(t, e.EndDate)
		assert.Equal(t, time.Hour, e.EndDate.Sub(e.StartDate))
	}
}

func TestCalendarUseCase_MoverInicioConservaDuracion(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewCalendarUseCase(s, s)

	in := eventAt("Visita", 3, nil)
	in.EndDate = &dto.Timestamp{Time: in.StartDate.Add(2 * time.Hour)}
	e, err := uc.Create(ctx, ana, in)
	require.NoError(t, err)

	moved := time.Date(2025, time.May, 4, 15, 0, 0, 0, time.UTC)
	updated, err := uc.Update(ctx, ana, e.ID, dto.UpdateCalendarEventRequest{StartDate: dto.Some(dto.Timestamp{Time: moved})})
	require.NoError(t, err)
	assert.True(t, moved.Equal(updated.StartDate))
	require.NotNil(t, updated.EndDate)
	assert.True(t, moved.Add(2*time.Hour).Equal(*updated.EndDate))

	cleared, err := uc.Update(ctx, ana, e.ID, dto.UpdateCalendarEventRequest{EndDate: dto.Null[dto.Timestamp]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.EndDate)
}

func TestCalendarUseCase_UpdateSinUpdateAllTocaUnSoloEvento(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewCalendarUseCase(s, s)
	series := createSeries(t, uc, ana, ana)

	updated, err := uc.Update(ctx, ana, series[0].ID, dto.UpdateCalendarEventRequest{Title: dto.Some("Solo este")})
	require.NoError(t, err)
	assert.Equal(t, "Solo este", updated.Title)

	other, err := uc.Get(ctx, ana, series[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Mantenimiento", other.Title)
}

func TestCalendarUseCase_SerieConEventoAjenoAbortaSinCambios(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewCalendarUseCase(s, s)
	series := createSeries(t, uc, ana, beto, ana)

	_, err := uc.UpdateRecurring(ctx, ana, series[0].ID, dto.UpdateRecurringRequest{
		UpdateAll:                  true,
		UpdateCalendarEventRequest: dto.UpdateCalendarEventRequest{Title: dto.Some("Cambiado")},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	first, err := uc.Get(ctx, ana, series[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Mantenimiento", first.Title)

	_, err = uc.DeleteRecurring(ctx, ana, series[0].ID, true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	all, err := uc.List(ctx, admin, repository.CalendarFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCalendarUseCase_DeleteRecurringDevuelveCantidad(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewCalendarUseCase(s, s)
	series := createSeries(t, uc, ana, ana, ana)

	n, err := uc.DeleteRecurring(ctx, ana, series[0].ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = uc.DeleteRecurring(ctx, ana, series[1].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = uc.DeleteRecurring(ctx, ana, series[2].ID, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalendarUseCase_SuperAdminEditaSerieAjena(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewCalendarUseCase(s, s)
	series := createSeries(t, uc, ana, beto)

	res, err := uc.UpdateRecurring(ctx, superAdmin, series[0].ID, dto.UpdateRecurringRequest{
		UpdateAll:                  true,
		UpdateCalendarEventRequest: dto.UpdateCalendarEventRequest{Location: dto.Some("Sede norte")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	for _, e := range res.Events {
		require.NotNil(t, e.Location)
		assert.Equal(t, "Sede norte", *e.Location)
	}
}

func TestCalendarUseCase_PatchRechazaStartDateNulo(t *testing.T) {
	s := newSeededStore(t)
	uc := usecase.NewCalendarUseCase(s, s)
	e, err := uc.Create(context.Background(), ana, eventAt("Reunión", 2, nil))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), ana, e.ID, dto.UpdateCalendarEventRequest{StartDate: dto.Null[dto.Timestamp]()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
