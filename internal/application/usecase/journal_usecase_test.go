package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func journalEntry(title, category string, day int, hours string) dto.CreateJournalEntryRequest {
	in := dto.CreateJournalEntryRequest{
		Title:     title,
		Content:   "detalle de " + title,
		Category:  category,
		EntryDate: &dto.Date{Time: time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC)},
	}
	if hours != "" {
		h := decimal.RequireFromString(hours)
		in.HoursWorked = &h
	}
	return in
}

func TestJournalUseCase_CreateAplicaValoresPorDefecto(t *testing.T) {
	s := newSeededStore(t)
	e, err := usecase.NewJournalUseCase(s, s).Create(context.Background(), ana, dto.CreateJournalEntryRequest{
		Title: "Inventario", Content: "Conteo de equipos",
	})
	require.NoError(t, err)
	assert.Equal(t, "work", e.Category)
	assert.Equal(t, "medium", e.Priority)
	assert.Equal(t, "pending", e.Status)
	assert.NotNil(t, e.Tags)
	assert.Empty(t, e.Tags)
	assert.False(t, e.EntryDate.IsZero())
}

func TestJournalUseCase_ListOrdenaPorFechaDescendente(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewJournalUseCase(s, s)

	for _, in := range []dto.CreateJournalEntryRequest{
		journalEntry("primero", "work", 1, ""),
		journalEntry("tercero", "issue", 20, ""),
		journalEntry("segundo", "meeting", 10, ""),
	} {
		_, err := uc.Create(ctx, ana, in)
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, ana, repository.JournalFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "tercero", list[0].Title)
	assert.Equal(t, "segundo", list[1].Title)
	assert.Equal(t, "primero", list[2].Title)

	_, err = uc.List(ctx, ana, repository.JournalFilter{Category: "vacaciones"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJournalUseCase_StatsSumaHorasYCuenta(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewJournalUseCase(s, s)

	for _, in := range []dto.CreateJournalEntryRequest{
		journalEntry("a", "work", 1, "1.5"),
		journalEntry("b", "work", 2, "2.25"),
		journalEntry("c", "meeting", 3, ""),
	} {
		_, err := uc.Create(ctx, ana, in)
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, beto, journalEntry("ajena", "work", 4, "8"))
	require.NoError(t, err)

	stats, err := uc.Stats(ctx, ana, repository.JournalFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, "3.75", stats.TotalHours.String())
	assert.Equal(t, map[string]int{"work": 2, "meeting": 1}, stats.Categories)
	assert.Equal(t, map[string]int{"pending": 3}, stats.Statuses)

	empty, err := uc.Stats(ctx, admin, repository.JournalFilter{Category: "achievement"})
	require.NoError(t, err)
	assert.Zero(t, empty.TotalEntries)
	assert.True(t, empty.TotalHours.IsZero())
	assert.NotNil(t, empty.Categories)
}

func TestJournalUseCase_RechazaHorasNegativasYEntradaAjena(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewJournalUseCase(s, s)

	_, err := uc.Create(ctx, ana, journalEntry("x", "work", 1, "-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	e, err := uc.Create(ctx, ana, journalEntry("propia", "note", 1, ""))
	require.NoError(t, err)
	_, err = uc.Update(ctx, beto, e.ID, dto.UpdateJournalEntryRequest{Title: dto.Some("robada")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, beto, e.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, ana, e.ID))
}
