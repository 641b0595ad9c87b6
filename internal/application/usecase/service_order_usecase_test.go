package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceOrderUseCase_CreateCalculaCostoTotal(t *testing.T) {
	s := newSeededStore(t)
	hours := decimal.RequireFromString("3")
	rate := decimal.RequireFromString("25.50")

	o, err := usecase.NewServiceOrderUseCase(s, s).Create(context.Background(), ana, dto.CreateServiceOrderRequest{
		Title: "Soporte mensual", ClientName: "Ferretería Sol", EstimatedHours: &hours, HourlyRate: &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", o.Status)
	require.NotNil(t, o.TotalCost)
	assert.Equal(t, "76.50", o.TotalCost.StringFixed(2))
	assert.NotNil(t, o.MonthlyStatus)
}

func TestServiceOrderUseCase_SetMonthlyStatus(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewServiceOrderUseCase(s, s)
	o, err := uc.Create(ctx, ana, dto.CreateServiceOrderRequest{Title: "Backup", ClientName: "Clínica"})
	require.NoError(t, err)

	for _, bad := range []string{"2025-13", "2025-1", "25-01", "enero"} {
		_, err = uc.SetMonthlyStatus(ctx, ana, o.ID, dto.MonthlyStatusRequest{MonthYear: bad, Completed: true})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}

	updated, err := uc.SetMonthlyStatus(ctx, ana, o.ID, dto.MonthlyStatusRequest{MonthYear: "2025-03", Completed: true})
	require.NoError(t, err)
	require.Contains(t, updated.MonthlyStatus, "2025-03")
	assert.True(t, updated.MonthlyStatus["2025-03"].Completed)
	assert.NotNil(t, updated.MonthlyStatus["2025-03"].CompletedDate)

	_, err = uc.SetMonthlyStatus(ctx, beto, o.ID, dto.MonthlyStatusRequest{MonthYear: "2025-04"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestServiceOrderUseCase_AsignadoPuedeEditar(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewServiceOrderUseCase(s, s)

	o, err := uc.Create(ctx, ana, dto.CreateServiceOrderRequest{Title: "Red", ClientName: "Colegio", AssignedTo: i64(beto.UserID)})
	require.NoError(t, err)

	done, err := uc.Update(ctx, beto, o.ID, dto.UpdateServiceOrderRequest{Status: dto.Some("completed")})
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	assert.NotNil(t, done.CompletedAt)

	_, err = uc.Create(ctx, ana, dto.CreateServiceOrderRequest{Title: "Red", ClientName: "Colegio", AssignedTo: i64(999)})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
}
