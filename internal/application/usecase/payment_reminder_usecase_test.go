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

func reminderRequest(recurrence string) dto.CreatePaymentReminderRequest {
	amount := decimal.RequireFromString("120.50")
	return dto.CreatePaymentReminderRequest{
		Title:      "Licencia antivirus",
		Amount:     &amount,
		DueDate:    &dto.Timestamp{Time: time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)},
		Recurrence: recurrence,
	}
}

func TestPaymentReminderUseCase_CreateAplicaValoresPorDefecto(t *testing.T) {
	s := newSeededStore(t)
	uc := usecase.NewPaymentReminderUseCase(s, s)

	p, err := uc.Create(context.Background(), ana, reminderRequest(""))
	require.NoError(t, err)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "one_time", p.Recurrence)
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, 7, p.ReminderDays)
	assert.Nil(t, p.PaidAt)
}

func TestPaymentReminderUseCase_CreateRechazaMontoNegativo(t *testing.T) {
	s := newSeededStore(t)
	in := reminderRequest("")
	negative := decimal.NewFromInt(-1)
	in.Amount = &negative

	_, err := usecase.NewPaymentReminderUseCase(s, s).Create(context.Background(), ana, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaymentReminderUseCase_PagoMensualCreaElSiguiente(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewPaymentReminderUseCase(s, s)

	p, err := uc.Create(ctx, ana, reminderRequest("monthly"))
	require.NoError(t, err)

	res, err := uc.Pay(ctx, ana, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", res.Reminder.Status)
	require.NotNil(t, res.Reminder.PaidAt)
	require.NotNil(t, res.Next)
	assert.Equal(t, "pending", res.Next.Status)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), res.Next.DueDate)
	assert.True(t, res.Next.Amount.Equal(p.Amount))

	list, err := uc.List(ctx, ana, repository.ReminderFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, res.Next.ID, list[0].ID)

	_, err = uc.Pay(ctx, ana, p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPaymentReminderUseCase_PagoUnicoNoCreaSiguiente(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewPaymentReminderUseCase(s, s)

	p, err := uc.Create(ctx, ana, reminderRequest("one_time"))
	require.NoError(t, err)

	res, err := uc.Pay(ctx, ana, p.ID)
	require.NoError(t, err)
	assert.Nil(t, res.Next)

	_, err = uc.Pay(ctx, beto, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPaymentReminderUseCase_UpdateEstadoLimpiaPaidAt(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewPaymentReminderUseCase(s, s)

	p, err := uc.Create(ctx, ana, reminderRequest(""))
	require.NoError(t, err)

	paid, err := uc.Update(ctx, ana, p.ID, dto.UpdatePaymentReminderRequest{Status: dto.Some("paid")})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)

	back, err := uc.Update(ctx, ana, p.ID, dto.UpdatePaymentReminderRequest{Status: dto.Some("overdue")})
	require.NoError(t, err)
	assert.Nil(t, back.PaidAt)
	assert.Equal(t, "Licencia antivirus", back.Title)

	_, err = uc.Update(ctx, ana, p.ID, dto.UpdatePaymentReminderRequest{Currency: dto.Some("EURO")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
