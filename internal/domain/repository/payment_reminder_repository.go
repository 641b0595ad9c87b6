package repository

import (
	"context"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
)

// ReminderFilter filtros opcionales del listado de recordatorios.
type ReminderFilter struct {
	Status string
}

// PaymentReminderRepository puerto de persistencia para PaymentReminder.
type PaymentReminderRepository interface {
	Create(ctx context.Context, p *entity.PaymentReminder) error
	GetByID(ctx context.Context, id int64) (*entity.PaymentReminder, error)
	Update(ctx context.Context, p *entity.PaymentReminder) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, scope access.Scope, f ReminderFilter) ([]*entity.PaymentReminder, error)
}
