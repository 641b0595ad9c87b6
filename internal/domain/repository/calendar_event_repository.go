package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
)

// CalendarFilter filtros opcionales: rango sobre start_date y tipo.
type CalendarFilter struct {
	From      *time.Time
	To        *time.Time
	EventType string
}

// CalendarEventRepository puerto de persistencia para CalendarEvent.
type CalendarEventRepository interface {
	Create(ctx context.Context, e *entity.CalendarEvent) error
	GetByID(ctx context.Context, id int64) (*entity.CalendarEvent, error)
	Update(ctx context.Context, e *entity.CalendarEvent) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, scope access.Scope, f CalendarFilter) ([]*entity.CalendarEvent, error)
	ListByRecurrence(ctx context.Context, recurrenceID string) ([]*entity.CalendarEvent, error)
	CountBetween(ctx context.Context, scope access.Scope, from, to time.Time) (int, error)
}
