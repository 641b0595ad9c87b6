package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
)

// JournalFilter filtros opcionales: rango sobre entry_date, categoría y estado.
type JournalFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
	Status   string
}

// JournalRepository puerto de persistencia para JournalEntry.
// List ordena por entry_date DESC, created_at DESC.
type JournalRepository interface {
	Create(ctx context.Context, e *entity.JournalEntry) error
	GetByID(ctx context.Context, id int64) (*entity.JournalEntry, error)
	Update(ctx context.Context, e *entity.JournalEntry) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, scope access.Scope, f JournalFilter) ([]*entity.JournalEntry, error)
}
