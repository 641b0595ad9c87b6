package repository

import (
	"context"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
)

// TaskFilter filtros opcionales del listado de tareas.
type TaskFilter struct {
	Status   string
	Priority string
}

// TaskRepository puerto de persistencia para Task.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, scope access.Scope, f TaskFilter) ([]*entity.Task, error)
	CountByStatus(ctx context.Context, scope access.Scope) (map[string]int, error)
}
