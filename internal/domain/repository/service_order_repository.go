package repository

import (
	"context"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
)

// ServiceOrderFilter filtros opcionales del listado de órdenes.
type ServiceOrderFilter struct {
	Status string
}

// ServiceOrderRepository puerto de persistencia para ServiceOrder.
type ServiceOrderRepository interface {
	Create(ctx context.Context, o *entity.ServiceOrder) error
	GetByID(ctx context.Context, id int64) (*entity.ServiceOrder, error)
	Update(ctx context.Context, o *entity.ServiceOrder) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, scope access.Scope, f ServiceOrderFilter) ([]*entity.ServiceOrder, error)
}
