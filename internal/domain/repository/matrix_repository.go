package repository

import (
	"context"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
)

// MatrixRepository puerto de persistencia para Matrix.
type MatrixRepository interface {
	Create(ctx context.Context, m *entity.Matrix) error
	GetByID(ctx context.Context, id int64) (*entity.Matrix, error)
	Update(ctx context.Context, m *entity.Matrix) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, scope access.Scope) ([]*entity.Matrix, error)
}

// MatrixHistoryRepository historial de matrices (solo inserción, sin cascada).
type MatrixHistoryRepository interface {
	Create(ctx context.Context, h *entity.MatrixHistory) error
	ListByMatrix(ctx context.Context, matrixID int64) ([]*entity.MatrixHistory, error)
}
