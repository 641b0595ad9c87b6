package repository

import (
	"context"

	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
)

// Snapshot volcado de tablas: nombre de tabla -> filas.
type Snapshot map[string][]map[string]any

// BackupRepository registra intentos de respaldo y produce el volcado de datos.
type BackupRepository interface {
	Create(ctx context.Context, b *entity.SystemBackup) error
	Update(ctx context.Context, b *entity.SystemBackup) error
	List(ctx context.Context) ([]*entity.SystemBackup, error)
	Snapshot(ctx context.Context) (Snapshot, error)
}
