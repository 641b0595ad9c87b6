package usecase

import (
	"context"

	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción. Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(store repository.Store) error) error
}

// BackupWriter persiste el volcado de un respaldo y devuelve la ruta y el tamaño escritos.
type BackupWriter interface {
	Write(ctx context.Context, backupID int64, snapshot repository.Snapshot) (path string, size int64, err error)
}
