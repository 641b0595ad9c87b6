package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// BackupUseCase respaldos manuales del sistema. Solo super_admin.
type BackupUseCase struct {
	store  repository.Store
	tx     TxRunner
	writer BackupWriter
	log    *logger.Logger
	now    func() time.Time
}

// NewBackupUseCase construye el caso de uso.
func NewBackupUseCase(store repository.Store, tx TxRunner, writer BackupWriter, log *logger.Logger) *BackupUseCase {
	return &BackupUseCase{store: store, tx: tx, writer: writer, log: log.Component("backups"), now: time.Now}
}

// List intentos de respaldo, más recientes primero.
func (uc *BackupUseCase) List(ctx context.Context, caller access.Subject) ([]dto.BackupResponse, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	list, err := uc.store.Backups().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BackupResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBackupResponse(b))
	}
	return out, nil
}

// Run registra el intento, vuelca las tablas y cierra el registro como completed o failed.
// Un fallo del volcado queda en el registro; solo los errores al persistir el registro se devuelven.
func (uc *BackupUseCase) Run(ctx context.Context, caller access.Subject) (*dto.BackupResponse, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	b := &entity.SystemBackup{
		Status:    entity.BackupStatusInProgress,
		CreatedBy: int64Ptr(caller.UserID),
		StartedAt: uc.now(),
	}
	if err := uc.tx.Run(ctx, func(s repository.Store) error {
		return s.Backups().Create(ctx, b)
	}); err != nil {
		return nil, err
	}
	log := uc.log.With().Int64("backup_id", b.ID).Int64("user_id", caller.UserID).Logger()
	log.Info().Msg("respaldo iniciado")

	path, size, dumpErr := uc.dump(ctx, b.ID)
	if dumpErr != nil {
		if err := b.Fail(dumpErr.Error(), uc.now()); err != nil {
			return nil, err
		}
		log.Error().Err(dumpErr).Msg("respaldo fallido")
	} else {
		if err := b.Complete(path, size, uc.now()); err != nil {
			return nil, err
		}
		log.Info().Str("file", path).Int64("size_bytes", size).Msg("respaldo completado")
	}

	if err := uc.tx.Run(ctx, func(s repository.Store) error {
		return s.Backups().Update(ctx, b)
	}); err != nil {
		return nil, err
	}
	resp := toBackupResponse(b)
	return &resp, nil
}

func (uc *BackupUseCase) dump(ctx context.Context, backupID int64) (string, int64, error) {
	snapshot, err := uc.store.Backups().Snapshot(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("volcado: %w", err)
	}
	return uc.writer.Write(ctx, backupID, snapshot)
}

func toBackupResponse(b *entity.SystemBackup) dto.BackupResponse {
	return dto.BackupResponse{
		ID:           b.ID,
		Status:       b.Status,
		FilePath:     b.FilePath,
		SizeBytes:    b.SizeBytes,
		ErrorMessage: b.ErrorMessage,
		CreatedBy:    b.CreatedBy,
		StartedAt:    b.StartedAt,
		FinishedAt:   b.FinishedAt,
	}
}
