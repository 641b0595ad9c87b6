package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

var _ repository.BackupRepository = (*BackupRepo)(nil)

// Tablas incluidas en el volcado, en orden de dependencias.
var snapshotTables = []string{
	"users", "departments", "admin_departments", "tasks", "tickets", "ticket_comments", "ticket_history",
	"calendar_events", "matrices", "matrix_history", "journal_entries", "payment_reminders",
	"service_orders", "notifications",
}

// BackupRepo registra los respaldos y produce el volcado de tablas.
type BackupRepo struct {
	q Querier
}

// NewBackupRepository construye el repositorio de respaldos.
func NewBackupRepository(q Querier) *BackupRepo {
	return &BackupRepo{q: q}
}

// Create inserta el registro del intento.
func (r *BackupRepo) Create(ctx context.Context, b *entity.SystemBackup) error {
	query := `
		INSERT INTO system_backups (status, file_path, size_bytes, error_message, created_by, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, b.Status, b.FilePath, b.SizeBytes, b.ErrorMessage, b.CreatedBy,
		b.StartedAt, b.FinishedAt).Scan(&b.ID); err != nil {
		return wrapWriteErr("insert backup", err)
	}
	return nil
}

// Update guarda el resultado del intento.
func (r *BackupRepo) Update(ctx context.Context, b *entity.SystemBackup) error {
	if _, err := r.q.Exec(ctx, `
		UPDATE system_backups SET status = $2, file_path = $3, size_bytes = $4, error_message = $5, finished_at = $6
		WHERE id = $1`, b.ID, b.Status, b.FilePath, b.SizeBytes, b.ErrorMessage, b.FinishedAt); err != nil {
		return fmt.Errorf("update backup: %w", err)
	}
	return nil
}

// List respaldos más recientes primero.
func (r *BackupRepo) List(ctx context.Context) ([]*entity.SystemBackup, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, status, file_path, size_bytes, error_message, created_by, started_at, finished_at
		FROM system_backups ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()
	var list []*entity.SystemBackup
	for rows.Next() {
		var b entity.SystemBackup
		if err := rows.Scan(&b.ID, &b.Status, &b.FilePath, &b.SizeBytes, &b.ErrorMessage, &b.CreatedBy,
			&b.StartedAt, &b.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Snapshot vuelca cada tabla como lista de filas genéricas.
func (r *BackupRepo) Snapshot(ctx context.Context) (repository.Snapshot, error) {
	out := make(repository.Snapshot, len(snapshotTables))
	for _, table := range snapshotTables {
		rows, err := r.q.Query(ctx, `SELECT * FROM `+table+` ORDER BY id`)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", table, err)
		}
		data, err := pgx.CollectRows(rows, pgx.RowToMap)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", table, err)
		}
		if data == nil {
			data = []map[string]any{}
		}
		out[table] = data
	}
	return out, nil
}
