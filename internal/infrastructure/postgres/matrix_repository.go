package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

var (
	_ repository.MatrixRepository        = (*MatrixRepo)(nil)
	_ repository.MatrixHistoryRepository = (*MatrixHistoryRepo)(nil)
)

const matrixColumns = `id, name, description, matrix_type, rows, columns, data, headers, user_id, created_at, updated_at`

// MatrixRepo implementación de MatrixRepository. data y headers se guardan como JSONB.
type MatrixRepo struct {
	q Querier
}

// NewMatrixRepository construye el repositorio de matrices.
func NewMatrixRepository(q Querier) *MatrixRepo {
	return &MatrixRepo{q: q}
}

func scanMatrix(row rowScanner) (*entity.Matrix, error) {
	var m entity.Matrix
	var data, headers []byte
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.MatrixType, &m.Rows, &m.Columns, &data, &headers,
		&m.UserID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &m.Data); err != nil {
		return nil, fmt.Errorf("decode matrix data: %w", err)
	}
	if err := json.Unmarshal(headers, &m.Headers); err != nil {
		return nil, fmt.Errorf("decode matrix headers: %w", err)
	}
	return &m, nil
}

func encodeMatrix(m *entity.Matrix) (data, headers []byte, err error) {
	if data, err = json.Marshal(m.Data); err != nil {
		return nil, nil, fmt.Errorf("encode matrix data: %w", err)
	}
	if headers, err = json.Marshal(m.Headers); err != nil {
		return nil, nil, fmt.Errorf("encode matrix headers: %w", err)
	}
	return data, headers, nil
}

// Create inserta la matriz y asigna su ID.
func (r *MatrixRepo) Create(ctx context.Context, m *entity.Matrix) error {
	data, headers, err := encodeMatrix(m)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO matrices (name, description, matrix_type, rows, columns, data, headers, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, m.Name, m.Description, m.MatrixType, m.Rows, m.Columns, data, headers,
		m.UserID, m.CreatedAt, m.UpdatedAt).Scan(&m.ID); err != nil {
		return wrapWriteErr("insert matrix", err)
	}
	return nil
}

// GetByID obtiene una matriz; (nil, nil) si no existe.
func (r *MatrixRepo) GetByID(ctx context.Context, id int64) (*entity.Matrix, error) {
	m, err := scanMatrix(r.q.QueryRow(ctx, `SELECT `+matrixColumns+` FROM matrices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get matrix: %w", err)
	}
	return m, nil
}

// Update escribe la fila completa.
func (r *MatrixRepo) Update(ctx context.Context, m *entity.Matrix) error {
	data, headers, err := encodeMatrix(m)
	if err != nil {
		return err
	}
	query := `
		UPDATE matrices SET name = $2, description = $3, matrix_type = $4, rows = $5, columns = $6,
			data = $7, headers = $8, updated_at = $9
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Description, m.MatrixType, m.Rows, m.Columns,
		data, headers, m.UpdatedAt); err != nil {
		return wrapWriteErr("update matrix", err)
	}
	return nil
}

// Delete elimina una matriz. El historial se conserva.
func (r *MatrixRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM matrices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete matrix: %w", err)
	}
	return nil
}

// List matrices visibles, ordenadas por ID.
func (r *MatrixRepo) List(ctx context.Context, scope access.Scope) ([]*entity.Matrix, error) {
	var w whereBuilder
	w.scope(scope, "user_id", "")
	rows, err := r.q.Query(ctx, `SELECT `+matrixColumns+` FROM matrices`+w.clause()+` ORDER BY id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list matrices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Matrix
	for rows.Next() {
		m, err := scanMatrix(rows)
		if err != nil {
			return nil, fmt.Errorf("scan matrix: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// MatrixHistoryRepo implementación de MatrixHistoryRepository.
type MatrixHistoryRepo struct {
	q Querier
}

// NewMatrixHistoryRepository construye el repositorio de historial de matrices.
func NewMatrixHistoryRepository(q Querier) *MatrixHistoryRepo {
	return &MatrixHistoryRepo{q: q}
}

// Create inserta un registro de historial.
func (r *MatrixHistoryRepo) Create(ctx context.Context, h *entity.MatrixHistory) error {
	changes, err := json.Marshal(h.Changes)
	if err != nil {
		return fmt.Errorf("encode matrix history: %w", err)
	}
	query := `
		INSERT INTO matrix_history (matrix_id, user_id, action, changes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, h.MatrixID, h.UserID, h.Action, changes, h.CreatedAt).Scan(&h.ID); err != nil {
		return wrapWriteErr("insert matrix history", err)
	}
	return nil
}

// ListByMatrix historial de una matriz, más reciente primero.
func (r *MatrixHistoryRepo) ListByMatrix(ctx context.Context, matrixID int64) ([]*entity.MatrixHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, matrix_id, user_id, action, changes, created_at
		FROM matrix_history WHERE matrix_id = $1 ORDER BY created_at DESC, id DESC`, matrixID)
	if err != nil {
		return nil, fmt.Errorf("list matrix history: %w", err)
	}
	defer rows.Close()
	var list []*entity.MatrixHistory
	for rows.Next() {
		var h entity.MatrixHistory
		var changes []byte
		if err := rows.Scan(&h.ID, &h.MatrixID, &h.UserID, &h.Action, &changes, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan matrix history: %w", err)
		}
		if err := json.Unmarshal(changes, &h.Changes); err != nil {
			return nil, fmt.Errorf("decode matrix history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
