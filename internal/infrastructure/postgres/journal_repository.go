package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.JournalRepository = (*JournalRepo)(nil)

const journalColumns = `id, title, content, entry_date, category, priority, status, hours_worked, location, tags,
	user_id, created_at, updated_at`

// JournalRepo implementación de JournalRepository.
type JournalRepo struct {
	q Querier
}

// NewJournalRepository construye el repositorio de bitácora.
func NewJournalRepository(q Querier) *JournalRepo {
	return &JournalRepo{q: q}
}

func scanJournalEntry(row rowScanner) (*entity.JournalEntry, error) {
	var e entity.JournalEntry
	var hours decimal.NullDecimal
	if err := row.Scan(&e.ID, &e.Title, &e.Content, &e.EntryDate, &e.Category, &e.Priority, &e.Status,
		&hours, &e.Location, &e.Tags, &e.UserID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.HoursWorked = decimalPtr(hours)
	return &e, nil
}

// Create inserta la entrada y asigna su ID.
func (r *JournalRepo) Create(ctx context.Context, e *entity.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (title, content, entry_date, category, priority, status, hours_worked,
			location, tags, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, e.Title, e.Content, e.EntryDate, e.Category, e.Priority, e.Status,
		nullDecimal(e.HoursWorked), e.Location, e.Tags, e.UserID, e.CreatedAt, e.UpdatedAt).Scan(&e.ID); err != nil {
		return wrapWriteErr("insert journal entry", err)
	}
	return nil
}

// GetByID obtiene una entrada; (nil, nil) si no existe.
func (r *JournalRepo) GetByID(ctx context.Context, id int64) (*entity.JournalEntry, error) {
	e, err := scanJournalEntry(r.q.QueryRow(ctx, `SELECT `+journalColumns+` FROM journal_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return e, nil
}

// Update escribe la fila completa.
func (r *JournalRepo) Update(ctx context.Context, e *entity.JournalEntry) error {
	query := `
		UPDATE journal_entries SET title = $2, content = $3, entry_date = $4, category = $5, priority = $6,
			status = $7, hours_worked = $8, location = $9, tags = $10, updated_at = $11
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, e.ID, e.Title, e.Content, e.EntryDate, e.Category, e.Priority, e.Status,
		nullDecimal(e.HoursWorked), e.Location, e.Tags, e.UpdatedAt); err != nil {
		return wrapWriteErr("update journal entry", err)
	}
	return nil
}

// Delete elimina una entrada.
func (r *JournalRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	return nil
}

// List entradas visibles, más recientes primero.
func (r *JournalRepo) List(ctx context.Context, scope access.Scope, f repository.JournalFilter) ([]*entity.JournalEntry, error) {
	var w whereBuilder
	w.scope(scope, "user_id", "")
	if f.From != nil {
		w.add("entry_date >= ?::date", *f.From)
	}
	if f.To != nil {
		w.add("entry_date <= ?::date", *f.To)
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	rows, err := r.q.Query(ctx, `SELECT `+journalColumns+` FROM journal_entries`+w.clause()+
		` ORDER BY entry_date DESC, created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.JournalEntry
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
