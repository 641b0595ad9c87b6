package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

var _ repository.PaymentReminderRepository = (*PaymentReminderRepo)(nil)

const reminderColumns = `id, title, description, amount, currency, due_date, status, recurrence, reminder_days,
	paid_at, user_id, created_at, updated_at`

// PaymentReminderRepo implementación de PaymentReminderRepository.
type PaymentReminderRepo struct {
	q Querier
}

// NewPaymentReminderRepository construye el repositorio de recordatorios de pago.
func NewPaymentReminderRepository(q Querier) *PaymentReminderRepo {
	return &PaymentReminderRepo{q: q}
}

func scanReminder(row rowScanner) (*entity.PaymentReminder, error) {
	var p entity.PaymentReminder
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Amount, &p.Currency, &p.DueDate, &p.Status,
		&p.Recurrence, &p.ReminderDays, &p.PaidAt, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta el recordatorio y asigna su ID.
func (r *PaymentReminderRepo) Create(ctx context.Context, p *entity.PaymentReminder) error {
	query := `
		INSERT INTO payment_reminders (title, description, amount, currency, due_date, status, recurrence,
			reminder_days, paid_at, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, p.Title, p.Description, p.Amount, p.Currency, p.DueDate, p.Status,
		p.Recurrence, p.ReminderDays, p.PaidAt, p.UserID, p.CreatedAt, p.UpdatedAt).Scan(&p.ID); err != nil {
		return wrapWriteErr("insert payment reminder", err)
	}
	return nil
}

// GetByID obtiene un recordatorio; (nil, nil) si no existe.
func (r *PaymentReminderRepo) GetByID(ctx context.Context, id int64) (*entity.PaymentReminder, error) {
	p, err := scanReminder(r.q.QueryRow(ctx, `SELECT `+reminderColumns+` FROM payment_reminders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment reminder: %w", err)
	}
	return p, nil
}

// Update escribe la fila completa.
func (r *PaymentReminderRepo) Update(ctx context.Context, p *entity.PaymentReminder) error {
	query := `
		UPDATE payment_reminders SET title = $2, description = $3, amount = $4, currency = $5, due_date = $6,
			status = $7, recurrence = $8, reminder_days = $9, paid_at = $10, updated_at = $11
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, p.ID, p.Title, p.Description, p.Amount, p.Currency, p.DueDate,
		p.Status, p.Recurrence, p.ReminderDays, p.PaidAt, p.UpdatedAt); err != nil {
		return wrapWriteErr("update payment reminder", err)
	}
	return nil
}

// Delete elimina un recordatorio.
func (r *PaymentReminderRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM payment_reminders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete payment reminder: %w", err)
	}
	return nil
}

// List recordatorios visibles, ordenados por ID.
func (r *PaymentReminderRepo) List(ctx context.Context, scope access.Scope, f repository.ReminderFilter) ([]*entity.PaymentReminder, error) {
	var w whereBuilder
	w.scope(scope, "user_id", "")
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	rows, err := r.q.Query(ctx, `SELECT `+reminderColumns+` FROM payment_reminders`+w.clause()+` ORDER BY id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list payment reminders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentReminder
	for rows.Next() {
		p, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment reminder: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
