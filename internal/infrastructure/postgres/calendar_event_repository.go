package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

var _ repository.CalendarEventRepository = (*CalendarEventRepo)(nil)

const calendarColumns = `id, title, description, start_date, end_date, all_day, location, event_type, equipment,
	branch, maintenance_type, recurrence_id, is_recurring, recurrence_pattern, user_id, created_at, updated_at`

// CalendarEventRepo implementación de CalendarEventRepository.
type CalendarEventRepo struct {
	q Querier
}

// NewCalendarEventRepository construye el repositorio de eventos.
func NewCalendarEventRepository(q Querier) *CalendarEventRepo {
	return &CalendarEventRepo{q: q}
}

func scanCalendarEvent(row rowScanner) (*entity.CalendarEvent, error) {
	var e entity.CalendarEvent
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.AllDay, &e.Location,
		&e.EventType, &e.Equipment, &e.Branch, &e.MaintenanceType, &e.RecurrenceID, &e.IsRecurring,
		&e.RecurrencePattern, &e.UserID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *CalendarEventRepo) list(ctx context.Context, query string, args ...any) ([]*entity.CalendarEvent, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	defer rows.Close()
	var list []*entity.CalendarEvent
	for rows.Next() {
		e, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Create inserta el evento y asigna su ID.
func (r *CalendarEventRepo) Create(ctx context.Context, e *entity.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (title, description, start_date, end_date, all_day, location, event_type,
			equipment, branch, maintenance_type, recurrence_id, is_recurring, recurrence_pattern, user_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, e.Title, e.Description, e.StartDate, e.EndDate, e.AllDay, e.Location,
		e.EventType, e.Equipment, e.Branch, e.MaintenanceType, e.RecurrenceID, e.IsRecurring,
		e.RecurrencePattern, e.UserID, e.CreatedAt, e.UpdatedAt).Scan(&e.ID); err != nil {
		return wrapWriteErr("insert calendar event", err)
	}
	return nil
}

// GetByID obtiene un evento; (nil, nil) si no existe.
func (r *CalendarEventRepo) GetByID(ctx context.Context, id int64) (*entity.CalendarEvent, error) {
	e, err := scanCalendarEvent(r.q.QueryRow(ctx, `SELECT `+calendarColumns+` FROM calendar_events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get calendar event: %w", err)
	}
	return e, nil
}

// Update escribe la fila completa.
func (r *CalendarEventRepo) Update(ctx context.Context, e *entity.CalendarEvent) error {
	query := `
		UPDATE calendar_events SET title = $2, description = $3, start_date = $4, end_date = $5, all_day = $6,
			location = $7, event_type = $8, equipment = $9, branch = $10, maintenance_type = $11,
			recurrence_id = $12, is_recurring = $13, recurrence_pattern = $14, updated_at = $15
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, e.ID, e.Title, e.Description, e.StartDate, e.EndDate, e.AllDay,
		e.Location, e.EventType, e.Equipment, e.Branch, e.MaintenanceType, e.RecurrenceID, e.IsRecurring,
		e.RecurrencePattern, e.UpdatedAt); err != nil {
		return wrapWriteErr("update calendar event", err)
	}
	return nil
}

// Delete elimina un evento.
func (r *CalendarEventRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	return nil
}

// List eventos visibles con filtros de rango y tipo, ordenados por ID.
func (r *CalendarEventRepo) List(ctx context.Context, scope access.Scope, f repository.CalendarFilter) ([]*entity.CalendarEvent, error) {
	var w whereBuilder
	w.scope(scope, "user_id", "")
	if f.From != nil {
		w.add("start_date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("start_date <= ?", *f.To)
	}
	if f.EventType != "" {
		w.add("event_type = ?", f.EventType)
	}
	return r.list(ctx, `SELECT `+calendarColumns+` FROM calendar_events`+w.clause()+` ORDER BY id`, w.args...)
}

// ListByRecurrence todos los eventos de un grupo recurrente.
func (r *CalendarEventRepo) ListByRecurrence(ctx context.Context, recurrenceID string) ([]*entity.CalendarEvent, error) {
	return r.list(ctx, `SELECT `+calendarColumns+` FROM calendar_events WHERE recurrence_id = $1 ORDER BY id`, recurrenceID)
}

// CountBetween eventos visibles con start_date en [from, to).
func (r *CalendarEventRepo) CountBetween(ctx context.Context, scope access.Scope, from, to time.Time) (int, error) {
	var w whereBuilder
	w.scope(scope, "user_id", "")
	w.add("start_date >= ?", from)
	w.add("start_date < ?", to)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM calendar_events`+w.clause(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count calendar events: %w", err)
	}
	return n, nil
}
