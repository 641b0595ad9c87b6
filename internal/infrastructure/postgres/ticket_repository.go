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

var (
	_ repository.TicketRepository        = (*TicketRepo)(nil)
	_ repository.TicketCommentRepository = (*TicketCommentRepo)(nil)
	_ repository.TicketHistoryRepository = (*TicketHistoryRepo)(nil)
)

const ticketColumns = `id, title, description, status, priority, assigned_to, requester_name, requester_email,
	resolved_at, rating, rating_comment, rated_at, user_id, created_at, updated_at`

// TicketRepo implementación de TicketRepository.
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el repositorio de tickets.
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

func scanTicket(row rowScanner) (*entity.Ticket, error) {
	var t entity.Ticket
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.AssignedTo,
		&t.RequesterName, &t.RequesterEmail, &t.ResolvedAt, &t.Rating, &t.RatingComment, &t.RatedAt,
		&t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserta el ticket y asigna su ID.
func (r *TicketRepo) Create(ctx context.Context, t *entity.Ticket) error {
	query := `
		INSERT INTO tickets (title, description, status, priority, assigned_to, requester_name, requester_email,
			resolved_at, rating, rating_comment, rated_at, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, t.Title, t.Description, t.Status, t.Priority, t.AssignedTo,
		t.RequesterName, t.RequesterEmail, t.ResolvedAt, t.Rating, t.RatingComment, t.RatedAt,
		t.UserID, t.CreatedAt, t.UpdatedAt).Scan(&t.ID); err != nil {
		return wrapWriteErr("insert ticket", err)
	}
	return nil
}

// GetByID obtiene un ticket; (nil, nil) si no existe.
func (r *TicketRepo) GetByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	t, err := scanTicket(r.q.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// Update escribe la fila completa.
func (r *TicketRepo) Update(ctx context.Context, t *entity.Ticket) error {
	query := `
		UPDATE tickets SET title = $2, description = $3, status = $4, priority = $5, assigned_to = $6,
			requester_name = $7, requester_email = $8, resolved_at = $9, rating = $10, rating_comment = $11,
			rated_at = $12, updated_at = $13
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Title, t.Description, t.Status, t.Priority, t.AssignedTo,
		t.RequesterName, t.RequesterEmail, t.ResolvedAt, t.Rating, t.RatingComment, t.RatedAt, t.UpdatedAt); err != nil {
		return wrapWriteErr("update ticket", err)
	}
	return nil
}

// Delete elimina un ticket (comentarios e historial caen en cascada).
func (r *TicketRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

// List tickets visibles (propios o asignados según scope), ordenados por ID.
func (r *TicketRepo) List(ctx context.Context, scope access.Scope, f repository.TicketFilter) ([]*entity.Ticket, error) {
	var w whereBuilder
	w.scope(scope, "user_id", "assigned_to")
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Priority != "" {
		w.add("priority = ?", f.Priority)
	}
	if f.AssignedTo != nil {
		w.add("assigned_to = ?", *f.AssignedTo)
	}
	rows, err := r.q.Query(ctx, `SELECT `+ticketColumns+` FROM tickets`+w.clause()+` ORDER BY id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountByStatus conteo por estado dentro del scope.
func (r *TicketRepo) CountByStatus(ctx context.Context, scope access.Scope) (map[string]int, error) {
	var w whereBuilder
	w.scope(scope, "user_id", "assigned_to")
	return countByStatus(ctx, r.q, "tickets", &w)
}

// TicketCommentRepo implementación de TicketCommentRepository.
type TicketCommentRepo struct {
	q Querier
}

// NewTicketCommentRepository construye el repositorio de comentarios.
func NewTicketCommentRepository(q Querier) *TicketCommentRepo {
	return &TicketCommentRepo{q: q}
}

// Create inserta un comentario.
func (r *TicketCommentRepo) Create(ctx context.Context, c *entity.TicketComment) error {
	query := `
		INSERT INTO ticket_comments (ticket_id, user_id, comment, is_internal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, c.TicketID, c.UserID, c.Comment, c.IsInternal, c.CreatedAt, c.UpdatedAt).Scan(&c.ID); err != nil {
		return wrapWriteErr("insert ticket comment", err)
	}
	return nil
}

// ListByTicket comentarios en orden cronológico.
func (r *TicketCommentRepo) ListByTicket(ctx context.Context, ticketID int64, includeInternal bool) ([]*entity.TicketComment, error) {
	var w whereBuilder
	w.add("ticket_id = ?", ticketID)
	if !includeInternal {
		w.add("is_internal = FALSE")
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, ticket_id, user_id, comment, is_internal, created_at, updated_at
		FROM ticket_comments`+w.clause()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list ticket comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.TicketComment
	for rows.Next() {
		var c entity.TicketComment
		if err := rows.Scan(&c.ID, &c.TicketID, &c.UserID, &c.Comment, &c.IsInternal, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket comment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// TicketHistoryRepo implementación de TicketHistoryRepository.
type TicketHistoryRepo struct {
	q Querier
}

// NewTicketHistoryRepository construye el repositorio de historial de tickets.
func NewTicketHistoryRepository(q Querier) *TicketHistoryRepo {
	return &TicketHistoryRepo{q: q}
}

// Create inserta un registro de historial.
func (r *TicketHistoryRepo) Create(ctx context.Context, h *entity.TicketHistory) error {
	query := `
		INSERT INTO ticket_history (ticket_id, changed_by, field_name, old_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, h.TicketID, h.ChangedBy, h.FieldName, h.OldValue, h.NewValue, h.CreatedAt).Scan(&h.ID); err != nil {
		return wrapWriteErr("insert ticket history", err)
	}
	return nil
}

// ListByTicket historial del ticket, más reciente primero.
func (r *TicketHistoryRepo) ListByTicket(ctx context.Context, ticketID int64) ([]*entity.TicketHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, ticket_id, changed_by, field_name, old_value, new_value, created_at
		FROM ticket_history WHERE ticket_id = $1 ORDER BY created_at DESC, id DESC`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list ticket history: %w", err)
	}
	defer rows.Close()
	var list []*entity.TicketHistory
	for rows.Next() {
		var h entity.TicketHistory
		if err := rows.Scan(&h.ID, &h.TicketID, &h.ChangedBy, &h.FieldName, &h.OldValue, &h.NewValue, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
