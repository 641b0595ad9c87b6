package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, user_id, title, message, type, is_read, related_ticket_id, expires_at, created_at`

// NotificationRepo implementación de NotificationRepository.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el repositorio de notificaciones.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func scanNotification(row rowScanner) (*entity.Notification, error) {
	var n entity.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.RelatedTicketID,
		&n.ExpiresAt, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserta la notificación y asigna su ID.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, is_read, related_ticket_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, n.UserID, n.Title, n.Message, n.Type, n.IsRead, n.RelatedTicketID,
		n.ExpiresAt, n.CreatedAt).Scan(&n.ID); err != nil {
		return wrapWriteErr("insert notification", err)
	}
	return nil
}

// GetByID obtiene una notificación; (nil, nil) si no existe.
func (r *NotificationRepo) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	n, err := scanNotification(r.q.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marca como leídas todas las del usuario y devuelve cuántas cambiaron.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Delete elimina una notificación.
func (r *NotificationRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

// ListByUser notificaciones vigentes del usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID int64, f repository.NotificationFilter) ([]*entity.Notification, error) {
	var w whereBuilder
	w.add("user_id = ?", userID)
	w.add("(expires_at IS NULL OR expires_at > ?)", f.Now)
	if f.UnreadOnly {
		w.add("is_read = FALSE")
	}
	rows, err := r.q.Query(ctx, `SELECT `+notificationColumns+` FROM notifications`+w.clause()+
		` ORDER BY created_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// CountUnread no leídas y vigentes del usuario.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID int64, now time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND is_read = FALSE AND (expires_at IS NULL OR expires_at > $2)`, userID, now).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}
