package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
)

// NotificationFilter filtros del listado propio. Now excluye las vencidas.
type NotificationFilter struct {
	UnreadOnly bool
	Now        time.Time
}

// NotificationRepository puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id int64) (*entity.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, f NotificationFilter) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID int64, now time.Time) (int, error)
}
