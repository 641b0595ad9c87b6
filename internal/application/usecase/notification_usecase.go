package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

// NotificationUseCase avisos del sistema. Cada usuario solo ve y gestiona los suyos.
type NotificationUseCase struct {
	store repository.Store
	tx    TxRunner
	now   func() time.Time
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(store repository.Store, tx TxRunner) *NotificationUseCase {
	return &NotificationUseCase{store: store, tx: tx, now: time.Now}
}

// List notificaciones propias no vencidas, más recientes primero.
func (uc *NotificationUseCase) List(ctx context.Context, caller access.Subject, unreadOnly bool) ([]dto.NotificationResponse, error) {
	list, err := uc.store.Notifications().ListByUser(ctx, caller.UserID, repository.NotificationFilter{
		UnreadOnly: unreadOnly,
		Now:        uc.now(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// Create envía una notificación a un usuario. Solo administradores.
func (uc *NotificationUseCase) Create(ctx context.Context, caller access.Subject, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if !access.HasAtLeast(caller.Role, access.RoleAdmin) {
		return nil, fmt.Errorf("%w: solo administradores envían notificaciones", domain.ErrForbidden)
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Message) == "" {
		return nil, invalid("title y message son obligatorios")
	}
	typ := defaultString(in.Type, entity.NotificationInfo)
	if !entity.IsValidNotificationType(typ) {
		return nil, invalid("type inválido")
	}
	n := &entity.Notification{
		UserID:          in.UserID,
		Title:           in.Title,
		Message:         in.Message,
		Type:            typ,
		RelatedTicketID: in.RelatedTicketID,
		ExpiresAt:       in.ExpiresAt.TimePtr(),
		CreatedAt:       uc.now(),
	}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := ensureUserExists(ctx, s, &in.UserID); err != nil {
			return err
		}
		return s.Notifications().Create(ctx, n)
	})
	if err != nil {
		return nil, err
	}
	resp := toNotificationResponse(n)
	return &resp, nil
}

// MarkRead marca como leída una notificación propia.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, caller access.Subject, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := ownNotification(ctx, s, caller, id, false); err != nil {
			return err
		}
		return s.Notifications().MarkRead(ctx, id)
	})
}

// MarkAllRead marca todas las propias; devuelve cuántas cambiaron.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, caller access.Subject) (int, error) {
	var n int
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		var err error
		n, err = s.Notifications().MarkAllRead(ctx, caller.UserID)
		return err
	})
	return n, err
}

// Delete elimina una notificación propia. super_admin puede borrar cualquiera.
func (uc *NotificationUseCase) Delete(ctx context.Context, caller access.Subject, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := ownNotification(ctx, s, caller, id, true); err != nil {
			return err
		}
		return s.Notifications().Delete(ctx, id)
	})
}

// UnreadCount conteo de no leídas vigentes.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, caller access.Subject) (int, error) {
	return uc.store.Notifications().CountUnread(ctx, caller.UserID, uc.now())
}

func ownNotification(ctx context.Context, s repository.Store, caller access.Subject, id int64, superAdminOverride bool) (*entity.Notification, error) {
	n, err := s.Notifications().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, notFound("notificación", id)
	}
	if n.UserID == caller.UserID {
		return n, nil
	}
	if superAdminOverride && access.NormalizeRole(caller.Role) == access.RoleSuperAdmin {
		return n, nil
	}
	return nil, domain.ErrForbidden
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:              n.ID,
		UserID:          n.UserID,
		Title:           n.Title,
		Message:         n.Message,
		Type:            n.Type,
		IsRead:          n.IsRead,
		RelatedTicketID: n.RelatedTicketID,
		ExpiresAt:       n.ExpiresAt,
		CreatedAt:       n.CreatedAt,
	}
}
