package entity

import "time"

// Tipos de Notification.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// IsValidNotificationType valida el tipo de notificación.
func IsValidNotificationType(s string) bool {
	return oneOf(s, NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError)
}

// Notification aviso dirigido a un usuario. Deja de ser visible al pasar ExpiresAt.
type Notification struct {
	ID              int64
	UserID          int64
	Title           string
	Message         string
	Type            string
	IsRead          bool
	RelatedTicketID *int64
	ExpiresAt       *time.Time
	CreatedAt       time.Time
}

// IsVisibleAt indica si la notificación sigue vigente en now.
func (n *Notification) IsVisibleAt(now time.Time) bool {
	return n.ExpiresAt == nil || n.ExpiresAt.After(now)
}
