package dto

import "time"

// CreateNotificationRequest notificación creada por un administrador.
type CreateNotificationRequest struct {
	UserID          int64      `json:"user_id" validate:"required,min=1"`
	Title           string     `json:"title" validate:"required,max=200"`
	Message         string     `json:"message" validate:"required"`
	Type            string     `json:"type" validate:"omitempty,oneof=info success warning error"`
	RelatedTicketID *int64     `json:"related_ticket_id"`
	ExpiresAt       *Timestamp `json:"expires_at"`
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	Type            string     `json:"type"`
	IsRead          bool       `json:"is_read"`
	RelatedTicketID *int64     `json:"related_ticket_id"`
	ExpiresAt       *time.Time `json:"expires_at"`
	CreatedAt       time.Time  `json:"created_at"`
}
