package dto

import "time"

// CreateTicketRequest entrada para crear un ticket.
type CreateTicketRequest struct {
	Title          string  `json:"title" validate:"required,max=200"`
	Description    *string `json:"description"`
	Status         string  `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Priority       string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo     *int64  `json:"assigned_to"`
	RequesterName  *string `json:"requester_name" validate:"omitempty,max=100"`
	RequesterEmail *string `json:"requester_email" validate:"omitempty,email,max=120"`
}

// UpdateTicketRequest actualización parcial de un ticket.
type UpdateTicketRequest struct {
	Title          Optional[string] `json:"title"`
	Description    Optional[string] `json:"description"`
	Status         Optional[string] `json:"status"`
	Priority       Optional[string] `json:"priority"`
	AssignedTo     Optional[int64]  `json:"assigned_to"`
	RequesterName  Optional[string] `json:"requester_name"`
	RequesterEmail Optional[string] `json:"requester_email"`
}

// RateTicketRequest calificación del solicitante.
type RateTicketRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=1000"`
}

// CreateTicketCommentRequest comentario nuevo.
type CreateTicketCommentRequest struct {
	Comment    string `json:"comment" validate:"required,max=5000"`
	IsInternal bool   `json:"is_internal"`
}

// TicketResponse salida de un ticket.
type TicketResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	AssignedTo     *int64     `json:"assigned_to"`
	RequesterName  *string    `json:"requester_name"`
	RequesterEmail *string    `json:"requester_email"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	Rating         *int       `json:"rating"`
	RatingComment  *string    `json:"rating_comment"`
	RatedAt        *time.Time `json:"rated_at"`
	UserID         *int64     `json:"user_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TicketCommentResponse salida de un comentario.
type TicketCommentResponse struct {
	ID         int64     `json:"id"`
	TicketID   int64     `json:"ticket_id"`
	UserID     *int64    `json:"user_id"`
	Comment    string    `json:"comment"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TicketHistoryResponse salida de un cambio registrado.
type TicketHistoryResponse struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	ChangedBy *int64    `json:"changed_by"`
	FieldName string    `json:"field_name"`
	OldValue  *string   `json:"old_value"`
	NewValue  *string   `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}
