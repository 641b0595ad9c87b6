package entity

import (
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
)

// Estados de Ticket.
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// IsValidTicketStatus valida el estado de un ticket.
func IsValidTicketStatus(s string) bool {
	return oneOf(s, TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed)
}

// Ticket solicitud de soporte. Es asignable: el responsable también puede editarlo.
type Ticket struct {
	ID             int64
	Title          string
	Description    *string
	Status         string
	Priority       string
	AssignedTo     *int64
	RequesterName  *string
	RequesterEmail *string
	ResolvedAt     *time.Time
	Rating         *int
	RatingComment  *string
	RatedAt        *time.Time
	UserID         *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Resource descriptor de acceso.
func (t *Ticket) Resource() access.Resource { return access.Assignable(t.UserID, t.AssignedTo) }

// SetStatus cambia el estado y sella resolved_at al pasar a resuelto.
func (t *Ticket) SetStatus(status string, now time.Time) {
	if status == TicketStatusResolved && t.Status != TicketStatusResolved {
		t.ResolvedAt = &now
	}
	t.Status = status
}

// IsRateable indica si el ticket admite calificación.
func (t *Ticket) IsRateable() bool {
	return t.Status == TicketStatusResolved || t.Status == TicketStatusClosed
}

// TicketComment comentario sobre un ticket. Los internos solo los ven administradores.
type TicketComment struct {
	ID         int64
	TicketID   int64
	UserID     *int64
	Comment    string
	IsInternal bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TicketHistory registro inmutable de un cambio de campo rastreado.
type TicketHistory struct {
	ID        int64
	TicketID  int64
	ChangedBy *int64
	FieldName string
	OldValue  *string
	NewValue  *string
	CreatedAt time.Time
}
