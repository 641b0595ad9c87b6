package repository

import (
	"context"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
)

// TicketFilter filtros opcionales del listado de tickets.
type TicketFilter struct {
	Status     string
	Priority   string
	AssignedTo *int64
}

// TicketRepository puerto de persistencia para Ticket.
type TicketRepository interface {
	Create(ctx context.Context, t *entity.Ticket) error
	GetByID(ctx context.Context, id int64) (*entity.Ticket, error)
	Update(ctx context.Context, t *entity.Ticket) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, scope access.Scope, f TicketFilter) ([]*entity.Ticket, error)
	CountByStatus(ctx context.Context, scope access.Scope) (map[string]int, error)
}

// TicketCommentRepository puerto de persistencia para comentarios de ticket.
type TicketCommentRepository interface {
	Create(ctx context.Context, c *entity.TicketComment) error
	ListByTicket(ctx context.Context, ticketID int64, includeInternal bool) ([]*entity.TicketComment, error)
}

// TicketHistoryRepository historial de cambios de ticket (solo inserción).
type TicketHistoryRepository interface {
	Create(ctx context.Context, h *entity.TicketHistory) error
	ListByTicket(ctx context.Context, ticketID int64) ([]*entity.TicketHistory, error)
}
