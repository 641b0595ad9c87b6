package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// Campos de ticket que se registran en ticket_history.
const (
	ticketFieldStatus     = "status"
	ticketFieldPriority   = "priority"
	ticketFieldAssignedTo = "assigned_to"
)

// TicketUseCase casos de uso de tickets de soporte: CRUD, calificación, comentarios e historial.
type TicketUseCase struct {
	store          repository.Store
	tx             TxRunner
	bootstrapAdmin int64
	log            *logger.Logger
	now            func() time.Time
}

// NewTicketUseCase construye el caso de uso. bootstrapAdminID recibe los avisos de calificación.
func NewTicketUseCase(store repository.Store, tx TxRunner, bootstrapAdminID int64, log *logger.Logger) *TicketUseCase {
	return &TicketUseCase{store: store, tx: tx, bootstrapAdmin: bootstrapAdminID, log: log.Component("tickets"), now: time.Now}
}

// List devuelve los tickets visibles: propios y asignados para usuarios estándar.
func (uc *TicketUseCase) List(ctx context.Context, caller access.Subject, f repository.TicketFilter) ([]dto.TicketResponse, error) {
	if f.Status != "" && !entity.IsValidTicketStatus(f.Status) {
		return nil, invalid("status inválido")
	}
	if f.Priority != "" && !entity.IsValidPriority(f.Priority) {
		return nil, invalid("priority inválido")
	}
	list, err := uc.store.Tickets().List(ctx, access.ListScope(caller, true), f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTicketResponse(t))
	}
	return out, nil
}

// Get obtiene un ticket si el llamador puede verlo.
func (uc *TicketUseCase) Get(ctx context.Context, caller access.Subject, id int64) (*dto.TicketResponse, error) {
	t, err := uc.viewable(ctx, uc.store, caller, id)
	if err != nil {
		return nil, err
	}
	resp := toTicketResponse(t)
	return &resp, nil
}

// Create abre un ticket. Si trae responsable se le notifica en la misma transacción.
func (uc *TicketUseCase) Create(ctx context.Context, caller access.Subject, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title es obligatorio")
	}
	status := defaultString(in.Status, entity.TicketStatusOpen)
	if !entity.IsValidTicketStatus(status) {
		return nil, invalid("status inválido")
	}
	priority := defaultString(in.Priority, entity.PriorityMedium)
	if !entity.IsValidPriority(priority) {
		return nil, invalid("priority inválido")
	}
	now := uc.now()
	t := &entity.Ticket{
		Title:          in.Title,
		Description:    in.Description,
		Priority:       priority,
		AssignedTo:     in.AssignedTo,
		RequesterName:  in.RequesterName,
		RequesterEmail: in.RequesterEmail,
		UserID:         int64Ptr(caller.UserID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	t.SetStatus(status, now)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := ensureUserExists(ctx, s, t.AssignedTo); err != nil {
			return err
		}
		if err := s.Tickets().Create(ctx, t); err != nil {
			return err
		}
		if t.AssignedTo != nil {
			return notifyAssignee(ctx, s, t, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toTicketResponse(t)
	return &resp, nil
}

// Update aplica un parche parcial y registra en el historial los cambios de estado,
// prioridad y responsable.
func (uc *TicketUseCase) Update(ctx context.Context, caller access.Subject, id int64, in dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := requireEnum("status", in.Status, entity.IsValidTicketStatus); err != nil {
		return nil, err
	}
	if err := requireEnum("priority", in.Priority, entity.IsValidPriority); err != nil {
		return nil, err
	}
	var out *entity.Ticket
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		t, err := s.Tickets().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return notFound("ticket", id)
		}
		if err := access.Authorize(caller, access.ActionEdit, t.Resource()); err != nil {
			return err
		}
		now := uc.now()
		before := *t

		applyString(&t.Title, in.Title)
		applyNullable(&t.Description, in.Description)
		if in.Status.HasValue() {
			t.SetStatus(in.Status.Value, now)
		}
		applyString(&t.Priority, in.Priority)
		applyNullable(&t.AssignedTo, in.AssignedTo)
		applyNullable(&t.RequesterName, in.RequesterName)
		applyNullable(&t.RequesterEmail, in.RequesterEmail)
		t.UpdatedAt = now

		assigneeChanged := !sameID(before.AssignedTo, t.AssignedTo)
		if assigneeChanged {
			if err := ensureUserExists(ctx, s, t.AssignedTo); err != nil {
				return err
			}
		}
		if err := s.Tickets().Update(ctx, t); err != nil {
			return err
		}
		changes := []struct {
			field    string
			from, to *string
		}{
			{ticketFieldStatus, strPtr(before.Status), strPtr(t.Status)},
			{ticketFieldPriority, strPtr(before.Priority), strPtr(t.Priority)},
			{ticketFieldAssignedTo, ptrString(before.AssignedTo), ptrString(t.AssignedTo)},
		}
		for _, c := range changes {
			if sameString(c.from, c.to) {
				continue
			}
			if err := s.TicketHistory().Create(ctx, &entity.TicketHistory{
				TicketID:  t.ID,
				ChangedBy: int64Ptr(caller.UserID),
				FieldName: c.field,
				OldValue:  c.from,
				NewValue:  c.to,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		if assigneeChanged && t.AssignedTo != nil {
			if err := notifyAssignee(ctx, s, t, now); err != nil {
				return err
			}
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toTicketResponse(out)
	return &resp, nil
}

// Delete elimina un ticket con sus comentarios e historial (cascada en la base).
func (uc *TicketUseCase) Delete(ctx context.Context, caller access.Subject, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		t, err := s.Tickets().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return notFound("ticket", id)
		}
		if err := access.Authorize(caller, access.ActionDelete, t.Resource()); err != nil {
			return err
		}
		return s.Tickets().Delete(ctx, id)
	})
}

// Rate registra la calificación del solicitante. Solo el creador o quien tenga el email del
// solicitante, solo con el ticket resuelto o cerrado y una única vez. Notifica al
// administrador principal en la misma transacción.
func (uc *TicketUseCase) Rate(ctx context.Context, caller access.Subject, callerEmail string, id int64, in dto.RateTicketRequest) (*dto.TicketResponse, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("rating debe estar entre 1 y 5")
	}
	var out *entity.Ticket
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		t, err := s.Tickets().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return notFound("ticket", id)
		}
		if !isRequester(t, caller.UserID, callerEmail) {
			return fmt.Errorf("%w: solo el solicitante puede calificar el ticket", domain.ErrForbidden)
		}
		if !t.IsRateable() {
			return fmt.Errorf("%w: el ticket debe estar resuelto o cerrado para calificarlo", domain.ErrConflict)
		}
		if t.Rating != nil {
			return fmt.Errorf("%w: el ticket ya fue calificado", domain.ErrConflict)
		}
		now := uc.now()
		rating := in.Rating
		t.Rating = &rating
		t.RatingComment = in.Comment
		t.RatedAt = &now
		t.UpdatedAt = now
		if err := s.Tickets().Update(ctx, t); err != nil {
			return err
		}

		admin, err := s.Users().GetByID(ctx, uc.bootstrapAdmin)
		if err != nil {
			return err
		}
		if admin == nil {
			uc.log.Warn().Int64("ticket_id", t.ID).Int64("admin_id", uc.bootstrapAdmin).
				Msg("administrador principal inexistente, se omite el aviso de calificación")
		} else if err := s.Notifications().Create(ctx, &entity.Notification{
			UserID:          admin.ID,
			Title:           "Ticket calificado",
			Message:         fmt.Sprintf("El ticket #%d \"%s\" recibió una calificación de %d/5", t.ID, t.Title, rating),
			Type:            entity.NotificationSuccess,
			RelatedTicketID: int64Ptr(t.ID),
			CreatedAt:       now,
		}); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("ticket_id", id).Int64("user_id", caller.UserID).Int("rating", in.Rating).Msg("ticket calificado")
	resp := toTicketResponse(out)
	return &resp, nil
}

// AddComment agrega un comentario. Los internos solo los crean administradores.
func (uc *TicketUseCase) AddComment(ctx context.Context, caller access.Subject, ticketID int64, in dto.CreateTicketCommentRequest) (*dto.TicketCommentResponse, error) {
	if strings.TrimSpace(in.Comment) == "" {
		return nil, invalid("comment es obligatorio")
	}
	if in.IsInternal && !access.HasAtLeast(caller.Role, access.RoleAdmin) {
		return nil, fmt.Errorf("%w: solo administradores crean comentarios internos", domain.ErrForbidden)
	}
	now := uc.now()
	c := &entity.TicketComment{
		TicketID:   ticketID,
		UserID:     int64Ptr(caller.UserID),
		Comment:    in.Comment,
		IsInternal: in.IsInternal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := uc.viewable(ctx, s, caller, ticketID); err != nil {
			return err
		}
		return s.TicketComments().Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	resp := toTicketCommentResponse(c)
	return &resp, nil
}

// ListComments devuelve los comentarios; los internos solo para administradores.
func (uc *TicketUseCase) ListComments(ctx context.Context, caller access.Subject, ticketID int64) ([]dto.TicketCommentResponse, error) {
	if _, err := uc.viewable(ctx, uc.store, caller, ticketID); err != nil {
		return nil, err
	}
	list, err := uc.store.TicketComments().ListByTicket(ctx, ticketID, access.HasAtLeast(caller.Role, access.RoleAdmin))
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketCommentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toTicketCommentResponse(c))
	}
	return out, nil
}

// History devuelve los cambios registrados del ticket.
func (uc *TicketUseCase) History(ctx context.Context, caller access.Subject, ticketID int64) ([]dto.TicketHistoryResponse, error) {
	if _, err := uc.viewable(ctx, uc.store, caller, ticketID); err != nil {
		return nil, err
	}
	list, err := uc.store.TicketHistory().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.TicketHistoryResponse{
			ID:        h.ID,
			TicketID:  h.TicketID,
			ChangedBy: h.ChangedBy,
			FieldName: h.FieldName,
			OldValue:  h.OldValue,
			NewValue:  h.NewValue,
			CreatedAt: h.CreatedAt,
		})
	}
	return out, nil
}

func (uc *TicketUseCase) viewable(ctx context.Context, s repository.Store, caller access.Subject, id int64) (*entity.Ticket, error) {
	t, err := s.Tickets().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFound("ticket", id)
	}
	if err := access.Authorize(caller, access.ActionView, t.Resource()); err != nil {
		return nil, err
	}
	return t, nil
}

func isRequester(t *entity.Ticket, userID int64, email string) bool {
	if t.UserID != nil && *t.UserID == userID {
		return true
	}
	return email != "" && t.RequesterEmail != nil && strings.EqualFold(strings.TrimSpace(*t.RequesterEmail), email)
}

func ensureUserExists(ctx context.Context, s repository.Store, id *int64) error {
	if id == nil {
		return nil
	}
	u, err := s.Users().GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("%w: usuario %d", domain.ErrReferenceNotFound, *id)
	}
	return nil
}

func notifyAssignee(ctx context.Context, s repository.Store, t *entity.Ticket, now time.Time) error {
	err := s.Notifications().Create(ctx, &entity.Notification{
		UserID:          *t.AssignedTo,
		Title:           "Ticket asignado",
		Message:         fmt.Sprintf("Se te asignó el ticket #%d \"%s\"", t.ID, t.Title),
		Type:            entity.NotificationInfo,
		RelatedTicketID: int64Ptr(t.ID),
		CreatedAt:       now,
	})
	if errors.Is(err, domain.ErrReferenceNotFound) {
		return fmt.Errorf("%w: responsable %d", domain.ErrReferenceNotFound, *t.AssignedTo)
	}
	return err
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func toTicketResponse(t *entity.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		AssignedTo:     t.AssignedTo,
		RequesterName:  t.RequesterName,
		RequesterEmail: t.RequesterEmail,
		ResolvedAt:     t.ResolvedAt,
		Rating:         t.Rating,
		RatingComment:  t.RatingComment,
		RatedAt:        t.RatedAt,
		UserID:         t.UserID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toTicketCommentResponse(c *entity.TicketComment) dto.TicketCommentResponse {
	return dto.TicketCommentResponse{
		ID:         c.ID,
		TicketID:   c.TicketID,
		UserID:     c.UserID,
		Comment:    c.Comment,
		IsInternal: c.IsInternal,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
