package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// TicketHandler maneja tickets, calificaciones, comentarios e historial.
type TicketHandler struct {
	uc  *usecase.TicketUseCase
	log *logger.Logger
}

// NewTicketHandler construye el handler de tickets.
func NewTicketHandler(uc *usecase.TicketUseCase, log *logger.Logger) *TicketHandler {
	return &TicketHandler{uc: uc, log: log}
}

// ticketFilter arma el filtro de listado y exportación desde la query.
func ticketFilter(c *fiber.Ctx) (repository.TicketFilter, error) {
	assigned, err := queryID(c, "assigned_to")
	if err != nil {
		return repository.TicketFilter{}, err
	}
	return repository.TicketFilter{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		AssignedTo: assigned,
	}, nil
}

// List godoc
// @Summary      Listar tickets
// @Description  Admin ve todos; usuario ve los que creó o tiene asignados.
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "open | in_progress | resolved | closed"
// @Param        priority     query  string  false  "low | medium | high | urgent"
// @Param        assigned_to  query  int     false  "ID del responsable"
// @Success      200  {array}   dto.TicketResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tickets [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	f, err := ticketFilter(c)
	if err != nil {
		return done(err)
	}
	out, err := h.uc.List(c.UserContext(), GetCaller(c), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear ticket
// @Description  Si trae assigned_to, el responsable recibe una notificación.
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTicketRequest  true  "datos del ticket"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ticket
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	out, err := h.uc.Get(c.UserContext(), GetCaller(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ticket
// @Description  Parche parcial. Pasar a resolved sella resolved_at; cada cambio de estado,
// @Description  prioridad o responsable queda en el historial.
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del ticket"
// @Param        body  body  dto.UpdateTicketRequest  true  "campos a modificar"
// @Success      200   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [put]
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.UpdateTicketRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.Update(c.UserContext(), GetCaller(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ticket
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del ticket"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [delete]
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "ticket eliminado"})
}

// Rate godoc
// @Summary      Calificar ticket
// @Description  Solo el solicitante, una vez, con el ticket resuelto o cerrado.
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del ticket"
// @Param        body  body  dto.RateTicketRequest  true  "rating 1..5, comment"
// @Success      200   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/rate [post]
func (h *TicketHandler) Rate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.RateTicketRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.Rate(c.UserContext(), GetCaller(c), GetEmail(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListComments godoc
// @Summary      Comentarios del ticket
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del ticket"
// @Success      200  {array}   dto.TicketCommentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/comments [get]
func (h *TicketHandler) ListComments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	out, err := h.uc.ListComments(c.UserContext(), GetCaller(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddComment godoc
// @Summary      Comentar ticket
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                             true  "ID del ticket"
// @Param        body  body  dto.CreateTicketCommentRequest  true  "comment, is_internal"
// @Success      201   {object}  dto.TicketCommentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.CreateTicketCommentRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.AddComment(c.UserContext(), GetCaller(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial del ticket
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del ticket"
// @Success      200  {array}   dto.TicketHistoryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/history [get]
func (h *TicketHandler) History(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	out, err := h.uc.History(c.UserContext(), GetCaller(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
