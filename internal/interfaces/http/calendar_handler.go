package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// CalendarHandler maneja los eventos de agenda, incluidos los grupos recurrentes.
type CalendarHandler struct {
	uc  *usecase.CalendarUseCase
	log *logger.Logger
}

// NewCalendarHandler construye el handler de agenda.
func NewCalendarHandler(uc *usecase.CalendarUseCase, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar eventos
// @Tags         calendar
// @Security     Bearer
// @Produce      json
// @Param        date_from   query  string  false  "inicio mínimo (RFC 3339 o YYYY-MM-DD)"
// @Param        date_to     query  string  false  "inicio máximo"
// @Param        event_type  query  string  false  "visit | maintenance | meeting | other"
// @Success      200  {array}   dto.CalendarEventResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/calendar-events [get]
func (h *CalendarHandler) List(c *fiber.Ctx) error {
	from, err := queryTime(c, "date_from")
	if err != nil {
		return done(err)
	}
	to, err := queryTime(c, "date_to")
	if err != nil {
		return done(err)
	}
	f := repository.CalendarFilter{From: from, To: to, EventType: c.Query("event_type")}
	out, err := h.uc.List(c.UserContext(), GetCaller(c), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear evento
// @Description  Un evento recurrente sin recurrence_id recibe uno nuevo.
// @Tags         calendar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCalendarEventRequest  true  "datos del evento"
// @Success      201   {object}  dto.CalendarEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calendar-events [post]
func (h *CalendarHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCalendarEventRequest
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
// @Summary      Obtener evento
// @Tags         calendar
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del evento"
// @Success      200  {object}  dto.CalendarEventResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/calendar-events/{id} [get]
func (h *CalendarHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar evento
// @Tags         calendar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                             true  "ID del evento"
// @Param        body  body  dto.UpdateCalendarEventRequest  true  "campos a modificar"
// @Success      200   {object}  dto.CalendarEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/calendar-events/{id} [put]
func (h *CalendarHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.UpdateCalendarEventRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.Update(c.UserContext(), GetCaller(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateRecurring godoc
// @Summary      Actualizar evento recurrente
// @Description  Con update_all aplica el parche a todos los eventos del grupo. Si el llamador
// @Description  no puede editar alguno no se modifica ninguno.
// @Tags         calendar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID del evento"
// @Param        body  body  dto.UpdateRecurringRequest  true  "update_all y campos a modificar"
// @Success      200   {object}  dto.RecurringUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/calendar-events/{id}/update-recurring [put]
func (h *CalendarHandler) UpdateRecurring(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.UpdateRecurringRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.UpdateRecurring(c.UserContext(), GetCaller(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar evento
// @Tags         calendar
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del evento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/calendar-events/{id} [delete]
func (h *CalendarHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "evento eliminado"})
}

// DeleteRecurring godoc
// @Summary      Eliminar evento recurrente
// @Description  delete_all puede venir en el cuerpo o en la query.
// @Tags         calendar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id          path   int                         true   "ID del evento"
// @Param        delete_all  query  bool                        false  "borrar todo el grupo"
// @Param        body        body   dto.DeleteRecurringRequest  false  "delete_all"
// @Success      200  {object}  dto.CountResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/calendar-events/{id}/delete-recurring [delete]
func (h *CalendarHandler) DeleteRecurring(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.DeleteRecurringRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return done(err)
	}
	fromQuery, err := queryBool(c, "delete_all")
	if err != nil {
		return done(err)
	}
	n, err := h.uc.DeleteRecurring(c.UserContext(), GetCaller(c), id, in.DeleteAll || fromQuery)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.CountResponse{Message: "eventos eliminados", Count: n})
}
