package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// NotificationHandler maneja las notificaciones del llamador.
type NotificationHandler struct {
	uc  *usecase.NotificationUseCase
	log *logger.Logger
}

// NewNotificationHandler construye el handler de notificaciones.
func NewNotificationHandler(uc *usecase.NotificationUseCase, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar notificaciones propias
// @Description  Excluye las vencidas. Más recientes primero.
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        unread_only  query  bool  false  "solo no leídas"
// @Success      200  {array}   dto.NotificationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unread, err := queryBool(c, "unread_only")
	if err != nil {
		return done(err)
	}
	out, err := h.uc.List(c.UserContext(), GetCaller(c), unread)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UnreadCount godoc
// @Summary      Cantidad de notificaciones no leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.uc.UnreadCount(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.CountResponse{Message: "notificaciones no leídas", Count: n})
}

// Create godoc
// @Summary      Crear notificación
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNotificationRequest  true  "user_id, title, message, type"
// @Success      201   {object}  dto.NotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la notificación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	if err := h.uc.MarkRead(c.UserContext(), GetCaller(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notificación leída"})
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Router       /api/notifications/mark-all-read [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.CountResponse{Message: "notificaciones marcadas como leídas", Count: n})
}

// Delete godoc
// @Summary      Eliminar notificación
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la notificación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notificación eliminada"})
}
