package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// PaymentReminderHandler maneja los recordatorios de pago.
type PaymentReminderHandler struct {
	uc  *usecase.PaymentReminderUseCase
	log *logger.Logger
}

// NewPaymentReminderHandler construye el handler de recordatorios.
func NewPaymentReminderHandler(uc *usecase.PaymentReminderUseCase, log *logger.Logger) *PaymentReminderHandler {
	return &PaymentReminderHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar recordatorios de pago
// @Tags         payment-reminders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | paid | overdue | cancelled"
// @Success      200  {array}   dto.PaymentReminderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payment-reminders [get]
func (h *PaymentReminderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCaller(c), repository.ReminderFilter{Status: c.Query("status")})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear recordatorio de pago
// @Tags         payment-reminders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentReminderRequest  true  "datos del recordatorio"
// @Success      201   {object}  dto.PaymentReminderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payment-reminders [post]
func (h *PaymentReminderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentReminderRequest
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
// @Summary      Obtener recordatorio de pago
// @Tags         payment-reminders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del recordatorio"
// @Success      200  {object}  dto.PaymentReminderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-reminders/{id} [get]
func (h *PaymentReminderHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar recordatorio de pago
// @Tags         payment-reminders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                               true  "ID del recordatorio"
// @Param        body  body  dto.UpdatePaymentReminderRequest  true  "campos a modificar"
// @Success      200   {object}  dto.PaymentReminderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payment-reminders/{id} [put]
func (h *PaymentReminderHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.UpdatePaymentReminderRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.Update(c.UserContext(), GetCaller(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Registrar pago
// @Description  Marca el recordatorio como pagado. Si es recurrente crea el siguiente vencimiento.
// @Tags         payment-reminders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del recordatorio"
// @Success      200  {object}  dto.PayReminderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/payment-reminders/{id}/pay [post]
func (h *PaymentReminderHandler) Pay(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	out, err := h.uc.Pay(c.UserContext(), GetCaller(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar recordatorio de pago
// @Tags         payment-reminders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del recordatorio"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-reminders/{id} [delete]
func (h *PaymentReminderHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "recordatorio eliminado"})
}
