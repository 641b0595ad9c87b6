package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// ServiceOrderHandler maneja las órdenes de servicio.
type ServiceOrderHandler struct {
	uc  *usecase.ServiceOrderUseCase
	log *logger.Logger
}

// NewServiceOrderHandler construye el handler de órdenes de servicio.
func NewServiceOrderHandler(uc *usecase.ServiceOrderUseCase, log *logger.Logger) *ServiceOrderHandler {
	return &ServiceOrderHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar órdenes de servicio
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | in_progress | completed | cancelled"
// @Success      200  {array}   dto.ServiceOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/service-orders [get]
func (h *ServiceOrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCaller(c), repository.ServiceOrderFilter{Status: c.Query("status")})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear orden de servicio
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceOrderRequest  true  "datos de la orden"
// @Success      201   {object}  dto.ServiceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/service-orders [post]
func (h *ServiceOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceOrderRequest
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
// @Summary      Obtener orden de servicio
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.ServiceOrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id} [get]
func (h *ServiceOrderHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar orden de servicio
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                            true  "ID de la orden"
// @Param        body  body  dto.UpdateServiceOrderRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id} [put]
func (h *ServiceOrderHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.UpdateServiceOrderRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.Update(c.UserContext(), GetCaller(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// MonthlyStatus godoc
// @Summary      Estado mensual de la orden
// @Description  month_year con formato YYYY-MM. completed=true sella completed_date.
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la orden"
// @Param        body  body  dto.MonthlyStatusRequest  true  "month_year, completed"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/monthly-status [put]
func (h *ServiceOrderHandler) MonthlyStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.MonthlyStatusRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.SetMonthlyStatus(c.UserContext(), GetCaller(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden de servicio
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id} [delete]
func (h *ServiceOrderHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "orden eliminada"})
}
