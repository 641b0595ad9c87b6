package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// DepartmentHandler maneja los departamentos y sus administradores.
type DepartmentHandler struct {
	uc  *usecase.DepartmentUseCase
	log *logger.Logger
}

// NewDepartmentHandler construye el handler de departamentos.
func NewDepartmentHandler(uc *usecase.DepartmentUseCase, log *logger.Logger) *DepartmentHandler {
	return &DepartmentHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar departamentos
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DepartmentResponse
// @Router       /api/departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear departamento
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDepartmentRequest  true  "name, description"
// @Success      201   {object}  dto.DepartmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/departments [post]
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDepartmentRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar departamento
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID del departamento"
// @Param        body  body  dto.UpdateDepartmentRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DepartmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [put]
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.UpdateDepartmentRequest
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
// @Summary      Eliminar departamento
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del departamento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "departamento eliminado"})
}

// ListAdmins godoc
// @Summary      Administradores del departamento
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del departamento"
// @Success      200  {array}   dto.AdminDepartmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id}/admins [get]
func (h *DepartmentHandler) ListAdmins(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	out, err := h.uc.ListAdmins(c.UserContext(), GetCaller(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// AssignAdmin godoc
// @Summary      Asignar administrador
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del departamento"
// @Param        body  body  dto.AssignAdminRequest  true  "admin_id"
// @Success      201   {object}  dto.AdminDepartmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/departments/{id}/admins [post]
func (h *DepartmentHandler) AssignAdmin(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.AssignAdminRequest
	if err := parseBody(c, &in); err != nil {
		return done(err)
	}
	out, err := h.uc.AssignAdmin(c.UserContext(), GetCaller(c), id, in.AdminID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UnassignAdmin godoc
// @Summary      Quitar administrador
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id       path  int  true  "ID del departamento"
// @Param        adminId  path  int  true  "ID del administrador"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id}/admins/{adminId} [delete]
func (h *DepartmentHandler) UnassignAdmin(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	adminID, err := paramID(c, "adminId")
	if err != nil {
		return done(err)
	}
	if err := h.uc.UnassignAdmin(c.UserContext(), GetCaller(c), id, adminID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "administrador desasignado"})
}
