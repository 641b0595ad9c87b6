package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// MatrixHandler maneja las matrices de análisis y su historial.
type MatrixHandler struct {
	uc  *usecase.MatrixUseCase
	log *logger.Logger
}

// NewMatrixHandler construye el handler de matrices.
func NewMatrixHandler(uc *usecase.MatrixUseCase, log *logger.Logger) *MatrixHandler {
	return &MatrixHandler{uc: uc, log: log}
}

// Templates godoc
// @Summary      Plantillas de matriz
// @Tags         matrices
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MatrixTemplateResponse
// @Router       /api/matrix-templates [get]
func (h *MatrixHandler) Templates(c *fiber.Ctx) error {
	return c.JSON(h.uc.Templates())
}

// List godoc
// @Summary      Listar matrices
// @Tags         matrices
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MatrixResponse
// @Router       /api/matrices [get]
func (h *MatrixHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear matriz
// @Description  Los encabezados y el tamaño salen de la plantilla del tipo; custom usa rows/columns.
// @Tags         matrices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMatrixRequest  true  "name, matrix_type, rows, columns"
// @Success      201   {object}  dto.MatrixResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/matrices [post]
func (h *MatrixHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMatrixRequest
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
// @Summary      Obtener matriz
// @Tags         matrices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la matriz"
// @Success      200  {object}  dto.MatrixResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matrices/{id} [get]
func (h *MatrixHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar matriz
// @Description  Cambiar rows/columns redimensiona la grilla conservando las celdas existentes.
// @Tags         matrices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la matriz"
// @Param        body  body  dto.UpdateMatrixRequest  true  "campos a modificar"
// @Success      200   {object}  dto.MatrixResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/matrices/{id} [put]
func (h *MatrixHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.UpdateMatrixRequest
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
// @Summary      Eliminar matriz
// @Tags         matrices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la matriz"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matrices/{id} [delete]
func (h *MatrixHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "matriz eliminada"})
}

// History godoc
// @Summary      Historial de la matriz
// @Tags         matrices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la matriz"
// @Success      200  {array}   dto.MatrixHistoryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matrices/{id}/history [get]
func (h *MatrixHandler) History(c *fiber.Ctx) error {
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
