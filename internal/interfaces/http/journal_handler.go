package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// JournalHandler maneja la bitácora de trabajo.
type JournalHandler struct {
	uc  *usecase.JournalUseCase
	log *logger.Logger
}

// NewJournalHandler construye el handler de bitácora.
func NewJournalHandler(uc *usecase.JournalUseCase, log *logger.Logger) *JournalHandler {
	return &JournalHandler{uc: uc, log: log}
}

func journalFilter(c *fiber.Ctx) (repository.JournalFilter, error) {
	from, err := queryTime(c, "date_from")
	if err != nil {
		return repository.JournalFilter{}, err
	}
	to, err := queryTime(c, "date_to")
	if err != nil {
		return repository.JournalFilter{}, err
	}
	return repository.JournalFilter{
		From:     from,
		To:       to,
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}, nil
}

// List godoc
// @Summary      Listar bitácora
// @Description  Ordenada por entry_date y created_at descendentes.
// @Tags         journal
// @Security     Bearer
// @Produce      json
// @Param        date_from  query  string  false  "fecha inicial (YYYY-MM-DD)"
// @Param        date_to    query  string  false  "fecha final (YYYY-MM-DD)"
// @Param        category   query  string  false  "categoría"
// @Param        status     query  string  false  "pending | completed | cancelled"
// @Success      200  {array}   dto.JournalEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/journal [get]
func (h *JournalHandler) List(c *fiber.Ctx) error {
	f, err := journalFilter(c)
	if err != nil {
		return done(err)
	}
	out, err := h.uc.List(c.UserContext(), GetCaller(c), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas de la bitácora
// @Tags         journal
// @Security     Bearer
// @Produce      json
// @Param        date_from  query  string  false  "fecha inicial"
// @Param        date_to    query  string  false  "fecha final"
// @Param        category   query  string  false  "categoría"
// @Param        status     query  string  false  "estado"
// @Success      200  {object}  dto.JournalStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/journal/stats [get]
func (h *JournalHandler) Stats(c *fiber.Ctx) error {
	f, err := journalFilter(c)
	if err != nil {
		return done(err)
	}
	out, err := h.uc.Stats(c.UserContext(), GetCaller(c), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear entrada de bitácora
// @Tags         journal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJournalEntryRequest  true  "datos de la entrada"
// @Success      201   {object}  dto.JournalEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/journal [post]
func (h *JournalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJournalEntryRequest
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
// @Summary      Obtener entrada de bitácora
// @Tags         journal
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.JournalEntryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/journal/{id} [get]
func (h *JournalHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar entrada de bitácora
// @Tags         journal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                            true  "ID de la entrada"
// @Param        body  body  dto.UpdateJournalEntryRequest  true  "campos a modificar"
// @Success      200   {object}  dto.JournalEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/journal/{id} [put]
func (h *JournalHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.UpdateJournalEntryRequest
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
// @Summary      Eliminar entrada de bitácora
// @Tags         journal
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/journal/{id} [delete]
func (h *JournalHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "entrada eliminada"})
}
