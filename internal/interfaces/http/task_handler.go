package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// TaskHandler maneja las tareas.
type TaskHandler struct {
	uc  *usecase.TaskUseCase
	log *logger.Logger
}

// NewTaskHandler construye el handler de tareas.
func NewTaskHandler(uc *usecase.TaskUseCase, log *logger.Logger) *TaskHandler {
	return &TaskHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar tareas
// @Description  Tareas visibles para el llamador, ordenadas por id.
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "todo | in_progress | review | done"
// @Param        priority  query  string  false  "low | medium | high | urgent"
// @Success      200  {array}   dto.TaskResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	f := repository.TaskFilter{Status: c.Query("status"), Priority: c.Query("priority")}
	out, err := h.uc.List(c.UserContext(), GetCaller(c), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTaskRequest  true  "title, description, status, priority, due_date"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
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
// @Summary      Obtener tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tarea"
// @Success      200  {object}  dto.TaskResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar tarea
// @Description  Solo se modifican los campos presentes en el cuerpo.
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la tarea"
// @Param        body  body  dto.UpdateTaskRequest  true  "campos a modificar"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	var in dto.UpdateTaskRequest
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
// @Summary      Eliminar tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tarea"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return done(err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "tarea eliminada"})
}
