package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// BackupHandler maneja los respaldos del sistema (solo super_admin).
type BackupHandler struct {
	uc      *usecase.BackupUseCase
	metrics *Metrics
	log     *logger.Logger
}

// NewBackupHandler construye el handler de respaldos.
func NewBackupHandler(uc *usecase.BackupUseCase, metrics *Metrics, log *logger.Logger) *BackupHandler {
	return &BackupHandler{uc: uc, metrics: metrics, log: log}
}

// List godoc
// @Summary      Historial de respaldos
// @Tags         system
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BackupResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/system/backups [get]
func (h *BackupHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Run godoc
// @Summary      Ejecutar respaldo
// @Description  Un fallo de escritura queda registrado en el respaldo con status failed.
// @Tags         system
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BackupResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/system/backups [post]
func (h *BackupHandler) Run(c *fiber.Ctx) error {
	out, err := h.uc.Run(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.metrics.backupFinished(out.Status)
	return c.Status(fiber.StatusCreated).JSON(out)
}
