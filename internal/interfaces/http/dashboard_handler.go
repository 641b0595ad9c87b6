package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/gestion-ti-api/internal/application/analytics"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve los contadores del panel principal.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryResponse. Para admin los totales cubren todo el sistema;
// para usuario solo sus propios registros.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}
