package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/gestion-ti-api/internal/application/report"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// ExportHandler descarga listados en PDF o Excel. Aplica el mismo alcance y filtros que el
// listado correspondiente.
type ExportHandler struct {
	uc      *report.ExportUseCase
	metrics *Metrics
	log     *logger.Logger
}

// NewExportHandler construye el handler de exportaciones.
func NewExportHandler(uc *report.ExportUseCase, metrics *Metrics, log *logger.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, metrics: metrics, log: log}
}

// exportFormat copia el parámetro: Fiber reutiliza el buffer de la petición.
func exportFormat(c *fiber.Ctx) report.Format {
	return report.Format(utils.CopyString(c.Params("format")))
}

func (h *ExportHandler) send(c *fiber.Ctx, resource string, format report.Format, f *report.File, err error) error {
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.metrics.reportGenerated(resource, string(format))
	return sendFile(c, f)
}

// Tickets godoc
// @Summary      Exportar tickets
// @Tags         tickets
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format       path   string  true   "pdf | excel"
// @Param        status       query  string  false  "estado"
// @Param        priority     query  string  false  "prioridad"
// @Param        assigned_to  query  int     false  "ID del responsable"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tickets/export/{format} [get]
func (h *ExportHandler) Tickets(c *fiber.Ctx) error {
	f, err := ticketFilter(c)
	if err != nil {
		return done(err)
	}
	format := exportFormat(c)
	file, err := h.uc.Tickets(c.UserContext(), GetCaller(c), f, format)
	return h.send(c, "tickets", format, file, err)
}

// Matrices godoc
// @Summary      Exportar matrices
// @Tags         matrices
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  path  string  true  "pdf | excel"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/matrices/export/{format} [get]
func (h *ExportHandler) Matrices(c *fiber.Ctx) error {
	format := exportFormat(c)
	file, err := h.uc.Matrices(c.UserContext(), GetCaller(c), format)
	return h.send(c, "matrices", format, file, err)
}

// Journal godoc
// @Summary      Exportar bitácora
// @Tags         journal
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format     path   string  true   "pdf | excel"
// @Param        date_from  query  string  false  "fecha inicial"
// @Param        date_to    query  string  false  "fecha final"
// @Param        category   query  string  false  "categoría"
// @Param        status     query  string  false  "estado"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/journal/export/{format} [get]
func (h *ExportHandler) Journal(c *fiber.Ctx) error {
	f, err := journalFilter(c)
	if err != nil {
		return done(err)
	}
	format := exportFormat(c)
	file, err := h.uc.Journal(c.UserContext(), GetCaller(c), f, format)
	return h.send(c, "journal", format, file, err)
}
