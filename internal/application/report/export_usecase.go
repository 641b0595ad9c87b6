package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/matrix"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dateLayout = "02/01/2006"

// ExportUseCase exporta listados a PDF o Excel con el mismo scope y filtros que los listados.
type ExportUseCase struct {
	store     repository.Store
	renderers map[Format]Renderer
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso con un renderer por formato.
func NewExportUseCase(store repository.Store, pdf, excel Renderer) *ExportUseCase {
	return &ExportUseCase{
		store:     store,
		renderers: map[Format]Renderer{FormatPDF: pdf, FormatExcel: excel},
		now:       time.Now,
	}
}

// Tickets exporta los tickets visibles.
func (uc *ExportUseCase) Tickets(ctx context.Context, caller access.Subject, f repository.TicketFilter, format Format) (*File, error) {
	list, err := uc.store.Tickets().List(ctx, access.ListScope(caller, true), f)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	t := Table{
		Title:       "Reporte de Tickets",
		GeneratedAt: now,
		Columns:     []string{"ID", "Título", "Estado", "Prioridad", "Asignado a", "Solicitante", "Calificación", "Creado"},
	}
	byStatus := make(map[string]int)
	for _, tk := range list {
		byStatus[tk.Status]++
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(tk.ID, 10),
			tk.Title,
			Label(tk.Status),
			Label(tk.Priority),
			idOrDash(tk.AssignedTo),
			stringOrDash(tk.RequesterName),
			intOrDash(tk.Rating),
			tk.CreatedAt.Format(dateLayout),
		})
	}
	t.Summary = append(t.Summary, [2]string{"Total", strconv.Itoa(len(list))})
	for _, s := range []string{entity.TicketStatusOpen, entity.TicketStatusInProgress, entity.TicketStatusResolved, entity.TicketStatusClosed} {
		t.Summary = append(t.Summary, [2]string{Label(s), strconv.Itoa(byStatus[s])})
	}
	return uc.render(ctx, "tickets", format, t)
}

// Matrices exporta las matrices visibles (una fila por matriz).
func (uc *ExportUseCase) Matrices(ctx context.Context, caller access.Subject, format Format) (*File, error) {
	list, err := uc.store.Matrices().List(ctx, access.ListScope(caller, false))
	if err != nil {
		return nil, err
	}
	t := Table{
		Title:       "Reporte de Matrices",
		GeneratedAt: uc.now(),
		Summary:     [][2]string{{"Total", strconv.Itoa(len(list))}},
		Columns:     []string{"ID", "Nombre", "Tipo", "Tamaño", "Celdas con datos", "Actualizado"},
	}
	for _, m := range list {
		filled := 0
		for _, v := range m.Data {
			if v != "" {
				filled++
			}
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(m.ID, 10),
			m.Name,
			matrixTypeLabel(m.MatrixType),
			fmt.Sprintf("%dx%d", m.Rows, m.Columns),
			strconv.Itoa(filled),
			m.UpdatedAt.Format(dateLayout),
		})
	}
	return uc.render(ctx, "matrices", format, t)
}

// Journal exporta la bitácora visible con el total de horas.
func (uc *ExportUseCase) Journal(ctx context.Context, caller access.Subject, f repository.JournalFilter, format Format) (*File, error) {
	list, err := uc.store.Journal().List(ctx, access.ListScope(caller, false), f)
	if err != nil {
		return nil, err
	}
	t := Table{
		Title:       "Bitácora de Trabajo",
		GeneratedAt: uc.now(),
		Columns:     []string{"Fecha", "Título", "Categoría", "Prioridad", "Estado", "Horas", "Etiquetas"},
	}
	total := decimal.Zero
	for _, e := range list {
		hours := "-"
		if e.HoursWorked != nil {
			total = total.Add(*e.HoursWorked)
			hours = e.HoursWorked.StringFixed(2)
		}
		t.Rows = append(t.Rows, []string{
			e.EntryDate.Format(dateLayout),
			e.Title,
			Label(e.Category),
			Label(e.Priority),
			Label(e.Status),
			hours,
			strings.Join(e.Tags, ", "),
		})
	}
	t.Summary = [][2]string{
		{"Total de entradas", strconv.Itoa(len(list))},
		{"Horas trabajadas", total.StringFixed(2)},
	}
	return uc.render(ctx, "journal", format, t)
}

func (uc *ExportUseCase) render(ctx context.Context, resource string, format Format, t Table) (*File, error) {
	r, ok := uc.renderers[format]
	if !ok || r == nil {
		return nil, fmt.Errorf("%w: formato de exportación %q", domain.ErrInvalidInput, format)
	}
	data, err := r.Render(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", resource, err)
	}
	return &File{
		Name:        FileName(resource, t.GeneratedAt, r.Extension()),
		ContentType: r.ContentType(),
		Data:        data,
	}, nil
}

func matrixTypeLabel(t string) string {
	if tpl, ok := matrix.TemplateFor(t); ok {
		return tpl.Name
	}
	return Label("personalizada")
}

func idOrDash(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func stringOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
