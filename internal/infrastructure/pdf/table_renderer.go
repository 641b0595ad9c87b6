// Package pdf implementa el renderer PDF de reportes tabulares con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: pares etiqueta / valor                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por campo, filas alternadas              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda del sistema                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/gestion-ti-api/internal/application/report"
)

const gridSize = 12 // columnas de la grilla de Maroto

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ report.Renderer = (*TableRenderer)(nil)

// TableRenderer implementa report.Renderer usando Maroto v2.
type TableRenderer struct {
	author string
}

// NewTableRenderer construye el renderer. author se escribe en los metadatos del PDF.
func NewTableRenderer(author string) *TableRenderer { return &TableRenderer{author: author} }

// ContentType MIME del documento.
func (r *TableRenderer) ContentType() string { return "application/pdf" }

// Extension extensión del archivo.
func (r *TableRenderer) Extension() string { return "pdf" }

// Render genera el PDF y devuelve sus bytes. Con más de 6 columnas usa orientación horizontal.
func (r *TableRenderer) Render(_ context.Context, t report.Table) ([]byte, error) {
	if len(t.Columns) == 0 || len(t.Columns) > gridSize {
		return nil, fmt.Errorf("pdf: el reporte debe tener entre 1 y %d columnas", gridSize)
	}
	orient := orientation.Vertical
	if len(t.Columns) > 6 {
		orient = orientation.Horizontal
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orient).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(t.Title, true).
		WithAuthor(r.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if len(t.Summary) > 0 {
		m.AddRows(summaryRows(t.Summary)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	widths := columnWidths(len(t.Columns))
	m.AddRows(tableHeaderRow(t.Columns, widths))
	m.AddRows(tableRows(t.Rows, widths)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(t.Rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(t report.Table) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(t.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(t.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 6, Color: colorGray,
			}),
		),
	)
}

// summaryRows: un renglón por par etiqueta/valor.
func summaryRows(summary [][2]string) []core.Row {
	rows := make([]core.Row, 0, len(summary))
	for _, kv := range summary {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(kv[0]+":", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			})),
			col.New(8).Add(text.New(kv[1], props.Text{Size: 8, Top: 1, Color: colorGray})),
		))
	}
	return rows
}

// tableHeaderRow: cabecera con fondo del color primario.
func tableHeaderRow(columns []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for i, label := range columns {
		cols = append(cols, col.New(widths[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro, con fondo alternado.
func tableRows(data [][]string, widths []int) []core.Row {
	result := make([]core.Row, 0, len(data))
	for i, values := range data {
		cols := make([]core.Col, 0, len(widths))
		for j := range widths {
			v := ""
			if j < len(values) {
				v = values[j]
			}
			cols = append(cols, col.New(widths[j]).Add(text.New(v, props.Text{
				Size: 7.5, Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(7).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

// footerRow: cantidad de registros y leyenda.
func footerRow(n int) core.Row {
	return row.New(8).Add(col.New(gridSize).Add(
		text.New(fmt.Sprintf("%d registro(s). Documento generado por el sistema de gestión TI.", n), props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte las 12 columnas de la grilla; el resto va a las primeras.
func columnWidths(n int) []int {
	widths := make([]int, n)
	base, rest := gridSize/n, gridSize%n
	for i := range widths {
		widths[i] = base
		if i < rest {
			widths[i]++
		}
	}
	return widths
}
