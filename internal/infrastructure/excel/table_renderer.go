// Package excel implementa el renderer XLSX de reportes tabulares con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/report"
)

const sheetName = "Reporte"

var _ report.Renderer = (*TableRenderer)(nil)

// TableRenderer implementa report.Renderer: una hoja con título, resumen y tabla con autofiltro.
type TableRenderer struct{}

// NewTableRenderer construye el renderer.
func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

// ContentType MIME del libro.
func (r *TableRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension extensión del archivo.
func (r *TableRenderer) Extension() string { return "xlsx" }

// Render genera el libro y devuelve sus bytes.
//
//	Fila 1      título
//	Fila 2      fecha de generación
//	Filas 4..   resumen (etiqueta | valor)
//	Luego       cabecera con estilo + filas de datos, con autofiltro
func (r *TableRenderer) Render(_ context.Context, t report.Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("excel: el reporte no tiene columnas")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: "00467F"}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo título: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo cabecera: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo resumen: %w", err)
	}

	if err := setRow(f, 1, []string{t.Title}); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	if err := setRow(f, 2, []string{"Generado: " + t.GeneratedAt.Format("02/01/2006 15:04")}); err != nil {
		return nil, err
	}

	rowIdx := 4
	for _, kv := range t.Summary {
		if err := setRow(f, rowIdx, []string{kv[0], kv[1]}); err != nil {
			return nil, err
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetCellStyle(sheetName, cell, cell, labelStyle); err != nil {
			return nil, fmt.Errorf("excel: %w", err)
		}
		rowIdx++
	}
	if len(t.Summary) > 0 {
		rowIdx++
	}

	headerRow := rowIdx
	if err := setRow(f, headerRow, t.Columns); err != nil {
		return nil, err
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(t.Columns), headerRow)
	if err := f.SetCellStyle(sheetName, first, last, headerStyle); err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	for i, values := range t.Rows {
		if err := setRow(f, headerRow+1+i, values); err != nil {
			return nil, err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(t.Columns))
	if err := f.SetColWidth(sheetName, "A", lastCol, 20); err != nil {
		return nil, fmt.Errorf("excel: ancho de columnas: %w", err)
	}
	end, _ := excelize.CoordinatesToCellName(len(t.Columns), headerRow+len(t.Rows))
	if err := f.AutoFilter(sheetName, first+":"+end, nil); err != nil {
		return nil, fmt.Errorf("excel: autofiltro: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("excel: escribir %s: %w", cell, err)
		}
	}
	return nil
}
