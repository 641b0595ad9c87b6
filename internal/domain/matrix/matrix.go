// Package matrix contiene las plantillas de encabezados y las reglas de la grilla de las matrices de análisis.
package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// Tipos de matriz.
const (
	TypeSWOT       = "swot"
	TypeEisenhower = "eisenhower"
	TypeBCG        = "bcg"
	TypeRisk       = "risk"
	TypeDecision   = "decision"
	TypeCustom     = "custom"
)

// Límites de la grilla.
const (
	MinSize     = 1
	MaxSize     = 20
	DefaultSize = 3
)

// IsValidType valida el tipo de matriz.
func IsValidType(t string) bool {
	switch t {
	case TypeSWOT, TypeEisenhower, TypeBCG, TypeRisk, TypeDecision, TypeCustom:
		return true
	}
	return false
}

// ValidSize indica si n está dentro de los límites de filas/columnas.
func ValidSize(n int) bool {
	return n >= MinSize && n <= MaxSize
}

// Headers etiquetas de filas y columnas.
type Headers struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
}

// CellKey clave de una celda en data: "{fila}-{columna}", base 0.
func CellKey(row, col int) string {
	return strconv.Itoa(row) + "-" + strconv.Itoa(col)
}

// ParseCellKey descompone una clave de celda.
func ParseCellKey(key string) (row, col int, err error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("clave de celda inválida %q", key)
	}
	row, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("clave de celda inválida %q", key)
	}
	col, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("clave de celda inválida %q", key)
	}
	return row, col, nil
}

// NewGrid crea data con una cadena vacía por celda.
func NewGrid(rows, cols int) map[string]string {
	data := make(map[string]string, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			data[CellKey(r, c)] = ""
		}
	}
	return data
}

// Resize ajusta data al nuevo tamaño conservando las celdas que siguen dentro de la grilla.
func Resize(data map[string]string, rows, cols int) map[string]string {
	out := NewGrid(rows, cols)
	for k, v := range data {
		r, c, err := ParseCellKey(k)
		if err != nil || r >= rows || c >= cols {
			continue
		}
		out[k] = v
	}
	return out
}

// MergeCells aplica celdas sobre data. Falla si alguna clave cae fuera de la grilla.
func MergeCells(data, cells map[string]string, rows, cols int) (map[string]string, error) {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	for k, v := range cells {
		r, c, err := ParseCellKey(k)
		if err != nil {
			return nil, err
		}
		if r < 0 || c < 0 || r >= rows || c >= cols {
			return nil, fmt.Errorf("la celda %q está fuera de la grilla %dx%d", k, rows, cols)
		}
		out[k] = v
	}
	return out, nil
}

// ResizeHeaders ajusta las etiquetas al nuevo tamaño; las nuevas usan el nombre genérico.
func ResizeHeaders(h Headers, rows, cols int) Headers {
	return Headers{
		Rows:    resizeLabels(h.Rows, rows, "Fila"),
		Columns: resizeLabels(h.Columns, cols, "Columna"),
	}
}

func resizeLabels(labels []string, n int, prefix string) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if i < len(labels) {
			out[i] = labels[i]
			continue
		}
		out[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}
	return out
}

// ValidateHeaders exige que las etiquetas coincidan con el tamaño de la grilla.
func ValidateHeaders(h Headers, rows, cols int) error {
	if len(h.Rows) != rows || len(h.Columns) != cols {
		return fmt.Errorf("los encabezados deben tener %d filas y %d columnas", rows, cols)
	}
	return nil
}
