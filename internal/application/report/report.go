// Package report define el puerto de renderizado de reportes tabulares y los casos de uso
// de exportación.
package report

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format formato de salida de una exportación.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// Table contenido de un reporte, independiente del formato.
type Table struct {
	Title       string
	GeneratedAt time.Time
	Summary     [][2]string // pares etiqueta/valor sobre la tabla
	Columns     []string
	Rows        [][]string
}

// Renderer convierte una Table en un documento.
type Renderer interface {
	Render(ctx context.Context, t Table) ([]byte, error)
	ContentType() string
	Extension() string
}

// File documento generado listo para descargar.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileName arma "<recurso>_export_<YYYYMMDD_HHMMSS>.<ext>".
func FileName(resource string, at time.Time, ext string) string {
	return resource + "_export_" + at.Format("20060102_150405") + "." + ext
}

var labels = map[string]string{
	"open":        "abierto",
	"in_progress": "en progreso",
	"resolved":    "resuelto",
	"closed":      "cerrado",
	"todo":        "por hacer",
	"review":      "en revisión",
	"done":        "hecho",
	"low":         "baja",
	"medium":      "media",
	"high":        "alta",
	"urgent":      "urgente",
	"work":        "trabajo",
	"meeting":     "reunión",
	"maintenance": "mantenimiento",
	"issue":       "incidencia",
	"achievement": "logro",
	"personal":    "personal",
	"note":        "nota",
	"pending":     "pendiente",
	"completed":   "completado",
	"cancelled":   "cancelado",
}

// Label etiqueta legible en español con mayúscula inicial por palabra ("in_progress" -> "En Progreso").
func Label(code string) string {
	s, ok := labels[code]
	if !ok {
		s = strings.ReplaceAll(code, "_", " ")
	}
	// cases.Caser guarda estado: uno por llamada.
	return cases.Title(language.Spanish).String(s)
}
