package matrix

// Template plantilla de encabezados para un tipo de matriz.
type Template struct {
	Type        string
	Name        string
	Description string
	Headers     Headers
}

// Rows número de filas que impone la plantilla.
func (t Template) Rows() int { return len(t.Headers.Rows) }

// Columns número de columnas que impone la plantilla.
func (t Template) Columns() int { return len(t.Headers.Columns) }

var templates = []Template{
	{
		Type:        TypeSWOT,
		Name:        "Análisis FODA",
		Description: "Fortalezas, oportunidades, debilidades y amenazas",
		Headers: Headers{
			Rows:    []string{"Factores Internos", "Factores Externos"},
			Columns: []string{"Positivos", "Negativos"},
		},
	},
	{
		Type:        TypeEisenhower,
		Name:        "Matriz de Eisenhower",
		Description: "Priorización por urgencia e importancia",
		Headers: Headers{
			Rows:    []string{"Importante", "No Importante"},
			Columns: []string{"Urgente", "No Urgente"},
		},
	},
	{
		Type:        TypeBCG,
		Name:        "Matriz BCG",
		Description: "Crecimiento del mercado frente a participación",
		Headers: Headers{
			Rows:    []string{"Alto Crecimiento", "Bajo Crecimiento"},
			Columns: []string{"Alta Participación", "Baja Participación"},
		},
	},
	{
		Type:        TypeRisk,
		Name:        "Matriz de Riesgos",
		Description: "Probabilidad frente a impacto",
		Headers: Headers{
			Rows:    []string{"Probabilidad Alta", "Probabilidad Media", "Probabilidad Baja"},
			Columns: []string{"Impacto Bajo", "Impacto Medio", "Impacto Alto"},
		},
	},
	{
		Type:        TypeDecision,
		Name:        "Matriz de Decisión",
		Description: "Comparación de opciones por criterio",
		Headers: Headers{
			Rows:    []string{"Opción 1", "Opción 2", "Opción 3"},
			Columns: []string{"Costo", "Beneficio", "Riesgo", "Puntuación"},
		},
	},
}

// Templates devuelve las plantillas predefinidas (sin custom).
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateFor busca la plantilla de un tipo. custom y tipos desconocidos no tienen plantilla.
func TemplateFor(matrixType string) (Template, bool) {
	for _, t := range templates {
		if t.Type == matrixType {
			return t, true
		}
	}
	return Template{}, false
}

// BuildHeaders devuelve los encabezados de la plantilla del tipo o etiquetas genéricas
// "Fila N" / "Columna N" cuando no hay plantilla.
func BuildHeaders(matrixType string, rows, cols int) Headers {
	if t, ok := TemplateFor(matrixType); ok {
		return Headers{
			Rows:    append([]string(nil), t.Headers.Rows...),
			Columns: append([]string(nil), t.Headers.Columns...),
		}
	}
	return ResizeHeaders(Headers{}, rows, cols)
}

// Dimensions devuelve el tamaño efectivo: el de la plantilla si existe, si no el solicitado.
func Dimensions(matrixType string, rows, cols int) (int, int) {
	if t, ok := TemplateFor(matrixType); ok {
		return t.Rows(), t.Columns()
	}
	return rows, cols
}
