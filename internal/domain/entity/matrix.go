package entity

import (
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/matrix"
)

// Acciones registradas en MatrixHistory.
const (
	MatrixActionCreated = "created"
	MatrixActionUpdated = "updated"
	MatrixActionDeleted = "deleted"
)

// Matrix matriz de análisis. Data usa claves "{fila}-{columna}".
type Matrix struct {
	ID          int64
	Name        string
	Description *string
	MatrixType  string
	Rows        int
	Columns     int
	Data        map[string]string
	Headers     matrix.Headers
	UserID      *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Resource descriptor de acceso.
func (m *Matrix) Resource() access.Resource { return access.Owned(m.UserID) }

// Snapshot representación usada en el historial.
func (m *Matrix) Snapshot() map[string]any {
	return map[string]any{
		"name":        m.Name,
		"description": m.Description,
		"matrix_type": m.MatrixType,
		"rows":        m.Rows,
		"columns":     m.Columns,
		"data":        m.Data,
		"headers":     m.Headers,
	}
}

// MatrixHistory registro inmutable de cambios. Sobrevive al borrado de la matriz.
type MatrixHistory struct {
	ID        int64
	MatrixID  int64
	UserID    *int64
	Action    string
	Changes   map[string]any
	CreatedAt time.Time
}
