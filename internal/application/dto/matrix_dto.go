package dto

import (
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/matrix"
)

// CreateMatrixRequest entrada para crear una matriz.
type CreateMatrixRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
	MatrixType  string  `json:"matrix_type" validate:"omitempty,oneof=swot eisenhower bcg risk decision custom"`
	Rows        int     `json:"rows" validate:"omitempty,min=1,max=20"`
	Columns     int     `json:"columns" validate:"omitempty,min=1,max=20"`
}

// UpdateMatrixRequest actualización parcial. Data fusiona celdas sobre la grilla actual.
type UpdateMatrixRequest struct {
	Name        Optional[string]            `json:"name"`
	Description Optional[string]            `json:"description"`
	Rows        Optional[int]               `json:"rows"`
	Columns     Optional[int]               `json:"columns"`
	Data        Optional[map[string]string] `json:"data"`
	Headers     Optional[matrix.Headers]    `json:"headers"`
}

// MatrixResponse salida de una matriz.
type MatrixResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	MatrixType  string            `json:"matrix_type"`
	Rows        int               `json:"rows"`
	Columns     int               `json:"columns"`
	Data        map[string]string `json:"data"`
	Headers     matrix.Headers    `json:"headers"`
	UserID      *int64            `json:"user_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// MatrixHistoryResponse entrada del historial.
type MatrixHistoryResponse struct {
	ID        int64          `json:"id"`
	MatrixID  int64          `json:"matrix_id"`
	UserID    *int64         `json:"user_id"`
	Action    string         `json:"action"`
	Changes   map[string]any `json:"changes"`
	CreatedAt time.Time      `json:"created_at"`
}

// MatrixTemplateResponse plantilla disponible.
type MatrixTemplateResponse struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Rows        int            `json:"rows"`
	Columns     int            `json:"columns"`
	Headers     matrix.Headers `json:"headers"`
}
