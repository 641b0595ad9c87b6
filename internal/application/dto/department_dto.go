package dto

import "time"

// CreateDepartmentRequest entrada para crear un departamento.
type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}

// UpdateDepartmentRequest actualización parcial.
type UpdateDepartmentRequest struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	IsActive    Optional[bool]   `json:"is_active"`
}

// AssignAdminRequest asigna un administrador al departamento.
type AssignAdminRequest struct {
	AdminID int64 `json:"admin_id" validate:"required,min=1"`
}

// DepartmentResponse salida de un departamento.
type DepartmentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminDepartmentResponse salida de una asignación.
type AdminDepartmentResponse struct {
	ID           int64     `json:"id"`
	AdminID      int64     `json:"admin_id"`
	DepartmentID int64     `json:"department_id"`
	AssignedBy   *int64    `json:"assigned_by"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
