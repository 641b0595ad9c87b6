package entity

import "time"

// Department área de la organización.
type Department struct {
	ID          int64
	Name        string
	Description *string
	IsActive    bool
	CreatedBy   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AdminDepartment asignación de un administrador a un departamento.
// Es solo informativa: el control de acceso no la consulta.
type AdminDepartment struct {
	ID           int64
	AdminID      int64
	DepartmentID int64
	AssignedBy   *int64
	IsActive     bool
	CreatedAt    time.Time
}
