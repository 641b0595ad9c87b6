package repository

import (
	"context"

	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
)

// DepartmentRepository puerto de persistencia para departamentos y sus administradores.
type DepartmentRepository interface {
	Create(ctx context.Context, d *entity.Department) error
	GetByID(ctx context.Context, id int64) (*entity.Department, error)
	Update(ctx context.Context, d *entity.Department) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Department, error)
	AssignAdmin(ctx context.Context, a *entity.AdminDepartment) error
	UnassignAdmin(ctx context.Context, departmentID, adminID int64) (bool, error)
	ListAdmins(ctx context.Context, departmentID int64) ([]*entity.AdminDepartment, error)
}
