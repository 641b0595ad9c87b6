package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo implementación de DepartmentRepository.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el repositorio de departamentos.
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

func scanDepartment(row rowScanner) (*entity.Department, error) {
	var d entity.Department
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.IsActive, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserta el departamento. Nombre duplicado -> domain.ErrConflict.
func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	query := `
		INSERT INTO departments (name, description, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, d.Name, d.Description, d.IsActive, d.CreatedBy, d.CreatedAt, d.UpdatedAt).Scan(&d.ID); err != nil {
		return wrapWriteErr("insert department", err)
	}
	return nil
}

// GetByID obtiene un departamento; (nil, nil) si no existe.
func (r *DepartmentRepo) GetByID(ctx context.Context, id int64) (*entity.Department, error) {
	d, err := scanDepartment(r.q.QueryRow(ctx, `
		SELECT id, name, description, is_active, created_by, created_at, updated_at
		FROM departments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return d, nil
}

// Update escribe la fila completa.
func (r *DepartmentRepo) Update(ctx context.Context, d *entity.Department) error {
	if _, err := r.q.Exec(ctx, `
		UPDATE departments SET name = $2, description = $3, is_active = $4, updated_at = $5 WHERE id = $1`,
		d.ID, d.Name, d.Description, d.IsActive, d.UpdatedAt); err != nil {
		return wrapWriteErr("update department", err)
	}
	return nil
}

// Delete elimina un departamento y sus asignaciones.
func (r *DepartmentRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}

// List todos los departamentos por nombre.
func (r *DepartmentRepo) List(ctx context.Context) ([]*entity.Department, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, is_active, created_by, created_at, updated_at
		FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// AssignAdmin crea la asignación; si ya existe -> domain.ErrConflict.
func (r *DepartmentRepo) AssignAdmin(ctx context.Context, a *entity.AdminDepartment) error {
	query := `
		INSERT INTO admin_departments (admin_id, department_id, assigned_by, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, a.AdminID, a.DepartmentID, a.AssignedBy, a.IsActive, a.CreatedAt).Scan(&a.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("assign admin: %w", domain.ErrConflict)
		}
		return wrapWriteErr("assign admin", err)
	}
	return nil
}

// UnassignAdmin elimina la asignación; false si no existía.
func (r *DepartmentRepo) UnassignAdmin(ctx context.Context, departmentID, adminID int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM admin_departments WHERE department_id = $1 AND admin_id = $2`, departmentID, adminID)
	if err != nil {
		return false, fmt.Errorf("unassign admin: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListAdmins asignaciones de un departamento.
func (r *DepartmentRepo) ListAdmins(ctx context.Context, departmentID int64) ([]*entity.AdminDepartment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, admin_id, department_id, assigned_by, is_active, created_at
		FROM admin_departments WHERE department_id = $1 ORDER BY id`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list department admins: %w", err)
	}
	defer rows.Close()
	var list []*entity.AdminDepartment
	for rows.Next() {
		var a entity.AdminDepartment
		if err := rows.Scan(&a.ID, &a.AdminID, &a.DepartmentID, &a.AssignedBy, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department admin: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
