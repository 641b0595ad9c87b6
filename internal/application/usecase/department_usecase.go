package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

// DepartmentUseCase departamentos y asignación informativa de administradores.
// Lectura para administradores; escritura solo super_admin.
type DepartmentUseCase struct {
	store repository.Store
	tx    TxRunner
	now   func() time.Time
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(store repository.Store, tx TxRunner) *DepartmentUseCase {
	return &DepartmentUseCase{store: store, tx: tx, now: time.Now}
}

// List departamentos ordenados por nombre.
func (uc *DepartmentUseCase) List(ctx context.Context, caller access.Subject) ([]dto.DepartmentResponse, error) {
	if !access.HasAtLeast(caller.Role, access.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.store.Departments().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDepartmentResponse(d))
	}
	return out, nil
}

// Create crea un departamento.
func (uc *DepartmentUseCase) Create(ctx context.Context, caller access.Subject, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name es obligatorio")
	}
	now := uc.now()
	d := &entity.Department{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    true,
		CreatedBy:   int64Ptr(caller.UserID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tx.Run(ctx, func(s repository.Store) error {
		return s.Departments().Create(ctx, d)
	}); err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(d)
	return &resp, nil
}

// Update aplica un parche parcial.
func (uc *DepartmentUseCase) Update(ctx context.Context, caller access.Subject, id int64, in dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	if err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	if in.IsActive.Set && in.IsActive.Null {
		return nil, invalid("is_active no puede ser nulo")
	}
	var out *entity.Department
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		d, err := s.Departments().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return notFound("departamento", id)
		}
		if in.Name.HasValue() {
			d.Name = strings.TrimSpace(in.Name.Value)
		}
		applyNullable(&d.Description, in.Description)
		if in.IsActive.HasValue() {
			d.IsActive = in.IsActive.Value
		}
		d.UpdatedAt = uc.now()
		if err := s.Departments().Update(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(out)
	return &resp, nil
}

// Delete elimina un departamento y sus asignaciones.
func (uc *DepartmentUseCase) Delete(ctx context.Context, caller access.Subject, id int64) error {
	if err := requireSuperAdmin(caller); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(s repository.Store) error {
		d, err := s.Departments().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return notFound("departamento", id)
		}
		return s.Departments().Delete(ctx, id)
	})
}

// ListAdmins administradores asignados al departamento.
func (uc *DepartmentUseCase) ListAdmins(ctx context.Context, caller access.Subject, departmentID int64) ([]dto.AdminDepartmentResponse, error) {
	if !access.HasAtLeast(caller.Role, access.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	d, err := uc.store.Departments().GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFound("departamento", departmentID)
	}
	list, err := uc.store.Departments().ListAdmins(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdminDepartmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAdminDepartmentResponse(a))
	}
	return out, nil
}

// AssignAdmin asigna un usuario con rol admin al departamento.
func (uc *DepartmentUseCase) AssignAdmin(ctx context.Context, caller access.Subject, departmentID, adminID int64) (*dto.AdminDepartmentResponse, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	a := &entity.AdminDepartment{
		AdminID:      adminID,
		DepartmentID: departmentID,
		AssignedBy:   int64Ptr(caller.UserID),
		IsActive:     true,
		CreatedAt:    uc.now(),
	}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		d, err := s.Departments().GetByID(ctx, departmentID)
		if err != nil {
			return err
		}
		if d == nil {
			return notFound("departamento", departmentID)
		}
		u, err := s.Users().GetByID(ctx, adminID)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("%w: usuario %d", domain.ErrReferenceNotFound, adminID)
		}
		if access.NormalizeRole(u.Role) != access.RoleAdmin {
			return invalid("el usuario %d no tiene rol admin", adminID)
		}
		return s.Departments().AssignAdmin(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	resp := toAdminDepartmentResponse(a)
	return &resp, nil
}

// UnassignAdmin retira la asignación.
func (uc *DepartmentUseCase) UnassignAdmin(ctx context.Context, caller access.Subject, departmentID, adminID int64) error {
	if err := requireSuperAdmin(caller); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(s repository.Store) error {
		ok, err := s.Departments().UnassignAdmin(ctx, departmentID, adminID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: asignación %d/%d", domain.ErrNotFound, departmentID, adminID)
		}
		return nil
	})
}

func requireSuperAdmin(caller access.Subject) error {
	if access.NormalizeRole(caller.Role) != access.RoleSuperAdmin {
		return fmt.Errorf("%w: requiere super_admin", domain.ErrForbidden)
	}
	return nil
}

func toDepartmentResponse(d *entity.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toAdminDepartmentResponse(a *entity.AdminDepartment) dto.AdminDepartmentResponse {
	return dto.AdminDepartmentResponse{
		ID:           a.ID,
		AdminID:      a.AdminID,
		DepartmentID: a.DepartmentID,
		AssignedBy:   a.AssignedBy,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
}
