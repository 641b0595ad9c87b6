// Package access evalúa permisos sobre recursos con dueño. Es puro: no consulta almacenamiento.
package access

import "github.com/jhoicas/gestion-ti-api/internal/domain"

// Action operación solicitada sobre un recurso.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Subject identidad del llamador.
type Subject struct {
	UserID int64
	Role   string
}

// Resource relación de un registro con usuarios. AssigneeID solo aplica a tipos asignables.
type Resource struct {
	OwnerID    *int64
	AssigneeID *int64
}

// Owned construye el descriptor de un recurso no asignable.
func Owned(ownerID *int64) Resource {
	return Resource{OwnerID: ownerID}
}

// Assignable construye el descriptor de un recurso con responsable (tickets, órdenes de servicio).
func Assignable(ownerID, assigneeID *int64) Resource {
	return Resource{OwnerID: ownerID, AssigneeID: assigneeID}
}

func (r Resource) relatedTo(userID int64) bool {
	if r.OwnerID != nil && *r.OwnerID == userID {
		return true
	}
	return r.AssigneeID != nil && *r.AssigneeID == userID
}

// Can decide si el llamador puede ejecutar la acción sobre el recurso.
func Can(s Subject, a Action, r Resource) bool {
	switch NormalizeRole(s.Role) {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		if a == ActionView {
			return true
		}
		return r.relatedTo(s.UserID)
	default:
		return r.relatedTo(s.UserID)
	}
}

// Authorize es Can expresado como error: nil o domain.ErrForbidden.
func Authorize(s Subject, a Action, r Resource) error {
	if Can(s, a, r) {
		return nil
	}
	return domain.ErrForbidden
}

// Scope filtro de listado derivado del llamador. All=true significa sin restricción.
type Scope struct {
	All             bool
	UserID          int64
	IncludeAssigned bool
}

// ListScope calcula qué filas puede ver el llamador en un listado.
func ListScope(s Subject, assignable bool) Scope {
	if HasAtLeast(s.Role, RoleAdmin) {
		return Scope{All: true}
	}
	return Scope{UserID: s.UserID, IncludeAssigned: assignable}
}

// Allows aplica el scope en memoria; debe coincidir con la traducción SQL del repositorio.
func (sc Scope) Allows(r Resource) bool {
	if sc.All {
		return true
	}
	if r.OwnerID != nil && *r.OwnerID == sc.UserID {
		return true
	}
	return sc.IncludeAssigned && r.AssigneeID != nil && *r.AssigneeID == sc.UserID
}
