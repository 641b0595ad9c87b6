package access

import "github.com/jhoicas/gestion-ti-api/internal/domain"

// UserOp operación de gestión de cuentas.
type UserOp string

const (
	UserView          UserOp = "view"
	UserUpdateProfile UserOp = "update_profile"
	UserResetPassword UserOp = "reset_password"
	UserChangeRole    UserOp = "change_role"
	UserToggleStatus  UserOp = "toggle_status"
	UserSuspend       UserOp = "suspend"
	UserUnsuspend     UserOp = "unsuspend"
	UserDelete        UserOp = "delete"
)

// Account cuenta objetivo de una operación de gestión.
type Account struct {
	UserID    int64
	Role      string
	Protected bool // super administrador inicial
}

// CanManageUser aplica la política de gestión de usuarios.
func CanManageUser(s Subject, op UserOp, target Account) bool {
	actor := NormalizeRole(s.Role)
	targetRole := NormalizeRole(target.Role)
	self := s.UserID == target.UserID
	adminOverUser := actor == RoleAdmin && targetRole == RoleUsuario

	switch op {
	case UserView:
		return self || HasAtLeast(actor, RoleAdmin)
	case UserUpdateProfile, UserResetPassword:
		return self || actor == RoleSuperAdmin || adminOverUser
	case UserChangeRole:
		return actor == RoleSuperAdmin && !self && !target.Protected
	case UserToggleStatus, UserSuspend:
		return !self && !target.Protected && (actor == RoleSuperAdmin || adminOverUser)
	case UserUnsuspend:
		return actor == RoleSuperAdmin && !self
	case UserDelete:
		return actor == RoleSuperAdmin && !self && !target.Protected
	default:
		return false
	}
}

// AuthorizeUser devuelve domain.ErrProtectedUser cuando la operación alteraría la cuenta
// protegida, domain.ErrForbidden si la política la niega, o nil.
func AuthorizeUser(s Subject, op UserOp, target Account) error {
	if CanManageUser(s, op, target) {
		return nil
	}
	if target.Protected {
		switch op {
		case UserChangeRole, UserToggleStatus, UserSuspend, UserDelete:
			return domain.ErrProtectedUser
		}
	}
	return domain.ErrForbidden
}

// CanCreateUser indica si el llamador puede crear una cuenta con el rol indicado.
func CanCreateUser(s Subject, role string) bool {
	switch NormalizeRole(s.Role) {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return NormalizeRole(role) == RoleUsuario
	default:
		return false
	}
}
