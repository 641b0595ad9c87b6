package access

import "strings"

// Roles canónicos. La jerarquía es super_admin ⊇ admin ⊇ usuario.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleUsuario    = "usuario"
)

// Grafías heredadas que se aceptan en la entrada y se normalizan.
var legacyRoles = map[string]string{
	"admin-rh-financiero": RoleAdmin,
	"user":                RoleUsuario,
	"viewer":              RoleUsuario,
}

// NormalizeRole devuelve el rol canónico. Vacío o desconocido equivale a usuario.
func NormalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUsuario:
		return r
	}
	if canonical, ok := legacyRoles[r]; ok {
		return canonical
	}
	return RoleUsuario
}

// IsKnownRole indica si el valor es un rol canónico o una grafía heredada reconocida.
func IsKnownRole(role string) bool {
	r := strings.ToLower(strings.TrimSpace(role))
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUsuario:
		return true
	}
	_, ok := legacyRoles[r]
	return ok
}

func rank(role string) int {
	switch NormalizeRole(role) {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	default:
		return 1
	}
}

// HasAtLeast indica si role está en o por encima de min en la jerarquía.
func HasAtLeast(role, min string) bool {
	return rank(role) >= rank(min)
}

// RoleInfo entrada del catálogo de roles.
type RoleInfo struct {
	Code        string
	Name        string
	Description string
	Level       int
}

// Catalog devuelve los roles canónicos de mayor a menor privilegio.
func Catalog() []RoleInfo {
	return []RoleInfo{
		{Code: RoleSuperAdmin, Name: "Super Administrador", Description: "Acceso total al sistema, gestión de roles y respaldos", Level: 3},
		{Code: RoleAdmin, Name: "Administrador", Description: "Ve todos los registros y gestiona usuarios estándar", Level: 2},
		{Code: RoleUsuario, Name: "Usuario", Description: "Gestiona sus propios registros y los asignados", Level: 1},
	}
}
