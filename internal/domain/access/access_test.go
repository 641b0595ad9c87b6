package access_test

import (
	"testing"

	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/stretchr/testify/assert"
)

func id(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de roles
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeRole_GrafiasHeredadas(t *testing.T) {
	cases := map[string]string{
		"super_admin":         access.RoleSuperAdmin,
		"ADMIN":               access.RoleAdmin,
		"admin-rh-financiero": access.RoleAdmin,
		"user":                access.RoleUsuario,
		"viewer":              access.RoleUsuario,
		"":                    access.RoleUsuario,
		"root":                access.RoleUsuario,
	}
	for in, want := range cases {
		assert.Equal(t, want, access.NormalizeRole(in), "rol %q", in)
	}
	assert.True(t, access.IsKnownRole("viewer"))
	assert.False(t, access.IsKnownRole("root"))
}

func TestHasAtLeast(t *testing.T) {
	assert.True(t, access.HasAtLeast(access.RoleSuperAdmin, access.RoleAdmin))
	assert.True(t, access.HasAtLeast(access.RoleAdmin, access.RoleAdmin))
	assert.False(t, access.HasAtLeast(access.RoleUsuario, access.RoleAdmin))
	assert.False(t, access.HasAtLeast("desconocido", access.RoleAdmin))
}

// ──────────────────────────────────────────────────────────────────────────────
// Evaluación sobre recursos con dueño
// ──────────────────────────────────────────────────────────────────────────────

func TestCan_SuperAdminSinRestricciones(t *testing.T) {
	s := access.Subject{UserID: 1, Role: access.RoleSuperAdmin}
	r := access.Owned(id(99))
	for _, a := range []access.Action{access.ActionView, access.ActionEdit, access.ActionDelete} {
		assert.True(t, access.Can(s, a, r))
	}
	assert.True(t, access.Can(s, access.ActionDelete, access.Owned(nil)))
}

func TestCan_AdminVeTodoPeroEditaSoloLoPropio(t *testing.T) {
	s := access.Subject{UserID: 2, Role: access.RoleAdmin}

	assert.True(t, access.Can(s, access.ActionView, access.Owned(id(99))))
	assert.False(t, access.Can(s, access.ActionEdit, access.Owned(id(99))))
	assert.False(t, access.Can(s, access.ActionDelete, access.Owned(id(99))))
	assert.True(t, access.Can(s, access.ActionEdit, access.Owned(id(2))))
	assert.True(t, access.Can(s, access.ActionEdit, access.Assignable(id(99), id(2))))
}

func TestCan_UsuarioSoloPropioOAsignado(t *testing.T) {
	s := access.Subject{UserID: 3, Role: access.RoleUsuario}

	assert.True(t, access.Can(s, access.ActionView, access.Owned(id(3))))
	assert.False(t, access.Can(s, access.ActionView, access.Owned(id(4))))
	assert.False(t, access.Can(s, access.ActionView, access.Owned(nil)))
	assert.True(t, access.Can(s, access.ActionEdit, access.Assignable(id(4), id(3))))
	assert.False(t, access.Can(s, access.ActionDelete, access.Assignable(id(4), id(5))))
}

func TestCan_RolDesconocidoEsUsuario(t *testing.T) {
	s := access.Subject{UserID: 3, Role: "gerente"}
	assert.False(t, access.Can(s, access.ActionView, access.Owned(id(4))))
	assert.True(t, access.Can(s, access.ActionView, access.Owned(id(3))))
}

func TestAuthorize_DevuelveErrForbidden(t *testing.T) {
	err := access.Authorize(access.Subject{UserID: 3}, access.ActionEdit, access.Owned(id(4)))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NoError(t, access.Authorize(access.Subject{UserID: 4}, access.ActionEdit, access.Owned(id(4))))
}

func TestListScope(t *testing.T) {
	admin := access.ListScope(access.Subject{UserID: 2, Role: access.RoleAdmin}, false)
	assert.True(t, admin.All)

	user := access.ListScope(access.Subject{UserID: 3, Role: access.RoleUsuario}, true)
	assert.False(t, user.All)
	assert.True(t, user.Allows(access.Assignable(id(9), id(3))))
	assert.True(t, user.Allows(access.Owned(id(3))))
	assert.False(t, user.Allows(access.Owned(id(9))))

	notAssignable := access.ListScope(access.Subject{UserID: 3}, false)
	assert.False(t, notAssignable.Allows(access.Assignable(id(9), id(3))))
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de gestión de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestCanManageUser_AdminSoloSobreUsuarios(t *testing.T) {
	admin := access.Subject{UserID: 2, Role: access.RoleAdmin}
	usuario := access.Account{UserID: 5, Role: access.RoleUsuario}
	otroAdmin := access.Account{UserID: 6, Role: access.RoleAdmin}

	assert.True(t, access.CanManageUser(admin, access.UserSuspend, usuario))
	assert.True(t, access.CanManageUser(admin, access.UserUpdateProfile, usuario))
	assert.False(t, access.CanManageUser(admin, access.UserSuspend, otroAdmin))
	assert.False(t, access.CanManageUser(admin, access.UserChangeRole, usuario))
	assert.False(t, access.CanManageUser(admin, access.UserDelete, usuario))
	assert.False(t, access.CanManageUser(admin, access.UserUnsuspend, usuario))
}

func TestCanManageUser_PropioPerfil(t *testing.T) {
	u := access.Subject{UserID: 5, Role: access.RoleUsuario}
	self := access.Account{UserID: 5, Role: access.RoleUsuario}

	assert.True(t, access.CanManageUser(u, access.UserView, self))
	assert.True(t, access.CanManageUser(u, access.UserUpdateProfile, self))
	assert.True(t, access.CanManageUser(u, access.UserResetPassword, self))
	assert.False(t, access.CanManageUser(u, access.UserToggleStatus, self))
	assert.False(t, access.CanManageUser(u, access.UserView, access.Account{UserID: 6}))
}

func TestAuthorizeUser_AdministradorPrincipalProtegido(t *testing.T) {
	super := access.Subject{UserID: 10, Role: access.RoleSuperAdmin}
	bootstrap := access.Account{UserID: 1, Role: access.RoleSuperAdmin, Protected: true}

	assert.ErrorIs(t, access.AuthorizeUser(super, access.UserDelete, bootstrap), domain.ErrProtectedUser)
	assert.ErrorIs(t, access.AuthorizeUser(super, access.UserSuspend, bootstrap), domain.ErrProtectedUser)
	assert.ErrorIs(t, access.AuthorizeUser(super, access.UserChangeRole, bootstrap), domain.ErrProtectedUser)
	assert.NoError(t, access.AuthorizeUser(super, access.UserUpdateProfile, bootstrap))

	self := access.Subject{UserID: 1, Role: access.RoleSuperAdmin}
	assert.ErrorIs(t, access.AuthorizeUser(self, access.UserDelete, bootstrap), domain.ErrProtectedUser)
}

func TestCanCreateUser(t *testing.T) {
	assert.True(t, access.CanCreateUser(access.Subject{Role: access.RoleSuperAdmin}, access.RoleAdmin))
	assert.True(t, access.CanCreateUser(access.Subject{Role: access.RoleAdmin}, "user"))
	assert.False(t, access.CanCreateUser(access.Subject{Role: access.RoleAdmin}, access.RoleAdmin))
	assert.False(t, access.CanCreateUser(access.Subject{Role: access.RoleUsuario}, access.RoleUsuario))
}
