package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/testutil/memstore"
	"github.com/stretchr/testify/require"
)

// Usuarios sembrados por seedUsers. El id 1 es el administrador principal.
var (
	superAdmin = access.Subject{UserID: 1, Role: access.RoleSuperAdmin}
	admin      = access.Subject{UserID: 2, Role: access.RoleAdmin}
	ana        = access.Subject{UserID: 3, Role: access.RoleUsuario}
	beto       = access.Subject{UserID: 4, Role: access.RoleUsuario}
)

const bootstrapAdminID int64 = 1

// seedUsers crea super_admin(1), admin(2), ana(3) y beto(4).
func seedUsers(t *testing.T, s *memstore.Store) {
	t.Helper()
	now := time.Now()
	for _, u := range []struct{ email, role string }{
		{"root@empresa.local", access.RoleSuperAdmin},
		{"admin@empresa.local", access.RoleAdmin},
		{"ana@empresa.local", access.RoleUsuario},
		{"beto@empresa.local", access.RoleUsuario},
	} {
		require.NoError(t, s.Users().Create(context.Background(), &entity.User{
			Email:        u.email,
			PasswordHash: "-",
			Name:         u.email,
			Role:         u.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}))
	}
}

func newSeededStore(t *testing.T) *memstore.Store {
	t.Helper()
	s := memstore.New()
	seedUsers(t, s)
	return s
}

func str(s string) *string { return &s }

func i64(v int64) *int64 { return &v }
