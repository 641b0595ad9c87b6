package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentUseCase_EscrituraSoloSuperAdmin(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewDepartmentUseCase(s, s)

	_, err := uc.Create(ctx, admin, dto.CreateDepartmentRequest{Name: "Sistemas"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	d, err := uc.Create(ctx, superAdmin, dto.CreateDepartmentRequest{Name: "  Sistemas "})
	require.NoError(t, err)
	assert.Equal(t, "Sistemas", d.Name)
	assert.True(t, d.IsActive)

	_, err = uc.Create(ctx, superAdmin, dto.CreateDepartmentRequest{Name: "Sistemas"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := uc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = uc.List(ctx, ana)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDepartmentUseCase_AsignacionDeAdministradores(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewDepartmentUseCase(s, s)
	d, err := uc.Create(ctx, superAdmin, dto.CreateDepartmentRequest{Name: "Soporte"})
	require.NoError(t, err)

	_, err = uc.AssignAdmin(ctx, superAdmin, d.ID, ana.UserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AssignAdmin(ctx, superAdmin, d.ID, 999)
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
	_, err = uc.AssignAdmin(ctx, superAdmin, 999, admin.UserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	a, err := uc.AssignAdmin(ctx, superAdmin, d.ID, admin.UserID)
	require.NoError(t, err)
	assert.Equal(t, admin.UserID, a.AdminID)
	_, err = uc.AssignAdmin(ctx, superAdmin, d.ID, admin.UserID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	admins, err := uc.ListAdmins(ctx, admin, d.ID)
	require.NoError(t, err)
	assert.Len(t, admins, 1)

	require.NoError(t, uc.UnassignAdmin(ctx, superAdmin, d.ID, admin.UserID))
	assert.ErrorIs(t, uc.UnassignAdmin(ctx, superAdmin, d.ID, admin.UserID), domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, superAdmin, d.ID))
	assert.ErrorIs(t, uc.Delete(ctx, superAdmin, d.ID), domain.ErrNotFound)
}
