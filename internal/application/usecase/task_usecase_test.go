package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskUseCase_CreateAplicaValoresPorDefecto(t *testing.T) {
	s := newSeededStore(t)
	uc := usecase.NewTaskUseCase(s, s)

	task, err := uc.Create(context.Background(), ana, dto.CreateTaskRequest{Title: "Cambiar toner"})
	require.NoError(t, err)
	assert.Equal(t, "todo", task.Status)
	assert.Equal(t, "medium", task.Priority)
	require.NotNil(t, task.UserID)
	assert.Equal(t, ana.UserID, *task.UserID)
	assert.Nil(t, task.Description)
}

func TestTaskUseCase_ListUsuarioVeSoloLoPropio(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewTaskUseCase(s, s)

	_, err := uc.Create(ctx, ana, dto.CreateTaskRequest{Title: "de ana"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, beto, dto.CreateTaskRequest{Title: "de beto"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateTaskRequest{Title: "del admin"})
	require.NoError(t, err)

	list, err := uc.List(ctx, ana, repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "de ana", list[0].Title)

	all, err := uc.List(ctx, admin, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTaskUseCase_ListVacioDevuelveSliceNoNil(t *testing.T) {
	s := newSeededStore(t)
	list, err := usecase.NewTaskUseCase(s, s).List(context.Background(), ana, repository.TaskFilter{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTaskUseCase_ListRechazaFiltroInvalido(t *testing.T) {
	s := newSeededStore(t)
	_, err := usecase.NewTaskUseCase(s, s).List(context.Background(), ana, repository.TaskFilter{Status: "archivada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaskUseCase_UpdateParcialConservaLosDemasCampos(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewTaskUseCase(s, s)

	task, err := uc.Create(ctx, ana, dto.CreateTaskRequest{
		Title:       "Revisar backups",
		Description: str("servidor principal"),
		Priority:    "high",
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, ana, task.ID, dto.UpdateTaskRequest{Status: dto.Some("done")})
	require.NoError(t, err)
	assert.Equal(t, "done", updated.Status)
	assert.Equal(t, "Revisar backups", updated.Title)
	assert.Equal(t, "high", updated.Priority)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "servidor principal", *updated.Description)

	cleared, err := uc.Update(ctx, ana, task.ID, dto.UpdateTaskRequest{Description: dto.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
	assert.Equal(t, "done", cleared.Status)
}

func TestTaskUseCase_UpdateRechazaTituloVacio(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewTaskUseCase(s, s)
	task, err := uc.Create(ctx, ana, dto.CreateTaskRequest{Title: "x"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, ana, task.ID, dto.UpdateTaskRequest{Title: dto.Some("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, ana, task.ID, dto.UpdateTaskRequest{Status: dto.Some("archivada")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaskUseCase_NoEncontradoSeDistingueDeProhibido(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewTaskUseCase(s, s)
	task, err := uc.Create(ctx, ana, dto.CreateTaskRequest{Title: "privada"})
	require.NoError(t, err)

	_, err = uc.Get(ctx, beto, task.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Get(ctx, beto, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, beto, task.ID), domain.ErrForbidden)
}

func TestTaskUseCase_AdminVePeroNoEditaAjenas(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewTaskUseCase(s, s)
	task, err := uc.Create(ctx, ana, dto.CreateTaskRequest{Title: "de ana"})
	require.NoError(t, err)

	_, err = uc.Get(ctx, admin, task.ID)
	require.NoError(t, err)
	_, err = uc.Update(ctx, admin, task.ID, dto.UpdateTaskRequest{Title: dto.Some("otro")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTaskUseCase_SuperAdminActuaSobreCualquierFila(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewTaskUseCase(s, s)
	task, err := uc.Create(ctx, ana, dto.CreateTaskRequest{Title: "de ana"})
	require.NoError(t, err)

	list, err := uc.List(ctx, superAdmin, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := uc.Update(ctx, superAdmin, task.ID, dto.UpdateTaskRequest{Title: dto.Some("revisada")})
	require.NoError(t, err)
	assert.Equal(t, "revisada", updated.Title)
	require.NotNil(t, updated.UserID)
	assert.Equal(t, ana.UserID, *updated.UserID, "el dueño no cambia")

	require.NoError(t, uc.Delete(ctx, superAdmin, task.ID))
	_, err = uc.Get(ctx, superAdmin, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
