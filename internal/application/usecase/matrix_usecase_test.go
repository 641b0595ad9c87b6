package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixUseCase_CreatePlantillaImponeTamano(t *testing.T) {
	s := newSeededStore(t)
	uc := usecase.NewMatrixUseCase(s, s)

	m, err := uc.Create(context.Background(), ana, dto.CreateMatrixRequest{
		Name: "FODA 2026", MatrixType: matrix.TypeSWOT, Rows: 5, Columns: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows)
	assert.Equal(t, 2, m.Columns)
	assert.Len(t, m.Data, 4)
	assert.Equal(t, []string{"Positivos", "Negativos"}, m.Headers.Columns)
}

func TestMatrixUseCase_CreateCustomUsaEtiquetasGenericas(t *testing.T) {
	s := newSeededStore(t)
	uc := usecase.NewMatrixUseCase(s, s)

	m, err := uc.Create(context.Background(), ana, dto.CreateMatrixRequest{Name: "Libre", Rows: 2})
	require.NoError(t, err)
	assert.Equal(t, matrix.TypeCustom, m.MatrixType)
	assert.Equal(t, 2, m.Rows)
	assert.Equal(t, matrix.DefaultSize, m.Columns)
	assert.Equal(t, []string{"Fila 1", "Fila 2"}, m.Headers.Rows)
	assert.Contains(t, m.Data, "1-2")

	_, err = uc.Create(context.Background(), ana, dto.CreateMatrixRequest{Name: "Grande", Rows: 21})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMatrixUseCase_UpdateRedimensionaConservandoCeldas(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewMatrixUseCase(s, s)
	m, err := uc.Create(ctx, ana, dto.CreateMatrixRequest{Name: "Libre", Rows: 2, Columns: 2})
	require.NoError(t, err)

	_, err = uc.Update(ctx, ana, m.ID, dto.UpdateMatrixRequest{Data: dto.Some(map[string]string{"1-1": "riesgo"})})
	require.NoError(t, err)

	grown, err := uc.Update(ctx, ana, m.ID, dto.UpdateMatrixRequest{Rows: dto.Some(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, grown.Rows)
	assert.Len(t, grown.Data, 6)
	assert.Equal(t, "riesgo", grown.Data["1-1"])
	assert.Equal(t, "Fila 3", grown.Headers.Rows[2])

	_, err = uc.Update(ctx, ana, m.ID, dto.UpdateMatrixRequest{Data: dto.Some(map[string]string{"5-0": "x"})})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	history, err := uc.History(ctx, ana, m.ID)
	require.NoError(t, err)
	require.Len(t, history, 3, "created + dos updated; el parche inválido no deja rastro")
	assert.Equal(t, entity.MatrixActionUpdated, history[0].Action)
	assert.Contains(t, history[0].Changes, "rows")
	assert.Equal(t, entity.MatrixActionCreated, history[2].Action)
}

func TestMatrixUseCase_DeleteDejaHistorialConsultable(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewMatrixUseCase(s, s)
	m, err := uc.Create(ctx, ana, dto.CreateMatrixRequest{Name: "Riesgos", MatrixType: matrix.TypeRisk})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, ana, m.ID))

	_, err = uc.Get(ctx, ana, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	history, err := uc.History(ctx, ana, m.ID)
	require.NoError(t, err)
	deleted := 0
	for _, h := range history {
		if h.Action == entity.MatrixActionDeleted {
			deleted++
			assert.Equal(t, "Riesgos", h.Changes["name"])
		}
	}
	assert.Equal(t, 1, deleted)
	assert.Equal(t, entity.MatrixActionDeleted, history[0].Action, "el borrado es el último registro")

	_, err = uc.History(ctx, beto, m.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.History(ctx, ana, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMatrixUseCase_DeleteAjenoNoEscribeHistorial(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewMatrixUseCase(s, s)
	m, err := uc.Create(ctx, ana, dto.CreateMatrixRequest{Name: "Privada"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, beto, m.ID), domain.ErrForbidden)
	history, err := uc.History(ctx, ana, m.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestMatrixUseCase_Templates(t *testing.T) {
	tpls := usecase.NewMatrixUseCase(nil, nil).Templates()
	require.NotEmpty(t, tpls)
	for _, tpl := range tpls {
		assert.Equal(t, len(tpl.Headers.Rows), tpl.Rows)
		assert.NotEqual(t, matrix.TypeCustom, tpl.Type)
	}
}
