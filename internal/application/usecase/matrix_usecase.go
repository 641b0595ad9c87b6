package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/matrix"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

// MatrixUseCase casos de uso de matrices de análisis. Toda mutación deja rastro en matrix_history.
type MatrixUseCase struct {
	store repository.Store
	tx    TxRunner
	now   func() time.Time
}

// NewMatrixUseCase construye el caso de uso.
func NewMatrixUseCase(store repository.Store, tx TxRunner) *MatrixUseCase {
	return &MatrixUseCase{store: store, tx: tx, now: time.Now}
}

// Templates devuelve las plantillas predefinidas.
func (uc *MatrixUseCase) Templates() []dto.MatrixTemplateResponse {
	tpls := matrix.Templates()
	out := make([]dto.MatrixTemplateResponse, 0, len(tpls))
	for _, t := range tpls {
		out = append(out, dto.MatrixTemplateResponse{
			Type:        t.Type,
			Name:        t.Name,
			Description: t.Description,
			Rows:        t.Rows(),
			Columns:     t.Columns(),
			Headers:     matrix.BuildHeaders(t.Type, 0, 0),
		})
	}
	return out
}

// List devuelve las matrices visibles.
func (uc *MatrixUseCase) List(ctx context.Context, caller access.Subject) ([]dto.MatrixResponse, error) {
	list, err := uc.store.Matrices().List(ctx, access.ListScope(caller, false))
	if err != nil {
		return nil, err
	}
	out := make([]dto.MatrixResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMatrixResponse(m))
	}
	return out, nil
}

// Get obtiene una matriz si el llamador puede verla.
func (uc *MatrixUseCase) Get(ctx context.Context, caller access.Subject, id int64) (*dto.MatrixResponse, error) {
	m, err := uc.store.Matrices().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, notFound("matriz", id)
	}
	if err := access.Authorize(caller, access.ActionView, m.Resource()); err != nil {
		return nil, err
	}
	resp := toMatrixResponse(m)
	return &resp, nil
}

// Create crea la matriz con los encabezados de su plantilla y una celda vacía por posición.
// Los tipos con plantilla imponen su tamaño.
func (uc *MatrixUseCase) Create(ctx context.Context, caller access.Subject, in dto.CreateMatrixRequest) (*dto.MatrixResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name es obligatorio")
	}
	matrixType := defaultString(in.MatrixType, matrix.TypeCustom)
	if !matrix.IsValidType(matrixType) {
		return nil, invalid("matrix_type inválido")
	}
	rows, cols := in.Rows, in.Columns
	if rows == 0 {
		rows = matrix.DefaultSize
	}
	if cols == 0 {
		cols = matrix.DefaultSize
	}
	if !matrix.ValidSize(rows) || !matrix.ValidSize(cols) {
		return nil, invalid("rows y columns deben estar entre %d y %d", matrix.MinSize, matrix.MaxSize)
	}
	rows, cols = matrix.Dimensions(matrixType, rows, cols)

	now := uc.now()
	m := &entity.Matrix{
		Name:        in.Name,
		Description: in.Description,
		MatrixType:  matrixType,
		Rows:        rows,
		Columns:     cols,
		Data:        matrix.NewGrid(rows, cols),
		Headers:     matrix.BuildHeaders(matrixType, rows, cols),
		UserID:      int64Ptr(caller.UserID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := s.Matrices().Create(ctx, m); err != nil {
			return err
		}
		return s.MatrixHistory().Create(ctx, &entity.MatrixHistory{
			MatrixID:  m.ID,
			UserID:    int64Ptr(caller.UserID),
			Action:    entity.MatrixActionCreated,
			Changes:   m.Snapshot(),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toMatrixResponse(m)
	return &resp, nil
}

// Update aplica el parche. Cambiar rows/columns regenera la grilla conservando las celdas
// existentes; data fusiona celdas sobre la grilla actual.
func (uc *MatrixUseCase) Update(ctx context.Context, caller access.Subject, id int64, in dto.UpdateMatrixRequest) (*dto.MatrixResponse, error) {
	if err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	for field, o := range map[string]dto.Optional[int]{"rows": in.Rows, "columns": in.Columns} {
		if o.Set && (o.Null || !matrix.ValidSize(o.Value)) {
			return nil, invalid("%s debe estar entre %d y %d", field, matrix.MinSize, matrix.MaxSize)
		}
	}
	var out *entity.Matrix
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		m, err := s.Matrices().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return notFound("matriz", id)
		}
		if err := access.Authorize(caller, access.ActionEdit, m.Resource()); err != nil {
			return err
		}
		changes := make(map[string]any)
		record := func(field string, from, to any) {
			changes[field] = map[string]any{"old": from, "new": to}
		}

		if in.Name.HasValue() && in.Name.Value != m.Name {
			record("name", m.Name, in.Name.Value)
			m.Name = in.Name.Value
		}
		if in.Description.Set {
			record("description", m.Description, in.Description.Ptr())
			m.Description = in.Description.Ptr()
		}
		rows, cols := m.Rows, m.Columns
		if in.Rows.HasValue() {
			rows = in.Rows.Value
		}
		if in.Columns.HasValue() {
			cols = in.Columns.Value
		}
		if rows != m.Rows || cols != m.Columns {
			record("rows", m.Rows, rows)
			record("columns", m.Columns, cols)
			m.Data = matrix.Resize(m.Data, rows, cols)
			m.Headers = matrix.ResizeHeaders(m.Headers, rows, cols)
			m.Rows, m.Columns = rows, cols
		}
		if in.Data.HasValue() {
			merged, err := matrix.MergeCells(m.Data, in.Data.Value, m.Rows, m.Columns)
			if err != nil {
				return invalid("%s", err.Error())
			}
			m.Data = merged
			changes["data"] = in.Data.Value
		}
		if in.Headers.HasValue() {
			if err := matrix.ValidateHeaders(in.Headers.Value, m.Rows, m.Columns); err != nil {
				return invalid("%s", err.Error())
			}
			record("headers", m.Headers, in.Headers.Value)
			m.Headers = in.Headers.Value
		}

		now := uc.now()
		m.UpdatedAt = now
		if err := s.Matrices().Update(ctx, m); err != nil {
			return err
		}
		if err := s.MatrixHistory().Create(ctx, &entity.MatrixHistory{
			MatrixID:  m.ID,
			UserID:    int64Ptr(caller.UserID),
			Action:    entity.MatrixActionUpdated,
			Changes:   changes,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toMatrixResponse(out)
	return &resp, nil
}

// Delete registra el historial "deleted" con la foto previa y luego borra la matriz.
func (uc *MatrixUseCase) Delete(ctx context.Context, caller access.Subject, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		m, err := s.Matrices().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return notFound("matriz", id)
		}
		if err := access.Authorize(caller, access.ActionDelete, m.Resource()); err != nil {
			return err
		}
		if err := s.MatrixHistory().Create(ctx, &entity.MatrixHistory{
			MatrixID:  m.ID,
			UserID:    int64Ptr(caller.UserID),
			Action:    entity.MatrixActionDeleted,
			Changes:   m.Snapshot(),
			CreatedAt: uc.now(),
		}); err != nil {
			return err
		}
		return s.Matrices().Delete(ctx, id)
	})
}

// History devuelve el historial. Si la matriz ya no existe, el dueño se toma de la
// entrada "created" para decidir el acceso.
func (uc *MatrixUseCase) History(ctx context.Context, caller access.Subject, id int64) ([]dto.MatrixHistoryResponse, error) {
	m, err := uc.store.Matrices().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	list, err := uc.store.MatrixHistory().ListByMatrix(ctx, id)
	if err != nil {
		return nil, err
	}
	var res access.Resource
	switch {
	case m != nil:
		res = m.Resource()
	case len(list) == 0:
		return nil, notFound("matriz", id)
	default:
		res = access.Owned(historyOwner(list))
	}
	if err := access.Authorize(caller, access.ActionView, res); err != nil {
		return nil, err
	}
	out := make([]dto.MatrixHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.MatrixHistoryResponse{
			ID:        h.ID,
			MatrixID:  h.MatrixID,
			UserID:    h.UserID,
			Action:    h.Action,
			Changes:   h.Changes,
			CreatedAt: h.CreatedAt,
		})
	}
	return out, nil
}

func historyOwner(list []*entity.MatrixHistory) *int64 {
	for _, h := range list {
		if h.Action == entity.MatrixActionCreated {
			return h.UserID
		}
	}
	return nil
}

func toMatrixResponse(m *entity.Matrix) dto.MatrixResponse {
	return dto.MatrixResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		MatrixType:  m.MatrixType,
		Rows:        m.Rows,
		Columns:     m.Columns,
		Data:        m.Data,
		Headers:     m.Headers,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
