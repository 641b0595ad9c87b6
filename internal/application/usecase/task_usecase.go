package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

// TaskUseCase casos de uso CRUD para tareas.
type TaskUseCase struct {
	store repository.Store
	tx    TxRunner
	now   func() time.Time
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(store repository.Store, tx TxRunner) *TaskUseCase {
	return &TaskUseCase{store: store, tx: tx, now: time.Now}
}

// List devuelve las tareas visibles para el llamador.
func (uc *TaskUseCase) List(ctx context.Context, caller access.Subject, f repository.TaskFilter) ([]dto.TaskResponse, error) {
	if f.Status != "" && !entity.IsValidTaskStatus(f.Status) {
		return nil, invalid("status inválido")
	}
	if f.Priority != "" && !entity.IsValidPriority(f.Priority) {
		return nil, invalid("priority inválido")
	}
	list, err := uc.store.Tasks().List(ctx, access.ListScope(caller, false), f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTaskResponse(t))
	}
	return out, nil
}

// Get obtiene una tarea si el llamador puede verla.
func (uc *TaskUseCase) Get(ctx context.Context, caller access.Subject, id int64) (*dto.TaskResponse, error) {
	t, err := uc.store.Tasks().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFound("tarea", id)
	}
	if err := access.Authorize(caller, access.ActionView, t.Resource()); err != nil {
		return nil, err
	}
	resp := toTaskResponse(t)
	return &resp, nil
}

// Create crea una tarea del llamador. Estado por defecto todo, prioridad medium.
func (uc *TaskUseCase) Create(ctx context.Context, caller access.Subject, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title es obligatorio")
	}
	status := defaultString(in.Status, entity.TaskStatusTodo)
	if !entity.IsValidTaskStatus(status) {
		return nil, invalid("status inválido")
	}
	priority := defaultString(in.Priority, entity.PriorityMedium)
	if !entity.IsValidPriority(priority) {
		return nil, invalid("priority inválido")
	}
	now := uc.now()
	t := &entity.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate.TimePtr(),
		UserID:      int64Ptr(caller.UserID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tx.Run(ctx, func(s repository.Store) error {
		return s.Tasks().Create(ctx, t)
	}); err != nil {
		return nil, err
	}
	resp := toTaskResponse(t)
	return &resp, nil
}

// Update aplica solo los campos presentes.
func (uc *TaskUseCase) Update(ctx context.Context, caller access.Subject, id int64, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := requireEnum("status", in.Status, entity.IsValidTaskStatus); err != nil {
		return nil, err
	}
	if err := requireEnum("priority", in.Priority, entity.IsValidPriority); err != nil {
		return nil, err
	}
	var out *entity.Task
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		t, err := s.Tasks().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return notFound("tarea", id)
		}
		if err := access.Authorize(caller, access.ActionEdit, t.Resource()); err != nil {
			return err
		}
		applyString(&t.Title, in.Title)
		applyNullable(&t.Description, in.Description)
		applyString(&t.Status, in.Status)
		applyString(&t.Priority, in.Priority)
		applyTime(&t.DueDate, in.DueDate)
		t.UpdatedAt = uc.now()
		if err := s.Tasks().Update(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toTaskResponse(out)
	return &resp, nil
}

// Delete elimina una tarea propia (o cualquiera para super_admin).
func (uc *TaskUseCase) Delete(ctx context.Context, caller access.Subject, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		t, err := s.Tasks().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return notFound("tarea", id)
		}
		if err := access.Authorize(caller, access.ActionDelete, t.Resource()); err != nil {
			return err
		}
		return s.Tasks().Delete(ctx, id)
	})
}

func toTaskResponse(t *entity.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
