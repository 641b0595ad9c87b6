package entity

import (
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
)

// Estados de Task.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusReview     = "review"
	TaskStatusDone       = "done"
)

// IsValidTaskStatus valida el estado de una tarea.
func IsValidTaskStatus(s string) bool {
	return oneOf(s, TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone)
}

// Task tarea personal del tablero.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      string
	Priority    string
	DueDate     *time.Time
	UserID      *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Resource descriptor de acceso.
func (t *Task) Resource() access.Resource { return access.Owned(t.UserID) }
