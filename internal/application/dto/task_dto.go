package dto

import "time"

// CreateTaskRequest entrada para crear una tarea.
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in_progress review done"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *Timestamp `json:"due_date"`
}

// UpdateTaskRequest actualización parcial de una tarea.
type UpdateTaskRequest struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Status      Optional[string]    `json:"status"`
	Priority    Optional[string]    `json:"priority"`
	DueDate     Optional[Timestamp] `json:"due_date"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	UserID      *int64     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
