package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

const taskColumns = `id, title, description, status, priority, due_date, user_id, created_at, updated_at`

// TaskRepo implementación de TaskRepository.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el repositorio de tareas.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var t entity.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
		&t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserta la tarea y asigna su ID.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (title, description, status, priority, due_date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, t.Title, t.Description, t.Status, t.Priority, t.DueDate,
		t.UserID, t.CreatedAt, t.UpdatedAt).Scan(&t.ID); err != nil {
		return wrapWriteErr("insert task", err)
	}
	return nil
}

// GetByID obtiene una tarea; (nil, nil) si no existe.
func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	t, err := scanTask(r.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Update escribe la fila completa.
func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	query := `
		UPDATE tasks SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = $7
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.UpdatedAt); err != nil {
		return wrapWriteErr("update task", err)
	}
	return nil
}

// Delete elimina una tarea.
func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// List tareas visibles según scope y filtros, ordenadas por ID.
func (r *TaskRepo) List(ctx context.Context, scope access.Scope, f repository.TaskFilter) ([]*entity.Task, error) {
	var w whereBuilder
	w.scope(scope, "user_id", "")
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Priority != "" {
		w.add("priority = ?", f.Priority)
	}
	rows, err := r.q.Query(ctx, `SELECT `+taskColumns+` FROM tasks`+w.clause()+` ORDER BY id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountByStatus conteo por estado dentro del scope.
func (r *TaskRepo) CountByStatus(ctx context.Context, scope access.Scope) (map[string]int, error) {
	var w whereBuilder
	w.scope(scope, "user_id", "")
	return countByStatus(ctx, r.q, "tasks", &w)
}
