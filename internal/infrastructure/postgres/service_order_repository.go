package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

const serviceOrderColumns = `id, title, description, client_name, client_email, client_phone, service_type, status,
	priority, estimated_hours, hourly_rate, assigned_to, monthly_status, completed_at, user_id, created_at, updated_at`

// ServiceOrderRepo implementación de ServiceOrderRepository.
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository construye el repositorio de órdenes de servicio.
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

func scanServiceOrder(row rowScanner) (*entity.ServiceOrder, error) {
	var o entity.ServiceOrder
	var hours, rate decimal.NullDecimal
	var monthly []byte
	if err := row.Scan(&o.ID, &o.Title, &o.Description, &o.ClientName, &o.ClientEmail, &o.ClientPhone,
		&o.ServiceType, &o.Status, &o.Priority, &hours, &rate, &o.AssignedTo, &monthly, &o.CompletedAt,
		&o.UserID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.EstimatedHours = decimalPtr(hours)
	o.HourlyRate = decimalPtr(rate)
	if len(monthly) > 0 {
		if err := json.Unmarshal(monthly, &o.MonthlyStatus); err != nil {
			return nil, fmt.Errorf("decode monthly_status: %w", err)
		}
	}
	return &o, nil
}

func encodeMonthlyStatus(o *entity.ServiceOrder) ([]byte, error) {
	if o.MonthlyStatus == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(o.MonthlyStatus)
	if err != nil {
		return nil, fmt.Errorf("encode monthly_status: %w", err)
	}
	return b, nil
}

// Create inserta la orden y asigna su ID.
func (r *ServiceOrderRepo) Create(ctx context.Context, o *entity.ServiceOrder) error {
	monthly, err := encodeMonthlyStatus(o)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO service_orders (title, description, client_name, client_email, client_phone, service_type,
			status, priority, estimated_hours, hourly_rate, assigned_to, monthly_status, completed_at, user_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, o.Title, o.Description, o.ClientName, o.ClientEmail, o.ClientPhone,
		o.ServiceType, o.Status, o.Priority, nullDecimal(o.EstimatedHours), nullDecimal(o.HourlyRate),
		o.AssignedTo, monthly, o.CompletedAt, o.UserID, o.CreatedAt, o.UpdatedAt).Scan(&o.ID); err != nil {
		return wrapWriteErr("insert service order", err)
	}
	return nil
}

// GetByID obtiene una orden; (nil, nil) si no existe.
func (r *ServiceOrderRepo) GetByID(ctx context.Context, id int64) (*entity.ServiceOrder, error) {
	o, err := scanServiceOrder(r.q.QueryRow(ctx, `SELECT `+serviceOrderColumns+` FROM service_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service order: %w", err)
	}
	return o, nil
}

// Update escribe la fila completa.
func (r *ServiceOrderRepo) Update(ctx context.Context, o *entity.ServiceOrder) error {
	monthly, err := encodeMonthlyStatus(o)
	if err != nil {
		return err
	}
	query := `
		UPDATE service_orders SET title = $2, description = $3, client_name = $4, client_email = $5,
			client_phone = $6, service_type = $7, status = $8, priority = $9, estimated_hours = $10,
			hourly_rate = $11, assigned_to = $12, monthly_status = $13, completed_at = $14, updated_at = $15
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, o.ID, o.Title, o.Description, o.ClientName, o.ClientEmail, o.ClientPhone,
		o.ServiceType, o.Status, o.Priority, nullDecimal(o.EstimatedHours), nullDecimal(o.HourlyRate),
		o.AssignedTo, monthly, o.CompletedAt, o.UpdatedAt); err != nil {
		return wrapWriteErr("update service order", err)
	}
	return nil
}

// Delete elimina una orden.
func (r *ServiceOrderRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM service_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete service order: %w", err)
	}
	return nil
}

// List órdenes visibles (propias o asignadas según scope), ordenadas por ID.
func (r *ServiceOrderRepo) List(ctx context.Context, scope access.Scope, f repository.ServiceOrderFilter) ([]*entity.ServiceOrder, error) {
	var w whereBuilder
	w.scope(scope, "user_id", "assigned_to")
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	rows, err := r.q.Query(ctx, `SELECT `+serviceOrderColumns+` FROM service_orders`+w.clause()+` ORDER BY id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list service orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceOrder
	for rows.Next() {
		o, err := scanServiceOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
