package entity

import (
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/shopspring/decimal"
)

// Estados de ServiceOrder.
const (
	ServiceOrderStatusPending    = "pending"
	ServiceOrderStatusInProgress = "in_progress"
	ServiceOrderStatusCompleted  = "completed"
	ServiceOrderStatusCancelled  = "cancelled"
)

// IsValidServiceOrderStatus valida el estado de una orden.
func IsValidServiceOrderStatus(s string) bool {
	return oneOf(s, ServiceOrderStatusPending, ServiceOrderStatusInProgress, ServiceOrderStatusCompleted, ServiceOrderStatusCancelled)
}

// MonthlyStatus seguimiento mensual de una orden recurrente. Se persiste como JSON.
type MonthlyStatus struct {
	Completed     bool       `json:"completed"`
	CompletedDate *time.Time `json:"completed_date"`
}

// ServiceOrder orden de servicio para un cliente. Es asignable.
type ServiceOrder struct {
	ID             int64
	Title          string
	Description    *string
	ClientName     string
	ClientEmail    *string
	ClientPhone    *string
	ServiceType    *string
	Status         string
	Priority       string
	EstimatedHours *decimal.Decimal
	HourlyRate     *decimal.Decimal
	AssignedTo     *int64
	MonthlyStatus  map[string]MonthlyStatus // "YYYY-MM"
	CompletedAt    *time.Time
	UserID         *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Resource descriptor de acceso.
func (o *ServiceOrder) Resource() access.Resource { return access.Assignable(o.UserID, o.AssignedTo) }

// TotalCost horas estimadas por tarifa, redondeado a 2 decimales; nil si falta alguno.
func (o *ServiceOrder) TotalCost() *decimal.Decimal {
	if o.EstimatedHours == nil || o.HourlyRate == nil {
		return nil
	}
	total := o.EstimatedHours.Mul(*o.HourlyRate).Round(2)
	return &total
}

// SetStatus cambia el estado y sella completed_at al completar.
func (o *ServiceOrder) SetStatus(status string, now time.Time) {
	if status == ServiceOrderStatusCompleted && o.Status != ServiceOrderStatusCompleted {
		o.CompletedAt = &now
	}
	if status != ServiceOrderStatusCompleted {
		o.CompletedAt = nil
	}
	o.Status = status
}

// SetMonthlyStatus marca el mes indicado como completado o pendiente.
func (o *ServiceOrder) SetMonthlyStatus(monthYear string, completed bool, now time.Time) {
	if o.MonthlyStatus == nil {
		o.MonthlyStatus = make(map[string]MonthlyStatus)
	}
	st := MonthlyStatus{Completed: completed}
	if completed {
		st.CompletedDate = &now
	}
	o.MonthlyStatus[monthYear] = st
}
