package dto

import (
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateServiceOrderRequest entrada para crear una orden.
type CreateServiceOrderRequest struct {
	Title          string           `json:"title" validate:"required,max=200"`
	Description    *string          `json:"description"`
	ClientName     string           `json:"client_name" validate:"required,max=200"`
	ClientEmail    *string          `json:"client_email" validate:"omitempty,email,max=120"`
	ClientPhone    *string          `json:"client_phone" validate:"omitempty,max=50"`
	ServiceType    *string          `json:"service_type" validate:"omitempty,max=100"`
	Status         string           `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority       string           `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate"`
	AssignedTo     *int64           `json:"assigned_to"`
}

// UpdateServiceOrderRequest actualización parcial.
type UpdateServiceOrderRequest struct {
	Title          Optional[string]          `json:"title"`
	Description    Optional[string]          `json:"description"`
	ClientName     Optional[string]          `json:"client_name"`
	ClientEmail    Optional[string]          `json:"client_email"`
	ClientPhone    Optional[string]          `json:"client_phone"`
	ServiceType    Optional[string]          `json:"service_type"`
	Status         Optional[string]          `json:"status"`
	Priority       Optional[string]          `json:"priority"`
	EstimatedHours Optional[decimal.Decimal] `json:"estimated_hours"`
	HourlyRate     Optional[decimal.Decimal] `json:"hourly_rate"`
	AssignedTo     Optional[int64]           `json:"assigned_to"`
}

// MonthlyStatusRequest marca un mes de la orden.
type MonthlyStatusRequest struct {
	MonthYear string `json:"month_year" validate:"required"`
	Completed bool   `json:"completed"`
}

// ServiceOrderResponse salida de una orden. TotalCost es derivado.
type ServiceOrderResponse struct {
	ID             int64                           `json:"id"`
	Title          string                          `json:"title"`
	Description    *string                         `json:"description"`
	ClientName     string                          `json:"client_name"`
	ClientEmail    *string                         `json:"client_email"`
	ClientPhone    *string                         `json:"client_phone"`
	ServiceType    *string                         `json:"service_type"`
	Status         string                          `json:"status"`
	Priority       string                          `json:"priority"`
	EstimatedHours *decimal.Decimal                `json:"estimated_hours"`
	HourlyRate     *decimal.Decimal                `json:"hourly_rate"`
	TotalCost      *decimal.Decimal                `json:"total_cost"`
	AssignedTo     *int64                          `json:"assigned_to"`
	MonthlyStatus  map[string]entity.MonthlyStatus `json:"monthly_status"`
	CompletedAt    *time.Time                      `json:"completed_at"`
	UserID         *int64                          `json:"user_id"`
	CreatedAt      time.Time                       `json:"created_at"`
	UpdatedAt      time.Time                       `json:"updated_at"`
}
