package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentReminderRequest entrada para crear un recordatorio.
type CreatePaymentReminderRequest struct {
	Title        string           `json:"title" validate:"required,max=200"`
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount" validate:"required"`
	Currency     string           `json:"currency" validate:"omitempty,len=3,alpha"`
	DueDate      *Timestamp       `json:"due_date" validate:"required"`
	Status       string           `json:"status" validate:"omitempty,oneof=pending paid overdue cancelled"`
	Recurrence   string           `json:"recurrence" validate:"omitempty,oneof=one_time monthly quarterly annually"`
	ReminderDays *int             `json:"reminder_days" validate:"omitempty,min=0,max=365"`
}

// UpdatePaymentReminderRequest actualización parcial.
type UpdatePaymentReminderRequest struct {
	Title        Optional[string]          `json:"title"`
	Description  Optional[string]          `json:"description"`
	Amount       Optional[decimal.Decimal] `json:"amount"`
	Currency     Optional[string]          `json:"currency"`
	DueDate      Optional[Timestamp]       `json:"due_date"`
	Status       Optional[string]          `json:"status"`
	Recurrence   Optional[string]          `json:"recurrence"`
	ReminderDays Optional[int]             `json:"reminder_days"`
}

// PaymentReminderResponse salida de un recordatorio.
type PaymentReminderResponse struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  *string         `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	DueDate      time.Time       `json:"due_date"`
	Status       string          `json:"status"`
	Recurrence   string          `json:"recurrence"`
	ReminderDays int             `json:"reminder_days"`
	PaidAt       *time.Time      `json:"paid_at"`
	UserID       *int64          `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PayReminderResponse recordatorio pagado y, si es recurrente, el siguiente.
type PayReminderResponse struct {
	Reminder PaymentReminderResponse  `json:"reminder"`
	Next     *PaymentReminderResponse `json:"next"`
}
