package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateJournalEntryRequest entrada para crear una entrada de bitácora.
type CreateJournalEntryRequest struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Content     string           `json:"content" validate:"required"`
	EntryDate   *Date            `json:"entry_date"`
	Category    string           `json:"category" validate:"omitempty,oneof=work meeting maintenance issue achievement personal note"`
	Priority    string           `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status      string           `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
	HoursWorked *decimal.Decimal `json:"hours_worked"`
	Location    *string          `json:"location" validate:"omitempty,max=200"`
	Tags        []string         `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

// UpdateJournalEntryRequest actualización parcial.
type UpdateJournalEntryRequest struct {
	Title       Optional[string]          `json:"title"`
	Content     Optional[string]          `json:"content"`
	EntryDate   Optional[Date]            `json:"entry_date"`
	Category    Optional[string]          `json:"category"`
	Priority    Optional[string]          `json:"priority"`
	Status      Optional[string]          `json:"status"`
	HoursWorked Optional[decimal.Decimal] `json:"hours_worked"`
	Location    Optional[string]          `json:"location"`
	Tags        Optional[[]string]        `json:"tags"`
}

// JournalEntryResponse salida de una entrada.
type JournalEntryResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	EntryDate   Date             `json:"entry_date"`
	Category    string           `json:"category"`
	Priority    string           `json:"priority"`
	Status      string           `json:"status"`
	HoursWorked *decimal.Decimal `json:"hours_worked"`
	Location    *string          `json:"location"`
	Tags        []string         `json:"tags"`
	UserID      *int64           `json:"user_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// JournalStatsResponse agregados sobre las entradas visibles.
type JournalStatsResponse struct {
	TotalEntries int             `json:"total_entries"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	Categories   map[string]int  `json:"categories"`
	Statuses     map[string]int  `json:"statuses"`
}
