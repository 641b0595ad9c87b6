package dto

import "time"

// CreateCalendarEventRequest entrada para crear un evento.
type CreateCalendarEventRequest struct {
	Title             string     `json:"title" validate:"required,max=200"`
	Description       *string    `json:"description"`
	StartDate         *Timestamp `json:"start_date" validate:"required"`
	EndDate           *Timestamp `json:"end_date"`
	AllDay            bool       `json:"all_day"`
	Location          *string    `json:"location" validate:"omitempty,max=200"`
	EventType         string     `json:"event_type" validate:"omitempty,oneof=visit maintenance meeting other"`
	Equipment         *string    `json:"equipment" validate:"omitempty,max=200"`
	Branch            *string    `json:"branch" validate:"omitempty,max=100"`
	MaintenanceType   *string    `json:"maintenance_type" validate:"omitempty,max=50"`
	RecurrenceID      *string    `json:"recurrence_id" validate:"omitempty,max=36"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurrencePattern *string    `json:"recurrence_pattern" validate:"omitempty,max=50"`
}

// UpdateCalendarEventRequest actualización parcial de un evento.
type UpdateCalendarEventRequest struct {
	Title             Optional[string]    `json:"title"`
	Description       Optional[string]    `json:"description"`
	StartDate         Optional[Timestamp] `json:"start_date"`
	EndDate           Optional[Timestamp] `json:"end_date"`
	AllDay            Optional[bool]      `json:"all_day"`
	Location          Optional[string]    `json:"location"`
	EventType         Optional[string]    `json:"event_type"`
	Equipment         Optional[string]    `json:"equipment"`
	Branch            Optional[string]    `json:"branch"`
	MaintenanceType   Optional[string]    `json:"maintenance_type"`
	RecurrencePattern Optional[string]    `json:"recurrence_pattern"`
}

// UpdateRecurringRequest parche aplicado a un evento o a todo su grupo.
type UpdateRecurringRequest struct {
	UpdateAll bool `json:"update_all"`
	UpdateCalendarEventRequest
}

// DeleteRecurringRequest borra un evento o todo su grupo.
type DeleteRecurringRequest struct {
	DeleteAll bool `json:"delete_all"`
}

// CalendarEventResponse salida de un evento.
type CalendarEventResponse struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       *string    `json:"description"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	AllDay            bool       `json:"all_day"`
	Location          *string    `json:"location"`
	EventType         string     `json:"event_type"`
	Equipment         *string    `json:"equipment"`
	Branch            *string    `json:"branch"`
	MaintenanceType   *string    `json:"maintenance_type"`
	RecurrenceID      *string    `json:"recurrence_id"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurrencePattern *string    `json:"recurrence_pattern"`
	UserID            *int64     `json:"user_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// RecurringUpdateResponse resultado de una operación sobre un grupo.
type RecurringUpdateResponse struct {
	Message string                  `json:"message"`
	Count   int                     `json:"count"`
	Events  []CalendarEventResponse `json:"events"`
}
