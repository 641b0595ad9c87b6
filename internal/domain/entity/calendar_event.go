package entity

import (
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
)

// Tipos de CalendarEvent.
const (
	EventTypeVisit       = "visit"
	EventTypeMaintenance = "maintenance"
	EventTypeMeeting     = "meeting"
	EventTypeOther       = "other"
)

// IsValidEventType valida el tipo de evento.
func IsValidEventType(s string) bool {
	return oneOf(s, EventTypeVisit, EventTypeMaintenance, EventTypeMeeting, EventTypeOther)
}

// CalendarEvent evento de agenda. Los recurrentes comparten RecurrenceID.
type CalendarEvent struct {
	ID                int64
	Title             string
	Description       *string
	StartDate         time.Time
	EndDate           *time.Time
	AllDay            bool
	Location          *string
	EventType         string
	Equipment         *string
	Branch            *string
	MaintenanceType   *string
	RecurrenceID      *string
	IsRecurring       bool
	RecurrencePattern *string
	UserID            *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Resource descriptor de acceso.
func (e *CalendarEvent) Resource() access.Resource { return access.Owned(e.UserID) }
