package entity

import (
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/shopspring/decimal"
)

// Estados de PaymentReminder.
const (
	ReminderStatusPending   = "pending"
	ReminderStatusPaid      = "paid"
	ReminderStatusOverdue   = "overdue"
	ReminderStatusCancelled = "cancelled"
)

// Recurrencias de PaymentReminder.
const (
	RecurrenceOneTime   = "one_time"
	RecurrenceMonthly   = "monthly"
	RecurrenceQuarterly = "quarterly"
	RecurrenceAnnually  = "annually"
)

// IsValidReminderStatus valida el estado de un recordatorio.
func IsValidReminderStatus(s string) bool {
	return oneOf(s, ReminderStatusPending, ReminderStatusPaid, ReminderStatusOverdue, ReminderStatusCancelled)
}

// IsValidRecurrence valida la recurrencia de un recordatorio.
func IsValidRecurrence(s string) bool {
	return oneOf(s, RecurrenceOneTime, RecurrenceMonthly, RecurrenceQuarterly, RecurrenceAnnually)
}

// PaymentReminder recordatorio de un pago pendiente.
type PaymentReminder struct {
	ID           int64
	Title        string
	Description  *string
	Amount       decimal.Decimal
	Currency     string
	DueDate      time.Time
	Status       string
	Recurrence   string
	ReminderDays int
	PaidAt       *time.Time
	UserID       *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Resource descriptor de acceso.
func (p *PaymentReminder) Resource() access.Resource { return access.Owned(p.UserID) }

// NextDueDate devuelve el siguiente vencimiento según la recurrencia; false si es único.
func (p *PaymentReminder) NextDueDate() (time.Time, bool) {
	switch p.Recurrence {
	case RecurrenceMonthly:
		return AddMonths(p.DueDate, 1), true
	case RecurrenceQuarterly:
		return AddMonths(p.DueDate, 3), true
	case RecurrenceAnnually:
		return AddMonths(p.DueDate, 12), true
	default:
		return time.Time{}, false
	}
}

// AddMonths suma meses recortando al último día del mes destino (31 ene + 1 = 28/29 feb).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return first.AddDate(0, 0, d-1)
}
