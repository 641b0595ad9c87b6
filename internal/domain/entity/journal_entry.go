package entity

import (
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/shopspring/decimal"
)

// Categorías de JournalEntry.
const (
	JournalCategoryWork        = "work"
	JournalCategoryMeeting     = "meeting"
	JournalCategoryMaintenance = "maintenance"
	JournalCategoryIssue       = "issue"
	JournalCategoryAchievement = "achievement"
	JournalCategoryPersonal    = "personal"
	JournalCategoryNote        = "note"
)

// Estados de JournalEntry.
const (
	JournalStatusPending   = "pending"
	JournalStatusCompleted = "completed"
	JournalStatusCancelled = "cancelled"
)

// IsValidJournalCategory valida la categoría de una entrada.
func IsValidJournalCategory(s string) bool {
	return oneOf(s, JournalCategoryWork, JournalCategoryMeeting, JournalCategoryMaintenance,
		JournalCategoryIssue, JournalCategoryAchievement, JournalCategoryPersonal, JournalCategoryNote)
}

// IsValidJournalStatus valida el estado de una entrada.
func IsValidJournalStatus(s string) bool {
	return oneOf(s, JournalStatusPending, JournalStatusCompleted, JournalStatusCancelled)
}

// JournalEntry entrada de la bitácora de trabajo.
type JournalEntry struct {
	ID          int64
	Title       string
	Content     string
	EntryDate   time.Time // solo fecha
	Category    string
	Priority    string
	Status      string
	HoursWorked *decimal.Decimal
	Location    *string
	Tags        []string
	UserID      *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Resource descriptor de acceso.
func (j *JournalEntry) Resource() access.Resource { return access.Owned(j.UserID) }
