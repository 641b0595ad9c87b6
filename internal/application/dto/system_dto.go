package dto

import "time"

// DashboardSummaryResponse respuesta de GET /api/dashboard/summary.
// Los conteos respetan lo que el llamador puede ver.
type DashboardSummaryResponse struct {
	TotalUsers          *int           `json:"total_users"` // null para usuarios estándar
	Tickets             map[string]int `json:"tickets"`
	Tasks               map[string]int `json:"tasks"`
	OpenTickets         int            `json:"open_tickets"`
	PendingTasks        int            `json:"pending_tasks"`
	EventsToday         int            `json:"events_today"`
	EventsThisMonth     int            `json:"events_this_month"`
	UnreadNotifications int            `json:"unread_notifications"`
	GeneratedAt         time.Time      `json:"generated_at"`
}

// BackupResponse salida de un intento de respaldo.
type BackupResponse struct {
	ID           int64      `json:"id"`
	Status       string     `json:"status"`
	FilePath     *string    `json:"file_path"`
	SizeBytes    *int64     `json:"size_bytes"`
	ErrorMessage *string    `json:"error_message"`
	CreatedBy    *int64     `json:"created_by"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at"`
}
