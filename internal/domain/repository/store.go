package repository

// Store agrupa los repositorios ligados a una misma conexión o transacción.
type Store interface {
	Users() UserRepository
	Tasks() TaskRepository
	Tickets() TicketRepository
	TicketComments() TicketCommentRepository
	TicketHistory() TicketHistoryRepository
	CalendarEvents() CalendarEventRepository
	Matrices() MatrixRepository
	MatrixHistory() MatrixHistoryRepository
	Journal() JournalRepository
	PaymentReminders() PaymentReminderRepository
	ServiceOrders() ServiceOrderRepository
	Notifications() NotificationRepository
	Departments() DepartmentRepository
	Backups() BackupRepository
}
