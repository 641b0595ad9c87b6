package postgres

import "github.com/jhoicas/gestion-ti-api/internal/domain/repository"

var _ repository.Store = (*Store)(nil)

// Store reúne los repositorios sobre un mismo Querier (pool o transacción).
type Store struct {
	users          *UserRepo
	tasks          *TaskRepo
	tickets        *TicketRepo
	ticketComments *TicketCommentRepo
	ticketHistory  *TicketHistoryRepo
	calendarEvents *CalendarEventRepo
	matrices       *MatrixRepo
	matrixHistory  *MatrixHistoryRepo
	journal        *JournalRepo
	reminders      *PaymentReminderRepo
	serviceOrders  *ServiceOrderRepo
	notifications  *NotificationRepo
	departments    *DepartmentRepo
	backups        *BackupRepo
}

// NewStore construye todos los repositorios sobre q.
func NewStore(q Querier) *Store {
	return &Store{
		users:          NewUserRepository(q),
		tasks:          NewTaskRepository(q),
		tickets:        NewTicketRepository(q),
		ticketComments: NewTicketCommentRepository(q),
		ticketHistory:  NewTicketHistoryRepository(q),
		calendarEvents: NewCalendarEventRepository(q),
		matrices:       NewMatrixRepository(q),
		matrixHistory:  NewMatrixHistoryRepository(q),
		journal:        NewJournalRepository(q),
		reminders:      NewPaymentReminderRepository(q),
		serviceOrders:  NewServiceOrderRepository(q),
		notifications:  NewNotificationRepository(q),
		departments:    NewDepartmentRepository(q),
		backups:        NewBackupRepository(q),
	}
}

func (s *Store) Users() repository.UserRepository                   { return s.users }
func (s *Store) Tasks() repository.TaskRepository                   { return s.tasks }
func (s *Store) Tickets() repository.TicketRepository               { return s.tickets }
func (s *Store) TicketComments() repository.TicketCommentRepository { return s.ticketComments }
func (s *Store) TicketHistory() repository.TicketHistoryRepository  { return s.ticketHistory }
func (s *Store) CalendarEvents() repository.CalendarEventRepository { return s.calendarEvents }
func (s *Store) Matrices() repository.MatrixRepository              { return s.matrices }
func (s *Store) MatrixHistory() repository.MatrixHistoryRepository  { return s.matrixHistory }
func (s *Store) Journal() repository.JournalRepository              { return s.journal }
func (s *Store) PaymentReminders() repository.PaymentReminderRepository {
	return s.reminders
}
func (s *Store) ServiceOrders() repository.ServiceOrderRepository { return s.serviceOrders }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }
func (s *Store) Departments() repository.DepartmentRepository     { return s.departments }
func (s *Store) Backups() repository.BackupRepository             { return s.backups }
