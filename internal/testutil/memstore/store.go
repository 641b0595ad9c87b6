// Package memstore implementación en memoria de repository.Store y usecase.TxRunner para tests.
// Los valores se copian al entrar y al salir, de modo que un rollback restaura el estado exacto.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

var (
	_ repository.Store = (*Store)(nil)
	_ usecase.TxRunner = (*Store)(nil)
)

type table[T any] struct {
	seq  int64
	rows map[int64]T
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) nextID() int64 {
	t.seq++
	return t.seq
}

func (t table[T]) clone() table[T] {
	return table[T]{seq: t.seq, rows: maps.Clone(t.rows)}
}

// ordered filas por id ascendente.
func (t table[T]) ordered() []T {
	out := make([]T, 0, len(t.rows))
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		out = append(out, t.rows[id])
	}
	return out
}

type state struct {
	users         table[entity.User]
	tasks         table[entity.Task]
	tickets       table[entity.Ticket]
	comments      table[entity.TicketComment]
	ticketHistory table[entity.TicketHistory]
	events        table[entity.CalendarEvent]
	matrices      table[entity.Matrix]
	matrixHistory table[entity.MatrixHistory]
	journal       table[entity.JournalEntry]
	reminders     table[entity.PaymentReminder]
	orders        table[entity.ServiceOrder]
	notifications table[entity.Notification]
	departments   table[entity.Department]
	adminDepts    table[entity.AdminDepartment]
	backups       table[entity.SystemBackup]
}

func newState() state {
	return state{
		users:         newTable[entity.User](),
		tasks:         newTable[entity.Task](),
		tickets:       newTable[entity.Ticket](),
		comments:      newTable[entity.TicketComment](),
		ticketHistory: newTable[entity.TicketHistory](),
		events:        newTable[entity.CalendarEvent](),
		matrices:      newTable[entity.Matrix](),
		matrixHistory: newTable[entity.MatrixHistory](),
		journal:       newTable[entity.JournalEntry](),
		reminders:     newTable[entity.PaymentReminder](),
		orders:        newTable[entity.ServiceOrder](),
		notifications: newTable[entity.Notification](),
		departments:   newTable[entity.Department](),
		adminDepts:    newTable[entity.AdminDepartment](),
		backups:       newTable[entity.SystemBackup](),
	}
}

func (s state) clone() state {
	return state{
		users:         s.users.clone(),
		tasks:         s.tasks.clone(),
		tickets:       s.tickets.clone(),
		comments:      s.comments.clone(),
		ticketHistory: s.ticketHistory.clone(),
		events:        s.events.clone(),
		matrices:      s.matrices.clone(),
		matrixHistory: s.matrixHistory.clone(),
		journal:       s.journal.clone(),
		reminders:     s.reminders.clone(),
		orders:        s.orders.clone(),
		notifications: s.notifications.clone(),
		departments:   s.departments.clone(),
		adminDepts:    s.adminDepts.clone(),
		backups:       s.backups.clone(),
	}
}

// Store almacén en memoria. Es seguro para uso concurrente.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	st   state

	// SnapshotErr, si no es nil, lo devuelve Backups().Snapshot.
	SnapshotErr error
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre el mismo almacén; si fn falla se restaura el estado previo.
// Las transacciones se serializan entre sí.
func (s *Store) Run(ctx context.Context, fn func(store repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	saved := s.st.clone()
	s.mu.RUnlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.st = saved
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Users() repository.UserRepository                       { return userRepo{s} }
func (s *Store) Tasks() repository.TaskRepository                       { return taskRepo{s} }
func (s *Store) Tickets() repository.TicketRepository                   { return ticketRepo{s} }
func (s *Store) TicketComments() repository.TicketCommentRepository     { return commentRepo{s} }
func (s *Store) TicketHistory() repository.TicketHistoryRepository      { return ticketHistoryRepo{s} }
func (s *Store) CalendarEvents() repository.CalendarEventRepository     { return eventRepo{s} }
func (s *Store) Matrices() repository.MatrixRepository                  { return matrixRepo{s} }
func (s *Store) MatrixHistory() repository.MatrixHistoryRepository      { return matrixHistoryRepo{s} }
func (s *Store) Journal() repository.JournalRepository                  { return journalRepo{s} }
func (s *Store) PaymentReminders() repository.PaymentReminderRepository { return reminderRepo{s} }
func (s *Store) ServiceOrders() repository.ServiceOrderRepository       { return orderRepo{s} }
func (s *Store) Notifications() repository.NotificationRepository       { return notificationRepo{s} }
func (s *Store) Departments() repository.DepartmentRepository           { return departmentRepo{s} }
func (s *Store) Backups() repository.BackupRepository                   { return backupRepo{s} }

// ── Copias profundas ────────────────────────────────────────────────────────

func cloneMatrix(m entity.Matrix) entity.Matrix {
	m.Data = maps.Clone(m.Data)
	m.Headers.Rows = slices.Clone(m.Headers.Rows)
	m.Headers.Columns = slices.Clone(m.Headers.Columns)
	return m
}

func cloneJournal(j entity.JournalEntry) entity.JournalEntry {
	j.Tags = slices.Clone(j.Tags)
	return j
}

func cloneOrder(o entity.ServiceOrder) entity.ServiceOrder {
	o.MonthlyStatus = maps.Clone(o.MonthlyStatus)
	return o
}

func ptr[T any](v T) *T { return &v }

func sameID(p *int64, id int64) bool { return p != nil && *p == id }
