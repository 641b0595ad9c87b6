package memstore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

// ── Usuarios ────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r userRepo) emailTaken(email string, exceptID int64) bool {
	for id, u := range r.s.st.users.rows {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, 0) {
		return domain.ErrEmailAlreadyExists
	}
	u.ID = r.s.st.users.nextID()
	r.s.st.users.rows[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.st.users.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.st.users.ordered() {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.users.rows[u.ID]; !ok {
		return nil
	}
	if r.emailTaken(u.Email, u.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.st.users.rows[u.ID] = *u
	return nil
}

func (r userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.users.rows, id)
	return nil
}

func (r userRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.User
	for _, u := range r.s.st.users.ordered() {
		out = append(out, ptr(u))
	}
	return out, nil
}

func (r userRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.st.users.rows), nil
}

// ── Tareas ──────────────────────────────────────────────────────────────────

type taskRepo struct{ s *Store }

func (r taskRepo) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.st.tasks.nextID()
	r.s.st.tasks.rows[t.ID] = *t
	return nil
}

func (r taskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.st.tasks.rows[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r taskRepo) Update(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.tasks.rows[t.ID]; ok {
		r.s.st.tasks.rows[t.ID] = *t
	}
	return nil
}

func (r taskRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.tasks.rows, id)
	return nil
}

func (r taskRepo) List(_ context.Context, scope access.Scope, f repository.TaskFilter) ([]*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Task
	for _, t := range r.s.st.tasks.ordered() {
		if !scope.Allows(t.Resource()) {
			continue
		}
		if (f.Status != "" && t.Status != f.Status) || (f.Priority != "" && t.Priority != f.Priority) {
			continue
		}
		out = append(out, ptr(t))
	}
	return out, nil
}

func (r taskRepo) CountByStatus(_ context.Context, scope access.Scope) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]int)
	for _, t := range r.s.st.tasks.rows {
		if scope.Allows(t.Resource()) {
			out[t.Status]++
		}
	}
	return out, nil
}

// ── Tickets ─────────────────────────────────────────────────────────────────

type ticketRepo struct{ s *Store }

func (r ticketRepo) Create(_ context.Context, t *entity.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.st.tickets.nextID()
	r.s.st.tickets.rows[t.ID] = *t
	return nil
}

func (r ticketRepo) GetByID(_ context.Context, id int64) (*entity.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.st.tickets.rows[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r ticketRepo) Update(_ context.Context, t *entity.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.tickets.rows[t.ID]; ok {
		r.s.st.tickets.rows[t.ID] = *t
	}
	return nil
}

// Delete elimina el ticket con sus comentarios e historial (ON DELETE CASCADE).
func (r ticketRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.tickets.rows, id)
	for cid, c := range r.s.st.comments.rows {
		if c.TicketID == id {
			delete(r.s.st.comments.rows, cid)
		}
	}
	for hid, h := range r.s.st.ticketHistory.rows {
		if h.TicketID == id {
			delete(r.s.st.ticketHistory.rows, hid)
		}
	}
	return nil
}

func (r ticketRepo) List(_ context.Context, scope access.Scope, f repository.TicketFilter) ([]*entity.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Ticket
	for _, t := range r.s.st.tickets.ordered() {
		if !scope.Allows(t.Resource()) {
			continue
		}
		if (f.Status != "" && t.Status != f.Status) || (f.Priority != "" && t.Priority != f.Priority) {
			continue
		}
		if f.AssignedTo != nil && !sameID(t.AssignedTo, *f.AssignedTo) {
			continue
		}
		out = append(out, ptr(t))
	}
	return out, nil
}

func (r ticketRepo) CountByStatus(_ context.Context, scope access.Scope) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]int)
	for _, t := range r.s.st.tickets.rows {
		if scope.Allows(t.Resource()) {
			out[t.Status]++
		}
	}
	return out, nil
}

type commentRepo struct{ s *Store }

func (r commentRepo) Create(_ context.Context, c *entity.TicketComment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.tickets.rows[c.TicketID]; !ok {
		return fmt.Errorf("insert ticket comment: %w", domain.ErrReferenceNotFound)
	}
	c.ID = r.s.st.comments.nextID()
	r.s.st.comments.rows[c.ID] = *c
	return nil
}

func (r commentRepo) ListByTicket(_ context.Context, ticketID int64, includeInternal bool) ([]*entity.TicketComment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.TicketComment
	for _, c := range r.s.st.comments.ordered() {
		if c.TicketID == ticketID && (includeInternal || !c.IsInternal) {
			out = append(out, ptr(c))
		}
	}
	return out, nil
}

type ticketHistoryRepo struct{ s *Store }

func (r ticketHistoryRepo) Create(_ context.Context, h *entity.TicketHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h.ID = r.s.st.ticketHistory.nextID()
	r.s.st.ticketHistory.rows[h.ID] = *h
	return nil
}

// ListByTicket más recientes primero.
func (r ticketHistoryRepo) ListByTicket(_ context.Context, ticketID int64) ([]*entity.TicketHistory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.TicketHistory
	for _, h := range r.s.st.ticketHistory.ordered() {
		if h.TicketID == ticketID {
			out = append(out, ptr(h))
		}
	}
	slices.Reverse(out)
	return out, nil
}

// ── Calendario ──────────────────────────────────────────────────────────────

type eventRepo struct{ s *Store }

func (r eventRepo) Create(_ context.Context, e *entity.CalendarEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.st.events.nextID()
	r.s.st.events.rows[e.ID] = *e
	return nil
}

func (r eventRepo) GetByID(_ context.Context, id int64) (*entity.CalendarEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.st.events.rows[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r eventRepo) Update(_ context.Context, e *entity.CalendarEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.events.rows[e.ID]; ok {
		r.s.st.events.rows[e.ID] = *e
	}
	return nil
}

func (r eventRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.events.rows, id)
	return nil
}

func (r eventRepo) List(_ context.Context, scope access.Scope, f repository.CalendarFilter) ([]*entity.CalendarEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.CalendarEvent
	for _, e := range r.s.st.events.ordered() {
		if !scope.Allows(e.Resource()) {
			continue
		}
		if f.From != nil && e.StartDate.Before(*f.From) {
			continue
		}
		if f.To != nil && e.StartDate.After(*f.To) {
			continue
		}
		if f.EventType != "" && e.EventType != f.EventType {
			continue
		}
		out = append(out, ptr(e))
	}
	return out, nil
}

func (r eventRepo) ListByRecurrence(_ context.Context, recurrenceID string) ([]*entity.CalendarEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.CalendarEvent
	for _, e := range r.s.st.events.ordered() {
		if e.RecurrenceID != nil && *e.RecurrenceID == recurrenceID {
			out = append(out, ptr(e))
		}
	}
	return out, nil
}

func (r eventRepo) CountBetween(_ context.Context, scope access.Scope, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, e := range r.s.st.events.rows {
		if scope.Allows(e.Resource()) && !e.StartDate.Before(from) && e.StartDate.Before(to) {
			n++
		}
	}
	return n, nil
}

// ── Matrices ────────────────────────────────────────────────────────────────

type matrixRepo struct{ s *Store }

func (r matrixRepo) Create(_ context.Context, m *entity.Matrix) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.st.matrices.nextID()
	r.s.st.matrices.rows[m.ID] = cloneMatrix(*m)
	return nil
}

func (r matrixRepo) GetByID(_ context.Context, id int64) (*entity.Matrix, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.st.matrices.rows[id]
	if !ok {
		return nil, nil
	}
	return ptr(cloneMatrix(m)), nil
}

func (r matrixRepo) Update(_ context.Context, m *entity.Matrix) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.matrices.rows[m.ID]; ok {
		r.s.st.matrices.rows[m.ID] = cloneMatrix(*m)
	}
	return nil
}

func (r matrixRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.matrices.rows, id)
	return nil
}

func (r matrixRepo) List(_ context.Context, scope access.Scope) ([]*entity.Matrix, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Matrix
	for _, m := range r.s.st.matrices.ordered() {
		if scope.Allows(m.Resource()) {
			out = append(out, ptr(cloneMatrix(m)))
		}
	}
	return out, nil
}

type matrixHistoryRepo struct{ s *Store }

func (r matrixHistoryRepo) Create(_ context.Context, h *entity.MatrixHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h.ID = r.s.st.matrixHistory.nextID()
	r.s.st.matrixHistory.rows[h.ID] = *h
	return nil
}

// ListByMatrix más recientes primero.
func (r matrixHistoryRepo) ListByMatrix(_ context.Context, matrixID int64) ([]*entity.MatrixHistory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.MatrixHistory
	for _, h := range r.s.st.matrixHistory.ordered() {
		if h.MatrixID == matrixID {
			out = append(out, ptr(h))
		}
	}
	slices.Reverse(out)
	return out, nil
}

// ── Bitácora ────────────────────────────────────────────────────────────────

type journalRepo struct{ s *Store }

func (r journalRepo) Create(_ context.Context, e *entity.JournalEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.st.journal.nextID()
	r.s.st.journal.rows[e.ID] = cloneJournal(*e)
	return nil
}

func (r journalRepo) GetByID(_ context.Context, id int64) (*entity.JournalEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.st.journal.rows[id]
	if !ok {
		return nil, nil
	}
	return ptr(cloneJournal(e)), nil
}

func (r journalRepo) Update(_ context.Context, e *entity.JournalEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.journal.rows[e.ID]; ok {
		r.s.st.journal.rows[e.ID] = cloneJournal(*e)
	}
	return nil
}

func (r journalRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.journal.rows, id)
	return nil
}

// List ordena por entry_date DESC, created_at DESC.
func (r journalRepo) List(_ context.Context, scope access.Scope, f repository.JournalFilter) ([]*entity.JournalEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.JournalEntry
	for _, e := range r.s.st.journal.ordered() {
		if !scope.Allows(e.Resource()) {
			continue
		}
		if f.From != nil && e.EntryDate.Before(*f.From) {
			continue
		}
		if f.To != nil && e.EntryDate.After(*f.To) {
			continue
		}
		if (f.Category != "" && e.Category != f.Category) || (f.Status != "" && e.Status != f.Status) {
			continue
		}
		out = append(out, ptr(cloneJournal(e)))
	}
	slices.SortStableFunc(out, func(a, b *entity.JournalEntry) int {
		if c := b.EntryDate.Compare(a.EntryDate); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// ── Recordatorios de pago ───────────────────────────────────────────────────

type reminderRepo struct{ s *Store }

func (r reminderRepo) Create(_ context.Context, p *entity.PaymentReminder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.st.reminders.nextID()
	r.s.st.reminders.rows[p.ID] = *p
	return nil
}

func (r reminderRepo) GetByID(_ context.Context, id int64) (*entity.PaymentReminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.st.reminders.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r reminderRepo) Update(_ context.Context, p *entity.PaymentReminder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.reminders.rows[p.ID]; ok {
		r.s.st.reminders.rows[p.ID] = *p
	}
	return nil
}

func (r reminderRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.reminders.rows, id)
	return nil
}

func (r reminderRepo) List(_ context.Context, scope access.Scope, f repository.ReminderFilter) ([]*entity.PaymentReminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.PaymentReminder
	for _, p := range r.s.st.reminders.ordered() {
		if scope.Allows(p.Resource()) && (f.Status == "" || p.Status == f.Status) {
			out = append(out, ptr(p))
		}
	}
	return out, nil
}

// ── Órdenes de servicio ─────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, o *entity.ServiceOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = r.s.st.orders.nextID()
	r.s.st.orders.rows[o.ID] = cloneOrder(*o)
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id int64) (*entity.ServiceOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.st.orders.rows[id]
	if !ok {
		return nil, nil
	}
	return ptr(cloneOrder(o)), nil
}

func (r orderRepo) Update(_ context.Context, o *entity.ServiceOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.orders.rows[o.ID]; ok {
		r.s.st.orders.rows[o.ID] = cloneOrder(*o)
	}
	return nil
}

func (r orderRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.orders.rows, id)
	return nil
}

func (r orderRepo) List(_ context.Context, scope access.Scope, f repository.ServiceOrderFilter) ([]*entity.ServiceOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.ServiceOrder
	for _, o := range r.s.st.orders.ordered() {
		if scope.Allows(o.Resource()) && (f.Status == "" || o.Status == f.Status) {
			out = append(out, ptr(cloneOrder(o)))
		}
	}
	return out, nil
}

// ── Notificaciones ──────────────────────────────────────────────────────────

type notificationRepo struct{ s *Store }

func (r notificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = r.s.st.notifications.nextID()
	r.s.st.notifications.rows[n.ID] = *n
	return nil
}

func (r notificationRepo) GetByID(_ context.Context, id int64) (*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.st.notifications.rows[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r notificationRepo) MarkRead(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n, ok := r.s.st.notifications.rows[id]; ok {
		n.IsRead = true
		r.s.st.notifications.rows[id] = n
	}
	return nil
}

func (r notificationRepo) MarkAllRead(_ context.Context, userID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	changed := 0
	for id, n := range r.s.st.notifications.rows {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			r.s.st.notifications.rows[id] = n
			changed++
		}
	}
	return changed, nil
}

func (r notificationRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.notifications.rows, id)
	return nil
}

// ListByUser más recientes primero, sin las vencidas.
func (r notificationRepo) ListByUser(_ context.Context, userID int64, f repository.NotificationFilter) ([]*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Notification
	for _, n := range r.s.st.notifications.ordered() {
		if n.UserID != userID || !n.IsVisibleAt(f.Now) || (f.UnreadOnly && n.IsRead) {
			continue
		}
		out = append(out, ptr(n))
	}
	slices.SortStableFunc(out, func(a, b *entity.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out, nil
}

func (r notificationRepo) CountUnread(_ context.Context, userID int64, now time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, notif := range r.s.st.notifications.rows {
		if notif.UserID == userID && !notif.IsRead && notif.IsVisibleAt(now) {
			n++
		}
	}
	return n, nil
}

// ── Departamentos ───────────────────────────────────────────────────────────

type departmentRepo struct{ s *Store }

func (r departmentRepo) nameTaken(name string, exceptID int64) bool {
	for id, d := range r.s.st.departments.rows {
		if id != exceptID && d.Name == name {
			return true
		}
	}
	return false
}

func (r departmentRepo) Create(_ context.Context, d *entity.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(d.Name, 0) {
		return fmt.Errorf("insert department: %w", domain.ErrConflict)
	}
	d.ID = r.s.st.departments.nextID()
	r.s.st.departments.rows[d.ID] = *d
	return nil
}

func (r departmentRepo) GetByID(_ context.Context, id int64) (*entity.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.st.departments.rows[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r departmentRepo) Update(_ context.Context, d *entity.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.departments.rows[d.ID]; !ok {
		return nil
	}
	if r.nameTaken(d.Name, d.ID) {
		return fmt.Errorf("update department: %w", domain.ErrConflict)
	}
	r.s.st.departments.rows[d.ID] = *d
	return nil
}

func (r departmentRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.departments.rows, id)
	for aid, a := range r.s.st.adminDepts.rows {
		if a.DepartmentID == id {
			delete(r.s.st.adminDepts.rows, aid)
		}
	}
	return nil
}

// List ordenado por nombre.
func (r departmentRepo) List(_ context.Context) ([]*entity.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Department
	for _, d := range r.s.st.departments.ordered() {
		out = append(out, ptr(d))
	}
	slices.SortStableFunc(out, func(a, b *entity.Department) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r departmentRepo) AssignAdmin(_ context.Context, a *entity.AdminDepartment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.adminDepts.rows {
		if existing.AdminID == a.AdminID && existing.DepartmentID == a.DepartmentID {
			return fmt.Errorf("assign admin: %w", domain.ErrConflict)
		}
	}
	a.ID = r.s.st.adminDepts.nextID()
	r.s.st.adminDepts.rows[a.ID] = *a
	return nil
}

func (r departmentRepo) UnassignAdmin(_ context.Context, departmentID, adminID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, a := range r.s.st.adminDepts.rows {
		if a.AdminID == adminID && a.DepartmentID == departmentID {
			delete(r.s.st.adminDepts.rows, id)
			return true, nil
		}
	}
	return false, nil
}

func (r departmentRepo) ListAdmins(_ context.Context, departmentID int64) ([]*entity.AdminDepartment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.AdminDepartment
	for _, a := range r.s.st.adminDepts.ordered() {
		if a.DepartmentID == departmentID {
			out = append(out, ptr(a))
		}
	}
	return out, nil
}

// ── Respaldos ───────────────────────────────────────────────────────────────

type backupRepo struct{ s *Store }

func (r backupRepo) Create(_ context.Context, b *entity.SystemBackup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.st.backups.nextID()
	r.s.st.backups.rows[b.ID] = *b
	return nil
}

func (r backupRepo) Update(_ context.Context, b *entity.SystemBackup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.backups.rows[b.ID]; ok {
		r.s.st.backups.rows[b.ID] = *b
	}
	return nil
}

// List más recientes primero.
func (r backupRepo) List(_ context.Context) ([]*entity.SystemBackup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.SystemBackup
	for _, b := range r.s.st.backups.ordered() {
		out = append(out, ptr(b))
	}
	slices.Reverse(out)
	return out, nil
}

// Snapshot vuelca las tablas principales con los campos básicos de cada fila.
func (r backupRepo) Snapshot(_ context.Context) (repository.Snapshot, error) {
	if r.s.SnapshotErr != nil {
		return nil, r.s.SnapshotErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := repository.Snapshot{"users": {}, "tasks": {}, "tickets": {}}
	for _, u := range r.s.st.users.ordered() {
		out["users"] = append(out["users"], map[string]any{"id": u.ID, "email": u.Email, "role": u.Role})
	}
	for _, t := range r.s.st.tasks.ordered() {
		out["tasks"] = append(out["tasks"], map[string]any{"id": t.ID, "title": t.Title, "status": t.Status})
	}
	for _, t := range r.s.st.tickets.ordered() {
		out["tickets"] = append(out["tickets"], map[string]any{"id": t.ID, "title": t.Title, "status": t.Status})
	}
	return out, nil
}
