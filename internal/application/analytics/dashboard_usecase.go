// Package analytics contiene el resumen del dashboard principal.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen de tickets, tareas, agenda y avisos del llamador.
//
// Fuente de datos: repositorios (consultas read-only). Los conteos respetan el mismo
// scope que los listados.
type DashboardUseCase struct {
	store repository.Store
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store repository.Store) *DashboardUseCase {
	return &DashboardUseCase{store: store, now: time.Now}
}

// GetSummary construye el DashboardSummaryResponse para el llamador.
//
// Cinco consultas en paralelo:
//  1. Tickets().CountByStatus       → Tickets + OpenTickets
//  2. Tasks().CountByStatus         → Tasks + PendingTasks
//  3. CalendarEvents().CountBetween(hoy)
//  4. CalendarEvents().CountBetween(mes)
//  5. Notifications().CountUnread
//
// Más Users().Count solo para administradores.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, caller access.Subject) (*dto.DashboardSummaryResponse, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	type statusResult struct {
		counts map[string]int
		err    error
	}
	type countResult struct {
		n   int
		err error
	}

	ticketsCh := make(chan statusResult, 1)
	tasksCh := make(chan statusResult, 1)
	todayCh := make(chan countResult, 1)
	monthCh := make(chan countResult, 1)
	unreadCh := make(chan countResult, 1)

	go func() {
		counts, err := uc.store.Tickets().CountByStatus(ctx, access.ListScope(caller, true))
		ticketsCh <- statusResult{counts, err}
	}()
	go func() {
		counts, err := uc.store.Tasks().CountByStatus(ctx, access.ListScope(caller, false))
		tasksCh <- statusResult{counts, err}
	}()
	go func() {
		n, err := uc.store.CalendarEvents().CountBetween(ctx, access.ListScope(caller, false), todayStart, todayEnd)
		todayCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.store.CalendarEvents().CountBetween(ctx, access.ListScope(caller, false), monthStart, monthEnd)
		monthCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.store.Notifications().CountUnread(ctx, caller.UserID, now)
		unreadCh <- countResult{n, err}
	}()

	tickets := <-ticketsCh
	tasks := <-tasksCh
	today := <-todayCh
	month := <-monthCh
	unread := <-unreadCh

	if tickets.err != nil {
		return nil, fmt.Errorf("dashboard: tickets: %w", tickets.err)
	}
	if tasks.err != nil {
		return nil, fmt.Errorf("dashboard: tareas: %w", tasks.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: eventos de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: eventos del mes: %w", month.err)
	}
	if unread.err != nil {
		return nil, fmt.Errorf("dashboard: notificaciones: %w", unread.err)
	}

	summary := &dto.DashboardSummaryResponse{
		Tickets:             withAllStatuses(tickets.counts, entity.TicketStatusOpen, entity.TicketStatusInProgress, entity.TicketStatusResolved, entity.TicketStatusClosed),
		Tasks:               withAllStatuses(tasks.counts, entity.TaskStatusTodo, entity.TaskStatusInProgress, entity.TaskStatusReview, entity.TaskStatusDone),
		EventsToday:         today.n,
		EventsThisMonth:     month.n,
		UnreadNotifications: unread.n,
		GeneratedAt:         now,
	}
	summary.OpenTickets = summary.Tickets[entity.TicketStatusOpen] + summary.Tickets[entity.TicketStatusInProgress]
	summary.PendingTasks = summary.Tasks[entity.TaskStatusTodo] + summary.Tasks[entity.TaskStatusInProgress] + summary.Tasks[entity.TaskStatusReview]

	// ── Total de usuarios solo para administradores ────────────────────────────
	if access.HasAtLeast(caller.Role, access.RoleAdmin) {
		n, err := uc.store.Users().Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboard: usuarios: %w", err)
		}
		summary.TotalUsers = &n
	}
	return summary, nil
}

// withAllStatuses completa con 0 los estados sin filas.
func withAllStatuses(counts map[string]int, statuses ...string) map[string]int {
	out := make(map[string]int, len(statuses))
	for _, s := range statuses {
		out[s] = counts[s]
	}
	return out
}
