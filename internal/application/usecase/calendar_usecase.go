package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

// CalendarUseCase casos de uso de la agenda, incluidas las series recurrentes.
type CalendarUseCase struct {
	store repository.Store
	tx    TxRunner
	now   func() time.Time
}

// NewCalendarUseCase construye el caso de uso.
func NewCalendarUseCase(store repository.Store, tx TxRunner) *CalendarUseCase {
	return &CalendarUseCase{store: store, tx: tx, now: time.Now}
}

// List devuelve los eventos visibles filtrados por rango de start_date y tipo.
func (uc *CalendarUseCase) List(ctx context.Context, caller access.Subject, f repository.CalendarFilter) ([]dto.CalendarEventResponse, error) {
	if f.EventType != "" && !entity.IsValidEventType(f.EventType) {
		return nil, invalid("event_type inválido")
	}
	list, err := uc.store.CalendarEvents().List(ctx, access.ListScope(caller, false), f)
	if err != nil {
		return nil, err
	}
	return toCalendarEventResponses(list), nil
}

// Get obtiene un evento si el llamador puede verlo.
func (uc *CalendarUseCase) Get(ctx context.Context, caller access.Subject, id int64) (*dto.CalendarEventResponse, error) {
	e, err := uc.store.CalendarEvents().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound("evento", id)
	}
	if err := access.Authorize(caller, access.ActionView, e.Resource()); err != nil {
		return nil, err
	}
	resp := toCalendarEventResponse(e)
	return &resp, nil
}

// Create crea un evento. Un evento recurrente sin recurrence_id recibe uno nuevo.
func (uc *CalendarUseCase) Create(ctx context.Context, caller access.Subject, in dto.CreateCalendarEventRequest) (*dto.CalendarEventResponse, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title es obligatorio")
	}
	start := in.StartDate.TimePtr()
	if start == nil {
		return nil, invalid("start_date es obligatorio")
	}
	eventType := defaultString(in.EventType, entity.EventTypeOther)
	if !entity.IsValidEventType(eventType) {
		return nil, invalid("event_type inválido")
	}
	now := uc.now()
	e := &entity.CalendarEvent{
		Title:             in.Title,
		Description:       in.Description,
		StartDate:         *start,
		EndDate:           in.EndDate.TimePtr(),
		AllDay:            in.AllDay,
		Location:          in.Location,
		EventType:         eventType,
		Equipment:         in.Equipment,
		Branch:            in.Branch,
		MaintenanceType:   in.MaintenanceType,
		RecurrenceID:      in.RecurrenceID,
		IsRecurring:       in.IsRecurring,
		RecurrencePattern: in.RecurrencePattern,
		UserID:            int64Ptr(caller.UserID),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if e.IsRecurring && e.RecurrenceID == nil {
		e.RecurrenceID = strPtr(uuid.NewString())
	}
	if err := checkEventRange(e); err != nil {
		return nil, err
	}
	if err := uc.tx.Run(ctx, func(s repository.Store) error {
		return s.CalendarEvents().Create(ctx, e)
	}); err != nil {
		return nil, err
	}
	resp := toCalendarEventResponse(e)
	return &resp, nil
}

// Update aplica un parche parcial a un único evento.
func (uc *CalendarUseCase) Update(ctx context.Context, caller access.Subject, id int64, in dto.UpdateCalendarEventRequest) (*dto.CalendarEventResponse, error) {
	res, err := uc.UpdateRecurring(ctx, caller, id, dto.UpdateRecurringRequest{UpdateCalendarEventRequest: in})
	if err != nil {
		return nil, err
	}
	return &res.Events[0], nil
}

// UpdateRecurring aplica el parche al evento o, con update_all y recurrence_id, a toda la
// serie. Cada fila se autoriza por separado; una sola denegación aborta la operación.
func (uc *CalendarUseCase) UpdateRecurring(ctx context.Context, caller access.Subject, id int64, in dto.UpdateRecurringRequest) (*dto.RecurringUpdateResponse, error) {
	patch := in.UpdateCalendarEventRequest
	if err := validateEventPatch(patch); err != nil {
		return nil, err
	}
	var updated []*entity.CalendarEvent
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		group, err := eventGroup(ctx, s, id, in.UpdateAll)
		if err != nil {
			return err
		}
		now := uc.now()
		shift := newSeriesShift(anchorEvent(group, id), patch)
		for _, e := range group {
			if err := access.Authorize(caller, access.ActionEdit, e.Resource()); err != nil {
				return err
			}
			applyEventPatch(e, patch)
			shift.apply(e)
			if err := checkEventRange(e); err != nil {
				return err
			}
			e.UpdatedAt = now
			if err := s.CalendarEvents().Update(ctx, e); err != nil {
				return err
			}
		}
		updated = group
		return nil
	})
	if err != nil {
		return nil, err
	}
	msg := "Evento actualizado"
	if len(updated) > 1 {
		msg = "Serie de eventos actualizada"
	}
	return &dto.RecurringUpdateResponse{Message: msg, Count: len(updated), Events: toCalendarEventResponses(updated)}, nil
}

// Delete elimina un único evento.
func (uc *CalendarUseCase) Delete(ctx context.Context, caller access.Subject, id int64) error {
	_, err := uc.DeleteRecurring(ctx, caller, id, false)
	return err
}

// DeleteRecurring elimina el evento o toda su serie. Devuelve cuántos se borraron.
func (uc *CalendarUseCase) DeleteRecurring(ctx context.Context, caller access.Subject, id int64, deleteAll bool) (int, error) {
	count := 0
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		group, err := eventGroup(ctx, s, id, deleteAll)
		if err != nil {
			return err
		}
		for _, e := range group {
			if err := access.Authorize(caller, access.ActionDelete, e.Resource()); err != nil {
				return err
			}
		}
		for _, e := range group {
			if err := s.CalendarEvents().Delete(ctx, e.ID); err != nil {
				return err
			}
		}
		count = len(group)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// eventGroup carga el evento y, si all y tiene recurrence_id, toda su serie.
func eventGroup(ctx context.Context, s repository.Store, id int64, all bool) ([]*entity.CalendarEvent, error) {
	e, err := s.CalendarEvents().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound("evento", id)
	}
	if !all || e.RecurrenceID == nil || *e.RecurrenceID == "" {
		return []*entity.CalendarEvent{e}, nil
	}
	group, err := s.CalendarEvents().ListByRecurrence(ctx, *e.RecurrenceID)
	if err != nil {
		return nil, err
	}
	if len(group) == 0 {
		return []*entity.CalendarEvent{e}, nil
	}
	return group, nil
}

func validateEventPatch(p dto.UpdateCalendarEventRequest) error {
	if err := requireText("title", p.Title); err != nil {
		return err
	}
	if err := requireEnum("event_type", p.EventType, entity.IsValidEventType); err != nil {
		return err
	}
	if p.StartDate.Set && dto.OptionalTime(p.StartDate) == nil {
		return invalid("start_date no puede ser nulo")
	}
	if p.AllDay.Set && p.AllDay.Null {
		return invalid("all_day no puede ser nulo")
	}
	return nil
}

func applyEventPatch(e *entity.CalendarEvent, p dto.UpdateCalendarEventRequest) {
	applyString(&e.Title, p.Title)
	applyNullable(&e.Description, p.Description)
	if p.AllDay.HasValue() {
		e.AllDay = p.AllDay.Value
	}
	applyNullable(&e.Location, p.Location)
	applyString(&e.EventType, p.EventType)
	applyNullable(&e.Equipment, p.Equipment)
	applyNullable(&e.Branch, p.Branch)
	applyNullable(&e.MaintenanceType, p.MaintenanceType)
	applyNullable(&e.RecurrencePattern, p.RecurrencePattern)
}

// anchorEvent devuelve la fila editada dentro del grupo.
func anchorEvent(group []*entity.CalendarEvent, id int64) *entity.CalendarEvent {
	for _, e := range group {
		if e.ID == id {
			return e
		}
	}
	return group[0]
}

// seriesShift traslada las fechas del parche a cada fila del grupo. La fila editada queda
// con las fechas pedidas; las demás se mueven el mismo intervalo y toman la misma duración,
// de modo que la serie conserva su espaciado.
type seriesShift struct {
	delta    time.Duration
	setEnd   bool
	duration *time.Duration // nil con setEnd: end_date pasa a nulo
}

func newSeriesShift(anchor *entity.CalendarEvent, p dto.UpdateCalendarEventRequest) seriesShift {
	start := anchor.StartDate
	if v := dto.OptionalTime(p.StartDate); v != nil {
		start = *v
	}
	sh := seriesShift{delta: start.Sub(anchor.StartDate), setEnd: p.EndDate.Set}
	if end := dto.OptionalTime(p.EndDate); end != nil {
		d := end.Sub(start)
		sh.duration = &d
	}
	return sh
}

func (sh seriesShift) apply(e *entity.CalendarEvent) {
	e.StartDate = e.StartDate.Add(sh.delta)
	switch {
	case sh.setEnd && sh.duration == nil:
		e.EndDate = nil
	case sh.setEnd:
		end := e.StartDate.Add(*sh.duration)
		e.EndDate = &end
	case e.EndDate != nil:
		end := e.EndDate.Add(sh.delta)
		e.EndDate = &end
	}
}

func checkEventRange(e *entity.CalendarEvent) error {
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return invalid("end_date no puede ser anterior a start_date")
	}
	return nil
}

func toCalendarEventResponses(list []*entity.CalendarEvent) []dto.CalendarEventResponse {
	out := make([]dto.CalendarEventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toCalendarEventResponse(e))
	}
	return out
}

func toCalendarEventResponse(e *entity.CalendarEvent) dto.CalendarEventResponse {
	return dto.CalendarEventResponse{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		StartDate:         e.StartDate,
		EndDate:           e.EndDate,
		AllDay:            e.AllDay,
		Location:          e.Location,
		EventType:         e.EventType,
		Equipment:         e.Equipment,
		Branch:            e.Branch,
		MaintenanceType:   e.MaintenanceType,
		RecurrenceID:      e.RecurrenceID,
		IsRecurring:       e.IsRecurring,
		RecurrencePattern: e.RecurrencePattern,
		UserID:            e.UserID,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
