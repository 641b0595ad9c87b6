package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// JournalUseCase casos de uso de la bitácora de trabajo.
type JournalUseCase struct {
	store repository.Store
	tx    TxRunner
	now   func() time.Time
}

// NewJournalUseCase construye el caso de uso.
func NewJournalUseCase(store repository.Store, tx TxRunner) *JournalUseCase {
	return &JournalUseCase{store: store, tx: tx, now: time.Now}
}

// List entradas visibles, más recientes primero.
func (uc *JournalUseCase) List(ctx context.Context, caller access.Subject, f repository.JournalFilter) ([]dto.JournalEntryResponse, error) {
	list, err := uc.list(ctx, caller, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.JournalEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toJournalEntryResponse(e))
	}
	return out, nil
}

func (uc *JournalUseCase) list(ctx context.Context, caller access.Subject, f repository.JournalFilter) ([]*entity.JournalEntry, error) {
	if f.Category != "" && !entity.IsValidJournalCategory(f.Category) {
		return nil, invalid("category inválido")
	}
	if f.Status != "" && !entity.IsValidJournalStatus(f.Status) {
		return nil, invalid("status inválido")
	}
	return uc.store.Journal().List(ctx, access.ListScope(caller, false), f)
}

// Stats agrega las entradas visibles: total, horas, y conteos por categoría y estado.
func (uc *JournalUseCase) Stats(ctx context.Context, caller access.Subject, f repository.JournalFilter) (*dto.JournalStatsResponse, error) {
	list, err := uc.list(ctx, caller, f)
	if err != nil {
		return nil, err
	}
	stats := &dto.JournalStatsResponse{
		TotalHours: decimal.Zero,
		Categories: make(map[string]int),
		Statuses:   make(map[string]int),
	}
	for _, e := range list {
		stats.TotalEntries++
		if e.HoursWorked != nil {
			stats.TotalHours = stats.TotalHours.Add(*e.HoursWorked)
		}
		stats.Categories[e.Category]++
		stats.Statuses[e.Status]++
	}
	return stats, nil
}

// Get obtiene una entrada si el llamador puede verla.
func (uc *JournalUseCase) Get(ctx context.Context, caller access.Subject, id int64) (*dto.JournalEntryResponse, error) {
	e, err := uc.store.Journal().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound("entrada de bitácora", id)
	}
	if err := access.Authorize(caller, access.ActionView, e.Resource()); err != nil {
		return nil, err
	}
	resp := toJournalEntryResponse(e)
	return &resp, nil
}

// Create crea una entrada. entry_date por defecto es hoy.
func (uc *JournalUseCase) Create(ctx context.Context, caller access.Subject, in dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, invalid("title y content son obligatorios")
	}
	category := defaultString(in.Category, entity.JournalCategoryWork)
	if !entity.IsValidJournalCategory(category) {
		return nil, invalid("category inválido")
	}
	priority := defaultString(in.Priority, entity.PriorityMedium)
	if !entity.IsValidPriority(priority) {
		return nil, invalid("priority inválido")
	}
	status := defaultString(in.Status, entity.JournalStatusPending)
	if !entity.IsValidJournalStatus(status) {
		return nil, invalid("status inválido")
	}
	if err := checkNonNegative("hours_worked", in.HoursWorked); err != nil {
		return nil, err
	}
	now := uc.now()
	entryDate := truncateDate(now)
	if in.EntryDate != nil && !in.EntryDate.IsZero() {
		entryDate = in.EntryDate.Time
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	e := &entity.JournalEntry{
		Title:       in.Title,
		Content:     in.Content,
		EntryDate:   entryDate,
		Category:    category,
		Priority:    priority,
		Status:      status,
		HoursWorked: in.HoursWorked,
		Location:    in.Location,
		Tags:        tags,
		UserID:      int64Ptr(caller.UserID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tx.Run(ctx, func(s repository.Store) error {
		return s.Journal().Create(ctx, e)
	}); err != nil {
		return nil, err
	}
	resp := toJournalEntryResponse(e)
	return &resp, nil
}

// Update aplica solo los campos presentes.
func (uc *JournalUseCase) Update(ctx context.Context, caller access.Subject, id int64, in dto.UpdateJournalEntryRequest) (*dto.JournalEntryResponse, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := requireText("content", in.Content); err != nil {
		return nil, err
	}
	if err := requireEnum("category", in.Category, entity.IsValidJournalCategory); err != nil {
		return nil, err
	}
	if err := requireEnum("priority", in.Priority, entity.IsValidPriority); err != nil {
		return nil, err
	}
	if err := requireEnum("status", in.Status, entity.IsValidJournalStatus); err != nil {
		return nil, err
	}
	if in.EntryDate.Set && (in.EntryDate.Null || in.EntryDate.Value.IsZero()) {
		return nil, invalid("entry_date no puede ser nulo")
	}
	if err := checkNonNegative("hours_worked", in.HoursWorked.Ptr()); err != nil {
		return nil, err
	}
	var out *entity.JournalEntry
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		e, err := s.Journal().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return notFound("entrada de bitácora", id)
		}
		if err := access.Authorize(caller, access.ActionEdit, e.Resource()); err != nil {
			return err
		}
		applyString(&e.Title, in.Title)
		applyString(&e.Content, in.Content)
		if in.EntryDate.HasValue() {
			e.EntryDate = in.EntryDate.Value.Time
		}
		applyString(&e.Category, in.Category)
		applyString(&e.Priority, in.Priority)
		applyString(&e.Status, in.Status)
		applyNullable(&e.HoursWorked, in.HoursWorked)
		applyNullable(&e.Location, in.Location)
		if in.Tags.Set {
			e.Tags = in.Tags.Value
			if e.Tags == nil {
				e.Tags = []string{}
			}
		}
		e.UpdatedAt = uc.now()
		if err := s.Journal().Update(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toJournalEntryResponse(out)
	return &resp, nil
}

// Delete elimina una entrada.
func (uc *JournalUseCase) Delete(ctx context.Context, caller access.Subject, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		e, err := s.Journal().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return notFound("entrada de bitácora", id)
		}
		if err := access.Authorize(caller, access.ActionDelete, e.Resource()); err != nil {
			return err
		}
		return s.Journal().Delete(ctx, id)
	})
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toJournalEntryResponse(e *entity.JournalEntry) dto.JournalEntryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.JournalEntryResponse{
		ID:          e.ID,
		Title:       e.Title,
		Content:     e.Content,
		EntryDate:   dto.Date{Time: e.EntryDate},
		Category:    e.Category,
		Priority:    e.Priority,
		Status:      e.Status,
		HoursWorked: e.HoursWorked,
		Location:    e.Location,
		Tags:        tags,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
