package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

const (
	defaultCurrency     = "USD"
	defaultReminderDays = 7
)

// PaymentReminderUseCase casos de uso de recordatorios de pago.
type PaymentReminderUseCase struct {
	store repository.Store
	tx    TxRunner
	now   func() time.Time
}

// NewPaymentReminderUseCase construye el caso de uso.
func NewPaymentReminderUseCase(store repository.Store, tx TxRunner) *PaymentReminderUseCase {
	return &PaymentReminderUseCase{store: store, tx: tx, now: time.Now}
}

// List recordatorios visibles ordenados por ID.
func (uc *PaymentReminderUseCase) List(ctx context.Context, caller access.Subject, f repository.ReminderFilter) ([]dto.PaymentReminderResponse, error) {
	if f.Status != "" && !entity.IsValidReminderStatus(f.Status) {
		return nil, invalid("status inválido")
	}
	list, err := uc.store.PaymentReminders().List(ctx, access.ListScope(caller, false), f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentReminderResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentReminderResponse(p))
	}
	return out, nil
}

// Get obtiene un recordatorio si el llamador puede verlo.
func (uc *PaymentReminderUseCase) Get(ctx context.Context, caller access.Subject, id int64) (*dto.PaymentReminderResponse, error) {
	p, err := uc.store.PaymentReminders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("recordatorio", id)
	}
	if err := access.Authorize(caller, access.ActionView, p.Resource()); err != nil {
		return nil, err
	}
	resp := toPaymentReminderResponse(p)
	return &resp, nil
}

// Create crea un recordatorio. Moneda USD, recurrencia one_time y 7 días de aviso por defecto.
func (uc *PaymentReminderUseCase) Create(ctx context.Context, caller access.Subject, in dto.CreatePaymentReminderRequest) (*dto.PaymentReminderResponse, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title es obligatorio")
	}
	if in.Amount == nil || in.Amount.IsNegative() {
		return nil, invalid("amount es obligatorio y no puede ser negativo")
	}
	due := in.DueDate.TimePtr()
	if due == nil {
		return nil, invalid("due_date es obligatorio")
	}
	status := defaultString(in.Status, entity.ReminderStatusPending)
	if !entity.IsValidReminderStatus(status) {
		return nil, invalid("status inválido")
	}
	recurrence := defaultString(in.Recurrence, entity.RecurrenceOneTime)
	if !entity.IsValidRecurrence(recurrence) {
		return nil, invalid("recurrence inválido")
	}
	currency := strings.ToUpper(defaultString(in.Currency, defaultCurrency))
	if len(currency) != 3 {
		return nil, invalid("currency debe tener 3 letras")
	}
	days := defaultReminderDays
	if in.ReminderDays != nil {
		days = *in.ReminderDays
	}
	if days < 0 || days > 365 {
		return nil, invalid("reminder_days debe estar entre 0 y 365")
	}
	now := uc.now()
	p := &entity.PaymentReminder{
		Title:        in.Title,
		Description:  in.Description,
		Amount:       *in.Amount,
		Currency:     currency,
		DueDate:      *due,
		Status:       status,
		Recurrence:   recurrence,
		ReminderDays: days,
		UserID:       int64Ptr(caller.UserID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == entity.ReminderStatusPaid {
		p.PaidAt = &now
	}
	if err := uc.tx.Run(ctx, func(s repository.Store) error {
		return s.PaymentReminders().Create(ctx, p)
	}); err != nil {
		return nil, err
	}
	resp := toPaymentReminderResponse(p)
	return &resp, nil
}

// Update aplica solo los campos presentes.
func (uc *PaymentReminderUseCase) Update(ctx context.Context, caller access.Subject, id int64, in dto.UpdatePaymentReminderRequest) (*dto.PaymentReminderResponse, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := requireEnum("status", in.Status, entity.IsValidReminderStatus); err != nil {
		return nil, err
	}
	if err := requireEnum("recurrence", in.Recurrence, entity.IsValidRecurrence); err != nil {
		return nil, err
	}
	if in.Amount.Set && (in.Amount.Null || in.Amount.Value.IsNegative()) {
		return nil, invalid("amount no puede ser nulo ni negativo")
	}
	if in.DueDate.Set && dto.OptionalTime(in.DueDate) == nil {
		return nil, invalid("due_date no puede ser nulo")
	}
	if in.Currency.Set && (in.Currency.Null || len(in.Currency.Value) != 3) {
		return nil, invalid("currency debe tener 3 letras")
	}
	if in.ReminderDays.Set && (in.ReminderDays.Null || in.ReminderDays.Value < 0 || in.ReminderDays.Value > 365) {
		return nil, invalid("reminder_days debe estar entre 0 y 365")
	}
	var out *entity.PaymentReminder
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := s.PaymentReminders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound("recordatorio", id)
		}
		if err := access.Authorize(caller, access.ActionEdit, p.Resource()); err != nil {
			return err
		}
		now := uc.now()
		applyString(&p.Title, in.Title)
		applyNullable(&p.Description, in.Description)
		if in.Amount.HasValue() {
			p.Amount = in.Amount.Value
		}
		if in.Currency.HasValue() {
			p.Currency = strings.ToUpper(in.Currency.Value)
		}
		if due := dto.OptionalTime(in.DueDate); due != nil {
			p.DueDate = *due
		}
		if in.Status.HasValue() {
			setReminderStatus(p, in.Status.Value, now)
		}
		applyString(&p.Recurrence, in.Recurrence)
		if in.ReminderDays.HasValue() {
			p.ReminderDays = in.ReminderDays.Value
		}
		p.UpdatedAt = now
		if err := s.PaymentReminders().Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toPaymentReminderResponse(out)
	return &resp, nil
}

// Pay marca el recordatorio como pagado. Si es recurrente crea el siguiente pendiente con
// el vencimiento adelantado en la misma transacción.
func (uc *PaymentReminderUseCase) Pay(ctx context.Context, caller access.Subject, id int64) (*dto.PayReminderResponse, error) {
	var paid, next *entity.PaymentReminder
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := s.PaymentReminders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound("recordatorio", id)
		}
		if err := access.Authorize(caller, access.ActionEdit, p.Resource()); err != nil {
			return err
		}
		if p.Status == entity.ReminderStatusPaid || p.Status == entity.ReminderStatusCancelled {
			return fmt.Errorf("%w: el recordatorio está en estado %s", domain.ErrConflict, p.Status)
		}
		now := uc.now()
		setReminderStatus(p, entity.ReminderStatusPaid, now)
		p.UpdatedAt = now
		if err := s.PaymentReminders().Update(ctx, p); err != nil {
			return err
		}
		paid = p

		due, ok := p.NextDueDate()
		if !ok {
			return nil
		}
		next = &entity.PaymentReminder{
			Title:        p.Title,
			Description:  p.Description,
			Amount:       p.Amount,
			Currency:     p.Currency,
			DueDate:      due,
			Status:       entity.ReminderStatusPending,
			Recurrence:   p.Recurrence,
			ReminderDays: p.ReminderDays,
			UserID:       p.UserID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return s.PaymentReminders().Create(ctx, next)
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.PayReminderResponse{Reminder: toPaymentReminderResponse(paid)}
	if next != nil {
		n := toPaymentReminderResponse(next)
		resp.Next = &n
	}
	return resp, nil
}

// Delete elimina un recordatorio.
func (uc *PaymentReminderUseCase) Delete(ctx context.Context, caller access.Subject, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := s.PaymentReminders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound("recordatorio", id)
		}
		if err := access.Authorize(caller, access.ActionDelete, p.Resource()); err != nil {
			return err
		}
		return s.PaymentReminders().Delete(ctx, id)
	})
}

func setReminderStatus(p *entity.PaymentReminder, status string, now time.Time) {
	if status == entity.ReminderStatusPaid && p.Status != entity.ReminderStatusPaid {
		p.PaidAt = &now
	}
	if status != entity.ReminderStatusPaid {
		p.PaidAt = nil
	}
	p.Status = status
}

func toPaymentReminderResponse(p *entity.PaymentReminder) dto.PaymentReminderResponse {
	return dto.PaymentReminderResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Amount:       p.Amount,
		Currency:     p.Currency,
		DueDate:      p.DueDate,
		Status:       p.Status,
		Recurrence:   p.Recurrence,
		ReminderDays: p.ReminderDays,
		PaidAt:       p.PaidAt,
		UserID:       p.UserID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
