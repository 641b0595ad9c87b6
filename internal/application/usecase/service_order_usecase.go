package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var monthYearPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ServiceOrderUseCase casos de uso de órdenes de servicio.
type ServiceOrderUseCase struct {
	store repository.Store
	tx    TxRunner
	now   func() time.Time
}

// NewServiceOrderUseCase construye el caso de uso.
func NewServiceOrderUseCase(store repository.Store, tx TxRunner) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{store: store, tx: tx, now: time.Now}
}

// List órdenes visibles: propias y asignadas para usuarios estándar.
func (uc *ServiceOrderUseCase) List(ctx context.Context, caller access.Subject, f repository.ServiceOrderFilter) ([]dto.ServiceOrderResponse, error) {
	if f.Status != "" && !entity.IsValidServiceOrderStatus(f.Status) {
		return nil, invalid("status inválido")
	}
	list, err := uc.store.ServiceOrders().List(ctx, access.ListScope(caller, true), f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toServiceOrderResponse(o))
	}
	return out, nil
}

// Get obtiene una orden si el llamador puede verla.
func (uc *ServiceOrderUseCase) Get(ctx context.Context, caller access.Subject, id int64) (*dto.ServiceOrderResponse, error) {
	o, err := uc.store.ServiceOrders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, notFound("orden de servicio", id)
	}
	if err := access.Authorize(caller, access.ActionView, o.Resource()); err != nil {
		return nil, err
	}
	resp := toServiceOrderResponse(o)
	return &resp, nil
}

// Create crea una orden del llamador.
func (uc *ServiceOrderUseCase) Create(ctx context.Context, caller access.Subject, in dto.CreateServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.ClientName) == "" {
		return nil, invalid("title y client_name son obligatorios")
	}
	status := defaultString(in.Status, entity.ServiceOrderStatusPending)
	if !entity.IsValidServiceOrderStatus(status) {
		return nil, invalid("status inválido")
	}
	priority := defaultString(in.Priority, entity.PriorityMedium)
	if !entity.IsValidPriority(priority) {
		return nil, invalid("priority inválido")
	}
	if err := checkNonNegative("estimated_hours", in.EstimatedHours); err != nil {
		return nil, err
	}
	if err := checkNonNegative("hourly_rate", in.HourlyRate); err != nil {
		return nil, err
	}
	now := uc.now()
	o := &entity.ServiceOrder{
		Title:          in.Title,
		Description:    in.Description,
		ClientName:     in.ClientName,
		ClientEmail:    in.ClientEmail,
		ClientPhone:    in.ClientPhone,
		ServiceType:    in.ServiceType,
		Priority:       priority,
		EstimatedHours: in.EstimatedHours,
		HourlyRate:     in.HourlyRate,
		AssignedTo:     in.AssignedTo,
		MonthlyStatus:  map[string]entity.MonthlyStatus{},
		UserID:         int64Ptr(caller.UserID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	o.SetStatus(status, now)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := ensureUserExists(ctx, s, o.AssignedTo); err != nil {
			return err
		}
		return s.ServiceOrders().Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	resp := toServiceOrderResponse(o)
	return &resp, nil
}

// Update aplica solo los campos presentes.
func (uc *ServiceOrderUseCase) Update(ctx context.Context, caller access.Subject, id int64, in dto.UpdateServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := requireText("client_name", in.ClientName); err != nil {
		return nil, err
	}
	if err := requireEnum("status", in.Status, entity.IsValidServiceOrderStatus); err != nil {
		return nil, err
	}
	if err := requireEnum("priority", in.Priority, entity.IsValidPriority); err != nil {
		return nil, err
	}
	if err := checkNonNegative("estimated_hours", in.EstimatedHours.Ptr()); err != nil {
		return nil, err
	}
	if err := checkNonNegative("hourly_rate", in.HourlyRate.Ptr()); err != nil {
		return nil, err
	}
	var out *entity.ServiceOrder
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		o, err := s.ServiceOrders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return notFound("orden de servicio", id)
		}
		if err := access.Authorize(caller, access.ActionEdit, o.Resource()); err != nil {
			return err
		}
		now := uc.now()
		applyString(&o.Title, in.Title)
		applyNullable(&o.Description, in.Description)
		applyString(&o.ClientName, in.ClientName)
		applyNullable(&o.ClientEmail, in.ClientEmail)
		applyNullable(&o.ClientPhone, in.ClientPhone)
		applyNullable(&o.ServiceType, in.ServiceType)
		if in.Status.HasValue() {
			o.SetStatus(in.Status.Value, now)
		}
		applyString(&o.Priority, in.Priority)
		applyNullable(&o.EstimatedHours, in.EstimatedHours)
		applyNullable(&o.HourlyRate, in.HourlyRate)
		if in.AssignedTo.Set {
			o.AssignedTo = in.AssignedTo.Ptr()
			if err := ensureUserExists(ctx, s, o.AssignedTo); err != nil {
				return err
			}
		}
		o.UpdatedAt = now
		if err := s.ServiceOrders().Update(ctx, o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toServiceOrderResponse(out)
	return &resp, nil
}

// SetMonthlyStatus marca un mes (YYYY-MM) de la orden y devuelve la orden completa.
func (uc *ServiceOrderUseCase) SetMonthlyStatus(ctx context.Context, caller access.Subject, id int64, in dto.MonthlyStatusRequest) (*dto.ServiceOrderResponse, error) {
	if !monthYearPattern.MatchString(in.MonthYear) {
		return nil, invalid("month_year debe tener formato YYYY-MM")
	}
	var out *entity.ServiceOrder
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		o, err := s.ServiceOrders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return notFound("orden de servicio", id)
		}
		if err := access.Authorize(caller, access.ActionEdit, o.Resource()); err != nil {
			return err
		}
		now := uc.now()
		o.SetMonthlyStatus(in.MonthYear, in.Completed, now)
		o.UpdatedAt = now
		if err := s.ServiceOrders().Update(ctx, o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toServiceOrderResponse(out)
	return &resp, nil
}

// Delete elimina una orden.
func (uc *ServiceOrderUseCase) Delete(ctx context.Context, caller access.Subject, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		o, err := s.ServiceOrders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return notFound("orden de servicio", id)
		}
		if err := access.Authorize(caller, access.ActionDelete, o.Resource()); err != nil {
			return err
		}
		return s.ServiceOrders().Delete(ctx, id)
	})
}

func checkNonNegative(field string, d *decimal.Decimal) error {
	if d != nil && d.IsNegative() {
		return invalid("%s no puede ser negativo", field)
	}
	return nil
}

func toServiceOrderResponse(o *entity.ServiceOrder) dto.ServiceOrderResponse {
	monthly := o.MonthlyStatus
	if monthly == nil {
		monthly = map[string]entity.MonthlyStatus{}
	}
	return dto.ServiceOrderResponse{
		ID:             o.ID,
		Title:          o.Title,
		Description:    o.Description,
		ClientName:     o.ClientName,
		ClientEmail:    o.ClientEmail,
		ClientPhone:    o.ClientPhone,
		ServiceType:    o.ServiceType,
		Status:         o.Status,
		Priority:       o.Priority,
		EstimatedHours: o.EstimatedHours,
		HourlyRate:     o.HourlyRate,
		TotalCost:      o.TotalCost(),
		AssignedTo:     o.AssignedTo,
		MonthlyStatus:  monthly,
		CompletedAt:    o.CompletedAt,
		UserID:         o.UserID,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
