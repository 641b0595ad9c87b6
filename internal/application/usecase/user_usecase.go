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
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// UserUseCase gestión de cuentas con la política de access.CanManageUser.
type UserUseCase struct {
	store          repository.Store
	tx             TxRunner
	bootstrapAdmin int64
	log            *logger.Logger
	now            func() time.Time
}

// NewUserUseCase construye el caso de uso. bootstrapAdminID es la cuenta protegida.
func NewUserUseCase(store repository.Store, tx TxRunner, bootstrapAdminID int64, log *logger.Logger) *UserUseCase {
	return &UserUseCase{store: store, tx: tx, bootstrapAdmin: bootstrapAdminID, log: log.Component("users"), now: time.Now}
}

// Roles catálogo de roles canónicos.
func (uc *UserUseCase) Roles() []dto.RoleResponse {
	catalog := access.Catalog()
	out := make([]dto.RoleResponse, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, dto.RoleResponse{Code: r.Code, Name: r.Name, Description: r.Description, Level: r.Level})
	}
	return out
}

// List todos los usuarios. Solo administradores.
func (uc *UserUseCase) List(ctx context.Context, caller access.Subject) ([]dto.UserResponse, error) {
	if !access.HasAtLeast(caller.Role, access.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// Get obtiene un usuario: el propio o cualquiera para administradores.
func (uc *UserUseCase) Get(ctx context.Context, caller access.Subject, id int64) (*dto.UserResponse, error) {
	u, err := uc.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, id)
	}
	if err := access.AuthorizeUser(caller, access.UserView, u.Account(uc.bootstrapAdmin)); err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// Create crea una cuenta. Sin password se genera una temporal que se devuelve una sola vez.
func (uc *UserUseCase) Create(ctx context.Context, caller access.Subject, in dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Name) == "" {
		return nil, invalid("email y name son obligatorios")
	}
	if in.Role != "" && !access.IsKnownRole(in.Role) {
		return nil, invalid("role inválido")
	}
	role := access.NormalizeRole(in.Role)
	if !access.CanCreateUser(caller, role) {
		return nil, fmt.Errorf("%w: no puede crear usuarios con rol %s", domain.ErrForbidden, role)
	}
	password := in.Password
	var temporary *string
	if password == "" {
		generated, err := GenerateTemporaryPassword()
		if err != nil {
			return nil, err
		}
		password = generated
		temporary = &generated
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	u := &entity.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		IsActive:     true,
		CreatedBy:    int64Ptr(caller.UserID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(s repository.Store) error {
		existing, err := s.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		return s.Users().Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", u.ID).Str("role", u.Role).Int64("created_by", caller.UserID).Msg("usuario creado")
	return &dto.CreateUserResponse{UserResponse: ToUserResponse(u), TemporaryPassword: temporary}, nil
}

// Update aplica un parche. Todo parche, incluso vacío, exige poder editar el perfil;
// cambiar rol o estado exige además su propia operación.
func (uc *UserUseCase) Update(ctx context.Context, caller access.Subject, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	if err := requireText("email", in.Email); err != nil {
		return nil, err
	}
	if err := requireEnum("role", in.Role, access.IsKnownRole); err != nil {
		return nil, err
	}
	if in.IsActive.Set && in.IsActive.Null {
		return nil, invalid("is_active no puede ser nulo")
	}
	var out *entity.User
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		u, err := loadUser(ctx, s, id)
		if err != nil {
			return err
		}
		target := u.Account(uc.bootstrapAdmin)
		if err := access.AuthorizeUser(caller, access.UserUpdateProfile, target); err != nil {
			return err
		}
		if in.Role.HasValue() && access.NormalizeRole(in.Role.Value) != access.NormalizeRole(u.Role) {
			if err := access.AuthorizeUser(caller, access.UserChangeRole, target); err != nil {
				return err
			}
			u.Role = access.NormalizeRole(in.Role.Value)
		}
		if in.IsActive.HasValue() && in.IsActive.Value != u.IsActive {
			if err := access.AuthorizeUser(caller, access.UserToggleStatus, target); err != nil {
				return err
			}
			u.IsActive = in.IsActive.Value
		}
		if in.Name.HasValue() {
			u.Name = strings.TrimSpace(in.Name.Value)
		}
		if in.Email.HasValue() {
			email := normalizeEmail(in.Email.Value)
			if email != u.Email {
				other, err := s.Users().GetByEmail(ctx, email)
				if err != nil {
					return err
				}
				if other != nil {
					return domain.ErrEmailAlreadyExists
				}
				u.Email = email
			}
		}
		u.UpdatedAt = uc.now()
		if err := s.Users().Update(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(out)
	return &resp, nil
}

// ToggleStatus invierte is_active.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, caller access.Subject, id int64) (*dto.UserResponse, error) {
	return uc.mutate(ctx, caller, id, access.UserToggleStatus, func(u *entity.User, now time.Time) error {
		u.IsActive = !u.IsActive
		u.UpdatedAt = now
		return nil
	})
}

// Suspend suspende la cuenta con un motivo.
func (uc *UserUseCase) Suspend(ctx context.Context, caller access.Subject, id int64, reason string) (*dto.UserResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, invalid("reason es obligatorio")
	}
	resp, err := uc.mutate(ctx, caller, id, access.UserSuspend, func(u *entity.User, now time.Time) error {
		if u.IsSuspended {
			return fmt.Errorf("%w: el usuario ya está suspendido", domain.ErrConflict)
		}
		u.Suspend(reason, caller.UserID, now)
		return nil
	})
	if err == nil {
		uc.log.Warn().Int64("user_id", id).Int64("suspended_by", caller.UserID).Str("reason", reason).Msg("usuario suspendido")
	}
	return resp, err
}

// Unsuspend levanta la suspensión. Solo super_admin.
func (uc *UserUseCase) Unsuspend(ctx context.Context, caller access.Subject, id int64) (*dto.UserResponse, error) {
	resp, err := uc.mutate(ctx, caller, id, access.UserUnsuspend, func(u *entity.User, now time.Time) error {
		if !u.IsSuspended {
			return fmt.Errorf("%w: el usuario no está suspendido", domain.ErrConflict)
		}
		u.Unsuspend(now)
		return nil
	})
	if err == nil {
		uc.log.Info().Int64("user_id", id).Int64("unsuspended_by", caller.UserID).Msg("suspensión levantada")
	}
	return resp, err
}

// ResetPassword fija una nueva contraseña sin pedir la actual.
func (uc *UserUseCase) ResetPassword(ctx context.Context, caller access.Subject, id int64, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = uc.mutate(ctx, caller, id, access.UserResetPassword, func(u *entity.User, now time.Time) error {
		u.PasswordHash = hash
		u.UpdatedAt = now
		return nil
	})
	return err
}

// Delete elimina una cuenta. Solo super_admin, nunca la propia ni la protegida.
func (uc *UserUseCase) Delete(ctx context.Context, caller access.Subject, id int64) error {
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		u, err := loadUser(ctx, s, id)
		if err != nil {
			return err
		}
		if err := access.AuthorizeUser(caller, access.UserDelete, u.Account(uc.bootstrapAdmin)); err != nil {
			return err
		}
		return s.Users().Delete(ctx, id)
	})
	if err == nil {
		uc.log.Warn().Int64("user_id", id).Int64("deleted_by", caller.UserID).Msg("usuario eliminado")
	}
	return err
}

func (uc *UserUseCase) mutate(ctx context.Context, caller access.Subject, id int64, op access.UserOp, fn func(u *entity.User, now time.Time) error) (*dto.UserResponse, error) {
	var out *entity.User
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		u, err := loadUser(ctx, s, id)
		if err != nil {
			return err
		}
		if err := access.AuthorizeUser(caller, op, u.Account(uc.bootstrapAdmin)); err != nil {
			return err
		}
		if err := fn(u, uc.now()); err != nil {
			return err
		}
		if err := s.Users().Update(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(out)
	return &resp, nil
}

func loadUser(ctx context.Context, s repository.Store, id int64) (*entity.User, error) {
	u, err := s.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, id)
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToUserResponse convierte la entidad sin exponer el hash.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Role:             access.NormalizeRole(u.Role),
		IsActive:         u.IsActive,
		IsSuspended:      u.IsSuspended,
		SuspensionReason: u.SuspensionReason,
		SuspendedBy:      u.SuspendedBy,
		SuspendedAt:      u.SuspendedAt,
		CreatedBy:        u.CreatedBy,
		LastLoginAt:      u.LastLoginAt,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
