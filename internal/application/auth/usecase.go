package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/jhoicas/gestion-ti-api/pkg/config"
	"github.com/jhoicas/gestion-ti-api/pkg/jwt"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, cambio de contraseña y alta del administrador inicial.
type AuthUseCase struct {
	store  repository.Store
	tx     usecase.TxRunner
	jwtCfg JWTConfig
	log    *logger.Logger
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(store repository.Store, tx usecase.TxRunner, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{store: store, tx: tx, jwtCfg: jwtCfg, log: log.Component("auth"), now: time.Now}
}

// Login verifica email/password, sella last_login_at y retorna token + usuario.
// Email inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !usecase.CheckPassword(user.PasswordHash, in.Password) {
		uc.log.Warn().Str("email", email).Msg("login rechazado: credenciales inválidas")
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if err := user.CanAuthenticate(); err != nil {
		uc.log.Warn().Int64("user_id", user.ID).Err(err).Msg("login rechazado")
		return nil, err
	}

	now := uc.now()
	if err := uc.tx.Run(ctx, func(s repository.Store) error {
		user.LastLoginAt = &now
		return s.Users().Update(ctx, user)
	}); err != nil {
		return nil, err
	}

	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   access.NormalizeRole(user.Role),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("login correcto")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      usecase.ToUserResponse(user),
	}, nil
}

// ChangePassword cambia la contraseña propia verificando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, caller access.Subject, in dto.ChangePasswordRequest) error {
	hash, err := usecase.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(s repository.Store) error {
		user, err := s.Users().GetByID(ctx, caller.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: %d", domain.ErrUserNotFound, caller.UserID)
		}
		if !usecase.CheckPassword(user.PasswordHash, in.CurrentPassword) {
			return fmt.Errorf("%w: la contraseña actual no es correcta", domain.ErrInvalidInput)
		}
		user.PasswordHash = hash
		user.UpdatedAt = uc.now()
		return s.Users().Update(ctx, user)
	})
}

// EnsureBootstrapAdmin garantiza que exista el super administrador inicial.
// Si el email ya existe lo promueve y reactiva; si no, lo crea con la contraseña configurada.
// Devuelve true cuando hubo que crearlo.
func (uc *AuthUseCase) EnsureBootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig) (*dto.UserResponse, bool, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" {
		return nil, false, fmt.Errorf("%w: BOOTSTRAP_ADMIN_EMAIL vacío", domain.ErrInvalidInput)
	}
	var (
		out     *entity.User
		created bool
	)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		existing, err := s.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		now := uc.now()
		if existing != nil {
			if access.NormalizeRole(existing.Role) != access.RoleSuperAdmin || !existing.IsActive || existing.IsSuspended {
				existing.Role = access.RoleSuperAdmin
				existing.IsActive = true
				existing.Unsuspend(now)
				if err := s.Users().Update(ctx, existing); err != nil {
					return err
				}
			}
			out = existing
			return nil
		}
		hash, err := usecase.HashPassword(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("BOOTSTRAP_ADMIN_PASSWORD: %w", err)
		}
		name := strings.TrimSpace(cfg.AdminName)
		if name == "" {
			name = email
		}
		out = &entity.User{
			Email:        email,
			PasswordHash: hash,
			Name:         name,
			Role:         access.RoleSuperAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		created = true
		return s.Users().Create(ctx, out)
	})
	if err != nil {
		return nil, false, err
	}
	if out.ID != cfg.AdminID {
		uc.log.Warn().Int64("user_id", out.ID).Int64("expected_id", cfg.AdminID).
			Msg("el administrador inicial no coincide con BOOTSTRAP_ADMIN_ID")
	}
	uc.log.Info().Int64("user_id", out.ID).Bool("created", created).Msg("administrador inicial verificado")
	resp := usecase.ToUserResponse(out)
	return &resp, created, nil
}
