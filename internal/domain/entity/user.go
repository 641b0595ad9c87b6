package entity

import (
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
)

// User representa una cuenta del sistema.
type User struct {
	ID               int64
	Email            string
	PasswordHash     string // bcrypt hash, nunca plano en dominio después de persistir
	Name             string
	Role             string // super_admin, admin, usuario
	IsActive         bool
	IsSuspended      bool
	SuspensionReason *string
	SuspendedBy      *int64
	SuspendedAt      *time.Time
	CreatedBy        *int64
	LastLoginAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanAuthenticate rechaza cuentas inactivas o suspendidas.
func (u *User) CanAuthenticate() error {
	if u.IsSuspended {
		return domain.ErrAccountSuspended
	}
	if !u.IsActive {
		return domain.ErrAccountInactive
	}
	return nil
}

// Account descriptor para la política de gestión de usuarios.
func (u *User) Account(bootstrapAdminID int64) access.Account {
	return access.Account{UserID: u.ID, Role: u.Role, Protected: u.ID == bootstrapAdminID}
}

// Suspend marca la cuenta como suspendida por actorID.
func (u *User) Suspend(reason string, actorID int64, now time.Time) {
	u.IsSuspended = true
	u.SuspensionReason = &reason
	u.SuspendedBy = int64Ptr(actorID)
	u.SuspendedAt = &now
	u.UpdatedAt = now
}

// Unsuspend limpia los datos de suspensión.
func (u *User) Unsuspend(now time.Time) {
	u.IsSuspended = false
	u.SuspensionReason = nil
	u.SuspendedBy = nil
	u.SuspendedAt = nil
	u.UpdatedAt = now
}
