package dto

import "time"

// CreateUserRequest entrada para crear un usuario. Sin password se genera una temporal.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"omitempty,max=50"`
}

// UpdateUserRequest actualización parcial de un usuario.
type UpdateUserRequest struct {
	Email    Optional[string] `json:"email"`
	Name     Optional[string] `json:"name"`
	Role     Optional[string] `json:"role"`
	IsActive Optional[bool]   `json:"is_active"`
}

// SuspendUserRequest motivo de la suspensión.
type SuspendUserRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// ResetPasswordRequest nueva contraseña fijada por un administrador o el propio usuario.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// ChangePasswordRequest cambio de contraseña propio.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Role             string     `json:"role"`
	IsActive         bool       `json:"is_active"`
	IsSuspended      bool       `json:"is_suspended"`
	SuspensionReason *string    `json:"suspension_reason"`
	SuspendedBy      *int64     `json:"suspended_by"`
	SuspendedAt      *time.Time `json:"suspended_at"`
	CreatedBy        *int64     `json:"created_by"`
	LastLoginAt      *time.Time `json:"last_login_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateUserResponse incluye la contraseña temporal cuando se generó una.
type CreateUserResponse struct {
	UserResponse
	TemporaryPassword *string `json:"temporary_password"`
}

// RoleResponse entrada del catálogo de roles.
type RoleResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int    `json:"level"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token firmado más los datos del usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// IdentityResponse identidad del llamador (GET /api/auth/verify).
type IdentityResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
