package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrReferenceNotFound  = errors.New("referencia inexistente")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrAccountInactive    = errors.New("la cuenta está inactiva")
	ErrAccountSuspended   = errors.New("la cuenta está suspendida")
	ErrProtectedUser      = errors.New("el administrador principal no puede modificarse")
)
