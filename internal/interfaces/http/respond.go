package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// Códigos estables del sobre de error.
const (
	CodeInvalidBody       = "INVALID_BODY"
	CodeValidation        = "VALIDATION"
	CodeReferenceNotFound = "REFERENCE_NOT_FOUND"
	CodeMissingToken      = "MISSING_TOKEN"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeProtectedUser     = "PROTECTED_USER"
	CodeAccountInactive   = "ACCOUNT_INACTIVE"
	CodeAccountSuspended  = "ACCOUNT_SUSPENDED"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
	CodeInternal          = "INTERNAL"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: los sentinelas más específicos van primero.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, CodeValidation},
	{domain.ErrReferenceNotFound, fiber.StatusBadRequest, CodeReferenceNotFound},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, CodeUnauthorized},
	{domain.ErrAccountInactive, fiber.StatusForbidden, CodeAccountInactive},
	{domain.ErrAccountSuspended, fiber.StatusForbidden, CodeAccountSuspended},
	{domain.ErrProtectedUser, fiber.StatusForbidden, CodeProtectedUser},
	{domain.ErrForbidden, fiber.StatusForbidden, CodeForbidden},
	{domain.ErrUserNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, CodeEmailExists},
	{domain.ErrConflict, fiber.StatusConflict, CodeConflict},
}

// respondError traduce un error de los casos de uso al sobre {error, code}.
// Los errores no clasificados responden 500 con un mensaje genérico y se registran
// junto con el request id.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return fail(c, m.status, m.code, err.Error())
		}
	}
	log.Error().Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return fail(c, fiber.StatusInternalServerError, CodeInternal, "error interno del servidor")
}

// fail escribe el sobre de error con el status indicado.
func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler maneja los errores que llegan a Fiber sin pasar por respondError
// (rutas inexistentes, métodos no permitidos, pánicos recuperados).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = CodeNotFound
			case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				code = CodeInvalidBody
			case fiber.StatusTooManyRequests:
				code = CodeTooManyRequests
			}
			if fe.Code < fiber.StatusInternalServerError {
				return fail(c, fe.Code, code, fe.Message)
			}
		}
		return respondError(c, log, err)
	}
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return v
	}
	return ""
}
