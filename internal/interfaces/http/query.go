package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/report"
)

// queryTime lee un filtro de fecha opcional. Si el valor no se puede interpretar escribe el 400.
func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := dto.ParseTime(raw)
	if err != nil {
		_ = fail(c, fiber.StatusBadRequest, CodeValidation, key+": fecha inválida")
		return nil, errBadRequest
	}
	return &t, nil
}

// queryID lee un filtro de id opcional.
func queryID(c *fiber.Ctx, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		_ = fail(c, fiber.StatusBadRequest, CodeValidation, key+" debe ser un entero positivo")
		return nil, errBadRequest
	}
	return &id, nil
}

// queryBool acepta true/false/1/0; ausente equivale a false.
func queryBool(c *fiber.Ctx, key string) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		_ = fail(c, fiber.StatusBadRequest, CodeValidation, key+" debe ser booleano")
		return false, errBadRequest
	}
	return v, nil
}

// sendFile envía un documento exportado como adjunto.
func sendFile(c *fiber.Ctx, f *report.File) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Name+`"`)
	return c.Status(fiber.StatusOK).Send(f.Data)
}
