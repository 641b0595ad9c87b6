package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// RequestLogger registra cada petición (método, ruta, estado, latencia, request id, usuario)
// y alimenta las métricas HTTP. Resuelve el error de la cadena con el ErrorHandler de la app
// para que estado y log reflejen la respuesta final.
func RequestLogger(log *logger.Logger, m *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		latency := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		m.observeRequest(c.Method(), route, status, latency)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", latency).
			Str("request_id", requestID(c)).
			Int64("user_id", GetUserID(c)).
			Msg("http_request")
		return nil
	}
}
