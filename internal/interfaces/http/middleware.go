package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/drvet-api/pkg/logger"
)

const localLogger = "logger"

// RequestLogger registra una línea por petición (método, ruta, status, latencia)
// y deja el logger en Locals para los handlers.
func RequestLogger(log *logger.Logger) fiber.Handler {
	httpLog := log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(localLogger, httpLog)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de fiber fije el status antes de loguear
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := httpLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = httpLog.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = httpLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}

func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
