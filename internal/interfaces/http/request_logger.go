package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

// HTTPObserver recibe cada petición atendida (métricas).
type HTTPObserver interface {
	ObserveHTTP(method, path, status string, d time.Duration)
}

// RequestLogger registra cada petición con zerolog y la reporta al observador (puede ser nil).
// La etiqueta path es la plantilla de la ruta (/api/orders/:id) para acotar la cardinalidad.
func RequestLogger(log *logger.Logger, obs HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		path := c.Route().Path

		if obs != nil {
			obs.ObserveHTTP(c.Method(), path, strconv.Itoa(status), elapsed)
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("petición HTTP")
		return nil
	}
}
