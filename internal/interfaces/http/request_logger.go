package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/crm-api/pkg/logger"
)

// RequestLogger registra cada petición con zerolog y deja un sublogger con request_id
// en el contexto de usuario para que los handlers lo recuperen con logger.FromContext.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	httpLog := log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		zl :=httpLog.With().Str("request_id", reqID).Logger()
		c.SetUserContext(zl.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		evt := httpLog.Info()
		if status >= fiber.StatusInternalServerError {
			evt = httpLog.Error()
		} else if status >= fiber.StatusBadRequest {
			evt = httpLog.Warn()
		}
		evt = evt.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("request_id", reqID).
			Str("ip", c.IP())
		if userID := GetUserID(c); userID != "" {
			evt = evt.Str("user_id", userID)
		}
		evt.Msg("petición http")
		return nil
	}
}
