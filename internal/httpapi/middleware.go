package httpapi

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hance08/ledger/internal/service"
)

const requesterKey = "requester"

// requireOwner turns the X-Owner-ID header into a request-scoped Requester.
func requireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID := strings.TrimSpace(c.Get(HeaderOwnerID))
		if ownerID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing "+HeaderOwnerID+" header")
		}

		c.Locals(requesterKey, service.Requester{ID: ownerID})
		return c.Next()
	}
}

func requesterFrom(c *fiber.Ctx) service.Requester {
	req, _ := c.Locals(requesterKey).(service.Requester)
	return req
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = statusOf(err)
			}
		}

		logger.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
		)
		return err
	}
}
