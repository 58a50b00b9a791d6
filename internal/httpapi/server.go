// Package httpapi exposes the ledger over HTTP with fiber.
package httpapi

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hance08/ledger/internal/service"
)

const (
	HeaderOwnerID          = "X-Owner-ID"
	HeaderIdempotencyKey   = "Idempotency-Key"
	HeaderIdempotentReplay = "Idempotent-Replayed"
)

type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New builds the fiber application with every route registered.
func New(svc *service.Service, logger *slog.Logger, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	h := &handler{svc: svc}

	api := app.Group("/v1", requireOwner())
	api.Post("/accounts", h.createAccount)
	api.Get("/accounts", h.listAccounts)
	api.Get("/accounts/:id", h.getAccount)
	api.Delete("/accounts/:id", h.deactivateAccount)
	api.Get("/accounts/:id/transactions", h.listTransactions)

	api.Post("/transfers", h.transfer)
	api.Post("/deposits", h.deposit)
	api.Post("/withdrawals", h.withdraw)
	api.Get("/transactions/:id", h.getTransaction)

	return app
}
