package httpapi

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/hance08/ledger/internal/ledger"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var statusByCode = map[ledger.Code]int{
	ledger.CodeBadRequest:        fiber.StatusBadRequest,
	ledger.CodeAccountNotFound:   fiber.StatusNotFound,
	ledger.CodeNotFound:          fiber.StatusNotFound,
	ledger.CodeForbidden:         fiber.StatusForbidden,
	ledger.CodeInsufficientFunds: fiber.StatusUnprocessableEntity,
	ledger.CodeCurrencyMismatch:  fiber.StatusUnprocessableEntity,
	ledger.CodeAccountInactive:   fiber.StatusConflict,
	ledger.CodeBalanceNotZero:    fiber.StatusConflict,
	ledger.CodeKeyReused:         fiber.StatusConflict,
	ledger.CodeRetryable:         fiber.StatusServiceUnavailable,
	ledger.CodeInternal:          fiber.StatusInternalServerError,
}

func statusOf(err error) int {
	return statusByCode[ledger.CodeOf(err)]
}

func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(errorResponse{Code: fiberCode(fe.Code), Message: fe.Message})
		}

		code := ledger.CodeOf(err)
		message := err.Error()
		if code == ledger.CodeInternal {
			logger.Error("request failed", "path", c.Path(), "error", err)
			message = "internal error"
		}
		return c.Status(statusByCode[code]).JSON(errorResponse{Code: string(code), Message: message})
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusNotFound:
		return string(ledger.CodeNotFound)
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return string(ledger.CodeBadRequest)
	default:
		return string(ledger.CodeInternal)
	}
}
