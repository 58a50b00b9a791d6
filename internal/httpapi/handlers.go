package httpapi

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hance08/ledger/internal/ledger"
	"github.com/hance08/ledger/internal/service"
)

type handler struct {
	svc *service.Service
}

func (h *handler) createAccount(c *fiber.Ctx) error {
	var in service.CreateAccountInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	acc, err := h.svc.Account.CreateAccount(c.UserContext(), requesterFrom(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(acc)
}

func (h *handler) listAccounts(c *fiber.Ctx) error {
	accounts, err := h.svc.Account.ListAccounts(c.UserContext(), requesterFrom(c), "", c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"accounts": accounts})
}

func (h *handler) getAccount(c *fiber.Ctx) error {
	acc, err := h.svc.Account.GetAccount(c.UserContext(), requesterFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(acc)
}

func (h *handler) deactivateAccount(c *fiber.Ctx) error {
	acc, err := h.svc.Account.DeactivateAccount(c.UserContext(), requesterFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(acc)
}

func (h *handler) listTransactions(c *fiber.Ctx) error {
	txs, err := h.svc.Transaction.ListByAccount(c.UserContext(), requesterFrom(c), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"transactions": txs})
}

func (h *handler) transfer(c *fiber.Ctx) error {
	var in service.TransferInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	in.IdempotencyKey = idempotencyKey(c, in.IdempotencyKey)

	res, err := h.svc.Transaction.CreateTransfer(c.UserContext(), requesterFrom(c), in)
	if err != nil {
		return err
	}
	return writeResult(c, res)
}

func (h *handler) deposit(c *fiber.Ctx) error {
	var in service.DepositInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	in.IdempotencyKey = idempotencyKey(c, in.IdempotencyKey)

	res, err := h.svc.Transaction.CreateDeposit(c.UserContext(), requesterFrom(c), in)
	if err != nil {
		return err
	}
	return writeResult(c, res)
}

func (h *handler) withdraw(c *fiber.Ctx) error {
	var in service.WithdrawalInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	in.IdempotencyKey = idempotencyKey(c, in.IdempotencyKey)

	res, err := h.svc.Transaction.CreateWithdrawal(c.UserContext(), requesterFrom(c), in)
	if err != nil {
		return err
	}
	return writeResult(c, res)
}

func (h *handler) getTransaction(c *fiber.Ctx) error {
	tx, err := h.svc.Transaction.GetTransaction(c.UserContext(), requesterFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(tx)
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: invalid body: %v", ledger.ErrValidation, err)
	}
	return nil
}

// idempotencyKey prefers the header over a key sent in the body.
func idempotencyKey(c *fiber.Ctx, fromBody string) string {
	if key := strings.TrimSpace(c.Get(HeaderIdempotencyKey)); key != "" {
		return key
	}
	return fromBody
}

// writeResult answers 201 for a new transaction and 200 for a replay.
func writeResult(c *fiber.Ctx, res *ledger.Result) error {
	if res.Replayed {
		c.Set(HeaderIdempotentReplay, "true")
		return c.Status(fiber.StatusOK).JSON(res.Transaction)
	}
	return c.Status(fiber.StatusCreated).JSON(res.Transaction)
}
