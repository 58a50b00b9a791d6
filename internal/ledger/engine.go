// Package ledger moves money between accounts. Every movement runs as one
// unit of work: accounts are locked in a fixed order, checked, debited and
// credited, and the transaction record is completed before commit.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hance08/ledger/internal/events"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

type TransferRequest struct {
	FromAccountID  string
	ToAccountID    string
	Amount         int64
	Currency       model.Currency
	IdempotencyKey string
	Description    string
	ReferenceID    string
	Metadata       map[string]string
}

type DepositRequest struct {
	AccountID      string
	Amount         int64
	Currency       model.Currency
	IdempotencyKey string
	Description    string
	ReferenceID    string
	Metadata       map[string]string
}

type WithdrawalRequest struct {
	AccountID      string
	Amount         int64
	Currency       model.Currency
	IdempotencyKey string
	Description    string
	ReferenceID    string
	Metadata       map[string]string
}

// Result is the outcome of a movement. Replayed is true when the
// idempotency key matched an earlier transaction and nothing was executed.
type Result struct {
	Transaction *model.Transaction `json:"transaction"`
	Replayed    bool               `json:"replayed"`
}

// Authorizer decides whether a requester owns an account.
type Authorizer interface {
	OwnsAccount(ctx context.Context, requesterID, accountID string) (bool, error)
}

type storeAuthorizer struct {
	repo store.AccountRepository
}

func (a storeAuthorizer) OwnsAccount(ctx context.Context, requesterID, accountID string) (bool, error) {
	acc, err := a.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return acc.OwnerID == requesterID, nil
}

type Engine struct {
	store      store.Store
	guard      idempotencyGuard
	authorizer Authorizer
	publisher  events.Publisher
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

type Option func(*Engine)

func WithPublisher(p events.Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func WithAuthorizer(a Authorizer) Option {
	return func(e *Engine) { e.authorizer = a }
}

func NewEngine(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:      s,
		guard:      idempotencyGuard{repo: s},
		authorizer: storeAuthorizer{repo: s},
		publisher:  events.Nop{},
		logger:     slog.Default(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// movement is the common shape of transfers, deposits and withdrawals.
type movement struct {
	txType      model.TransactionType
	from        string
	to          string
	amount      int64
	currency    model.Currency
	key         string
	description string
	referenceID string
	metadata    map[string]string
}

type leg struct {
	accountID string
	delta     int64
}

func (m movement) legs() []leg {
	var legs []leg
	if m.from != "" {
		legs = append(legs, leg{accountID: m.from, delta: -m.amount})
	}
	if m.to != "" {
		legs = append(legs, leg{accountID: m.to, delta: m.amount})
	}
	return legs
}

// matches reports whether tx records this movement.
func (m movement) matches(tx *model.Transaction) bool {
	return tx.Type == m.txType &&
		tx.Amount == m.amount &&
		tx.Currency == m.currency &&
		model.Deref(tx.FromAccountID) == m.from &&
		model.Deref(tx.ToAccountID) == m.to
}

func (m movement) accountIDs() []string {
	var ids []string
	for _, l := range m.legs() {
		ids = append(ids, l.accountID)
	}
	return ids
}

func (e *Engine) Transfer(ctx context.Context, req TransferRequest) (*Result, error) {
	return e.execute(ctx, movement{
		txType:      model.TypeTransfer,
		from:        req.FromAccountID,
		to:          req.ToAccountID,
		amount:      req.Amount,
		currency:    req.Currency,
		key:         req.IdempotencyKey,
		description: req.Description,
		referenceID: req.ReferenceID,
		metadata:    req.Metadata,
	})
}

func (e *Engine) Deposit(ctx context.Context, req DepositRequest) (*Result, error) {
	return e.execute(ctx, movement{
		txType:      model.TypeDeposit,
		to:          req.AccountID,
		amount:      req.Amount,
		currency:    req.Currency,
		key:         req.IdempotencyKey,
		description: req.Description,
		referenceID: req.ReferenceID,
		metadata:    req.Metadata,
	})
}

func (e *Engine) Withdraw(ctx context.Context, req WithdrawalRequest) (*Result, error) {
	return e.execute(ctx, movement{
		txType:      model.TypeWithdrawal,
		from:        req.AccountID,
		amount:      req.Amount,
		currency:    req.Currency,
		key:         req.IdempotencyKey,
		description: req.Description,
		referenceID: req.ReferenceID,
		metadata:    req.Metadata,
	})
}

func (e *Engine) execute(ctx context.Context, m movement) (*Result, error) {
	pending := &model.Transaction{
		ID:             e.newID(),
		Type:           m.txType,
		Status:         model.StatusPending,
		Amount:         m.amount,
		Currency:       m.currency,
		FromAccountID:  model.StringPtr(m.from),
		ToAccountID:    model.StringPtr(m.to),
		IdempotencyKey: model.StringPtr(m.key),
		Description:    m.description,
		ReferenceID:    m.referenceID,
		Metadata:       m.metadata,
	}
	if err := pending.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := e.guard.lookup(ctx, m.key)
	if err != nil {
		return nil, translate(err)
	}
	if existing != nil {
		return e.replay(m, existing)
	}

	// Once balances start moving the unit of work runs to commit or
	// rollback on its own; the lock timeout bounds it instead.
	ctx = context.WithoutCancel(ctx)

	var replayed *model.Transaction
	err = e.store.ExecTx(ctx, func(repo store.Repository) error {
		accounts, err := acquireLocks(ctx, repo, m.accountIDs()...)
		if err != nil {
			return err
		}

		if m.key != "" {
			prior, err := repo.GetTransactionByIdempotencyKey(ctx, m.key)
			if err == nil {
				replayed = prior
				return nil
			}
			if !isNotFound(err) {
				return err
			}
		}

		if err := checkAccounts(m, accounts); err != nil {
			return err
		}

		pending.CreatedAt = e.now().UTC()
		if err := repo.CreateTransaction(ctx, pending); err != nil {
			return err
		}

		for _, l := range m.legs() {
			if _, err := repo.UpdateBalance(ctx, l.accountID, l.delta); err != nil {
				if errors.Is(err, store.ErrNoRowAffected) {
					return classifyRejectedLeg(ctx, repo, l)
				}
				return err
			}
		}

		completedAt := e.now().UTC()
		if err := repo.CompleteTransaction(ctx, pending.ID, completedAt); err != nil {
			return err
		}
		pending.Status = model.StatusCompleted
		pending.CompletedAt = &completedAt
		return nil
	})

	if err != nil {
		if m.key != "" && errors.Is(err, store.ErrDuplicateIdempotencyKey) {
			winner, err := e.guard.resolveConflict(ctx, m.key)
			if err != nil {
				e.logger.Warn("idempotency conflict unresolved", "key", m.key, "error", err)
				return nil, translate(err)
			}
			return e.replay(m, winner)
		}

		err = translate(err)
		if errors.Is(err, ErrRetryable) {
			e.logger.Warn("transaction not applied, retryable", "type", m.txType, "error", err)
		}
		return nil, err
	}

	if replayed != nil {
		return e.replay(m, replayed)
	}

	e.logger.Info("transaction completed",
		"id", pending.ID,
		"type", pending.Type,
		"amount", pending.Amount,
		"currency", pending.Currency,
	)
	e.publish(ctx, pending)
	return &Result{Transaction: pending}, nil
}

// replay answers a repeated key with the stored transaction. A record that
// describes a different movement is withheld.
func (e *Engine) replay(m movement, tx *model.Transaction) (*Result, error) {
	if !m.matches(tx) {
		e.logger.Warn("idempotency key reused", "key", m.key, "type", m.txType)
		return nil, fmt.Errorf("%w: %q", ErrKeyReused, m.key)
	}

	e.logger.Info("idempotent replay", "id", tx.ID, "key", model.Deref(tx.IdempotencyKey), "status", tx.Status)
	return &Result{Transaction: tx, Replayed: true}, nil
}

// publish runs after commit. A delivery failure is logged and does not
// change the outcome of the transaction.
func (e *Engine) publish(ctx context.Context, tx *model.Transaction) {
	if err := e.publisher.Publish(ctx, events.NewTransactionCompleted(tx)); err != nil {
		e.logger.Error("failed to publish transaction event", "id", tx.ID, "error", err)
	}
}

// checkAccounts verifies the locked rows before any balance moves.
func checkAccounts(m movement, accounts map[string]*model.Account) error {
	for _, id := range m.accountIDs() {
		acc := accounts[id]
		if !acc.CanMutate() {
			return fmt.Errorf("%w: %s", ErrAccountInactive, id)
		}
		if acc.Currency != m.currency {
			return fmt.Errorf("%w: account %s holds %s, request is in %s",
				ErrCurrencyMismatch, id, acc.Currency, m.currency)
		}
	}

	if m.from != "" {
		if balance := accounts[m.from].Balance; balance < m.amount {
			return fmt.Errorf("%w: account %s has %d, needs %d",
				ErrInsufficientFunds, m.from, balance, m.amount)
		}
	}
	if m.to != "" {
		if balance := accounts[m.to].Balance; balance > math.MaxInt64-m.amount {
			return fmt.Errorf("%w: crediting %d would overflow the balance of account %s",
				ErrValidation, m.amount, m.to)
		}
	}
	return nil
}

// classifyRejectedLeg explains why the balance guard refused a leg.
func classifyRejectedLeg(ctx context.Context, repo store.AccountRepository, l leg) error {
	acc, err := repo.GetAccountByID(ctx, l.accountID)
	switch {
	case err != nil && isNotFound(err):
		return accountNotFound(l.accountID)
	case err != nil:
		return err
	case !acc.Active:
		return fmt.Errorf("%w: %s", ErrAccountInactive, l.accountID)
	default:
		return fmt.Errorf("%w: account %s", ErrInsufficientFunds, l.accountID)
	}
}

// GetByID returns the transaction when requesterID owns at least one of its
// accounts. A missing transaction and a foreign one look the same.
func (e *Engine) GetByID(ctx context.Context, transactionID, requesterID string) (*model.Transaction, error) {
	tx, err := e.Get(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	for _, accountID := range tx.AccountIDs() {
		owns, err := e.authorizer.OwnsAccount(ctx, requesterID, accountID)
		if err != nil {
			return nil, translate(err)
		}
		if owns {
			return tx, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
}

// Get reads a transaction without an ownership check.
func (e *Engine) Get(ctx context.Context, transactionID string) (*model.Transaction, error) {
	tx, err := e.store.GetTransactionByID(ctx, transactionID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
		}
		return nil, translate(err)
	}
	return tx, nil
}

// DeactivateAccount closes an account whose balance is zero.
func (e *Engine) DeactivateAccount(ctx context.Context, accountID string) (*model.Account, error) {
	ctx = context.WithoutCancel(ctx)

	err := e.store.ExecTx(ctx, func(repo store.Repository) error {
		accounts, err := acquireLocks(ctx, repo, accountID)
		if err != nil {
			return err
		}

		acc := accounts[accountID]
		if !acc.Active {
			return fmt.Errorf("%w: %s", ErrAccountInactive, accountID)
		}
		if acc.Balance != 0 {
			return fmt.Errorf("%w: %s holds %d", ErrBalanceNotZero, accountID, acc.Balance)
		}

		if err := repo.DeactivateAccount(ctx, accountID); err != nil {
			if errors.Is(err, store.ErrNoRowAffected) {
				return fmt.Errorf("%w: %s", ErrBalanceNotZero, accountID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	acc, err := e.store.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, translate(err)
	}
	e.logger.Info("account deactivated", "id", accountID)
	return acc, nil
}
