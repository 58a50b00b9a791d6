package service

import (
	"context"
	"fmt"

	"github.com/hance08/ledger/internal/ledger"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

type TransactionService struct {
	repo     store.TransactionRepository
	engine   *ledger.Engine
	accounts *AccountService
	config   Config
}

// CreateTransfer moves money out of an account the requester owns.
func (ts *TransactionService) CreateTransfer(ctx context.Context, req Requester, in TransferInput) (*ledger.Result, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := ts.accounts.authorize(ctx, req, in.FromAccountID); err != nil {
		return nil, err
	}

	return ts.engine.Transfer(ctx, ledger.TransferRequest{
		FromAccountID:  in.FromAccountID,
		ToAccountID:    in.ToAccountID,
		Amount:         in.Amount,
		Currency:       currencyOr(in.Currency, ts.config.DefaultCurrency),
		IdempotencyKey: in.IdempotencyKey,
		Description:    in.Description,
		ReferenceID:    in.ReferenceID,
		Metadata:       in.Metadata,
	})
}

func (ts *TransactionService) CreateDeposit(ctx context.Context, req Requester, in DepositInput) (*ledger.Result, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := ts.accounts.authorize(ctx, req, in.AccountID); err != nil {
		return nil, err
	}

	return ts.engine.Deposit(ctx, ledger.DepositRequest{
		AccountID:      in.AccountID,
		Amount:         in.Amount,
		Currency:       currencyOr(in.Currency, ts.config.DefaultCurrency),
		IdempotencyKey: in.IdempotencyKey,
		Description:    in.Description,
		ReferenceID:    in.ReferenceID,
		Metadata:       in.Metadata,
	})
}

func (ts *TransactionService) CreateWithdrawal(ctx context.Context, req Requester, in WithdrawalInput) (*ledger.Result, error) {
	if err := DepositInput(in).validate(); err != nil {
		return nil, err
	}
	if err := ts.accounts.authorize(ctx, req, in.AccountID); err != nil {
		return nil, err
	}

	return ts.engine.Withdraw(ctx, ledger.WithdrawalRequest{
		AccountID:      in.AccountID,
		Amount:         in.Amount,
		Currency:       currencyOr(in.Currency, ts.config.DefaultCurrency),
		IdempotencyKey: in.IdempotencyKey,
		Description:    in.Description,
		ReferenceID:    in.ReferenceID,
		Metadata:       in.Metadata,
	})
}

func (ts *TransactionService) GetTransaction(ctx context.Context, req Requester, id string) (*model.Transaction, error) {
	if req.Operator {
		return ts.engine.Get(ctx, id)
	}
	return ts.engine.GetByID(ctx, id, req.ID)
}

// ListByAccount returns the account's history, newest first.
func (ts *TransactionService) ListByAccount(ctx context.Context, req Requester, accountID string, limit int) ([]*model.Transaction, error) {
	if _, err := ts.accounts.GetAccount(ctx, req, accountID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = ts.config.ListLimit
	}

	transactions, err := ts.repo.ListTransactionsByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list transactions: %v", ledger.ErrInternal, err)
	}
	return transactions, nil
}
