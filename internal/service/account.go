package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/ledger"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
	"github.com/hance08/ledger/internal/validation"
)

type AccountService struct {
	repo   store.AccountRepository
	engine *ledger.Engine
	config Config
}

// CreateAccount opens an account. A positive InitialBalance is booked as
// an opening-balance deposit so the seed shows up in the history.
func (as *AccountService) CreateAccount(ctx context.Context, req Requester, in CreateAccountInput) (*model.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	ownerID := req.ID
	if in.OwnerID != "" && in.OwnerID != req.ID {
		if !req.Operator {
			return nil, fmt.Errorf("%w: can't open accounts for another owner", ledger.ErrForbidden)
		}
		ownerID = in.OwnerID
	}
	if err := validation.ValidateOwnerID(ownerID); err != nil {
		return nil, invalid(err)
	}

	now := time.Now().UTC()
	acc := &model.Account{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(in.Name),
		Currency:  currencyOr(in.Currency, as.config.DefaultCurrency),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := as.repo.CreateAccount(ctx, acc); err != nil {
		return nil, fmt.Errorf("%w: failed to create account: %v", ledger.ErrInternal, err)
	}

	if in.InitialBalance > 0 {
		_, err := as.engine.Deposit(ctx, ledger.DepositRequest{
			AccountID:      acc.ID,
			Amount:         in.InitialBalance,
			Currency:       acc.Currency,
			IdempotencyKey: "opening:" + acc.ID,
			Description:    constants.OpeningBalanceMemo,
		})
		if err != nil {
			return nil, fmt.Errorf("account %s created but opening balance failed: %w", acc.ID, err)
		}
	}

	return as.getAccount(ctx, acc.ID)
}

// GetAccount hides accounts the requester may not see behind not-found.
func (as *AccountService) GetAccount(ctx context.Context, req Requester, id string) (*model.Account, error) {
	acc, err := as.getAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.canAccess(acc) {
		return nil, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, id)
	}
	return acc, nil
}

// ListAccounts lists the requester's accounts. Operators may list any
// owner, or everyone with an empty ownerID.
func (as *AccountService) ListAccounts(ctx context.Context, req Requester, ownerID string, limit int) ([]*model.Account, error) {
	if !req.Operator {
		ownerID = req.ID
	}
	if limit <= 0 {
		limit = as.config.ListLimit
	}

	accounts, err := as.repo.ListAccounts(ctx, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list accounts: %v", ledger.ErrInternal, err)
	}
	return accounts, nil
}

func (as *AccountService) DeactivateAccount(ctx context.Context, req Requester, id string) (*model.Account, error) {
	if _, err := as.GetAccount(ctx, req, id); err != nil {
		return nil, err
	}
	return as.engine.DeactivateAccount(ctx, id)
}

// OwnsAccount lets the engine authorize reads by account ownership.
func (as *AccountService) OwnsAccount(ctx context.Context, requesterID, accountID string) (bool, error) {
	acc, err := as.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return acc.OwnerID == requesterID, nil
}

// authorize checks that req may move money out of (or into) accountID.
// Missing accounts are reported as such; foreign ones as forbidden.
func (as *AccountService) authorize(ctx context.Context, req Requester, accountID string) error {
	if req.Operator {
		return nil
	}

	acc, err := as.getAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if acc.OwnerID != req.ID {
		return fmt.Errorf("%w: account %s belongs to another owner", ledger.ErrForbidden, accountID)
	}
	return nil
}

func (as *AccountService) getAccount(ctx context.Context, id string) (*model.Account, error) {
	acc, err := as.repo.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ledger.ErrInternal, err)
	}
	return acc, nil
}
