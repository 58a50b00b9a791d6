package service

import (
	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/ledger"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

type Config struct {
	DefaultCurrency model.Currency
	ListLimit       int
}

// Requester is the identity a call is made on behalf of. Operators act on
// any account; everyone else only on accounts they own.
type Requester struct {
	ID       string
	Operator bool
}

// Operator is the requester the CLI acts as.
func Operator() Requester {
	return Requester{ID: constants.OperatorID, Operator: true}
}

func (r Requester) canAccess(acc *model.Account) bool {
	return r.Operator || acc.OwnerID == r.ID
}

type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Config      Config
}

// NewService wires the engine to s with account ownership as its
// authorizer. opts are applied after that and may override it.
func NewService(s store.Store, cfg Config, opts ...ledger.Option) *Service {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = model.USD
	}

	accounts := &AccountService{repo: s, config: cfg}
	engine := ledger.NewEngine(s, append([]ledger.Option{ledger.WithAuthorizer(accounts)}, opts...)...)
	accounts.engine = engine

	return &Service{
		Account:     accounts,
		Transaction: &TransactionService{repo: s, engine: engine, accounts: accounts, config: cfg},
		Config:      cfg,
	}
}
