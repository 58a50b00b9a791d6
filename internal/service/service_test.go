package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/ledger"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store/memory"
)

var (
	alice    = Requester{ID: "alice"}
	bob      = Requester{ID: "bob"}
	operator = Requester{ID: constants.OperatorID, Operator: true}
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(memory.NewStore(time.Second), Config{DefaultCurrency: model.USD, ListLimit: 50})
}

func mustCreate(t *testing.T, svc *Service, req Requester, in CreateAccountInput) *model.Account {
	t.Helper()

	acc, err := svc.Account.CreateAccount(context.Background(), req, in)
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	return acc
}

func TestCreateAccountWithOpeningBalance(t *testing.T) {
	svc := newTestService(t)

	acc := mustCreate(t, svc, alice, CreateAccountInput{Name: "Checking", InitialBalance: 12500})

	if acc.OwnerID != "alice" {
		t.Errorf("owner = %q, want alice", acc.OwnerID)
	}
	if acc.Currency != model.USD {
		t.Errorf("currency = %s, want default USD", acc.Currency)
	}
	if acc.Balance != 12500 || acc.Version != 1 {
		t.Errorf("balance=%d version=%d, want 12500 and 1", acc.Balance, acc.Version)
	}

	history, err := svc.Transaction.ListByAccount(context.Background(), alice, acc.ID, 0)
	if err != nil {
		t.Fatalf("ListByAccount failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history has %d entries, want 1", len(history))
	}
	if history[0].Type != model.TypeDeposit || history[0].Description != constants.OpeningBalanceMemo {
		t.Errorf("opening entry = %+v", history[0])
	}
}

func TestCreateAccountRejections(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name string
		req  Requester
		in   CreateAccountInput
		want error
	}{
		{"empty name", alice, CreateAccountInput{Name: " "}, ledger.ErrValidation},
		{"bad currency", alice, CreateAccountInput{Name: "x", Currency: "ABC"}, ledger.ErrValidation},
		{"negative seed", alice, CreateAccountInput{Name: "x", InitialBalance: -1}, ledger.ErrValidation},
		{"foreign owner", alice, CreateAccountInput{Name: "x", OwnerID: "bob"}, ledger.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Account.CreateAccount(context.Background(), tt.req, tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOperatorOpensAccountForOwner(t *testing.T) {
	svc := newTestService(t)

	acc := mustCreate(t, svc, operator, CreateAccountInput{OwnerID: "carol", Name: "Payroll", Currency: "eur"})
	if acc.OwnerID != "carol" || acc.Currency != model.EUR {
		t.Errorf("got owner %q currency %s", acc.OwnerID, acc.Currency)
	}
}

func TestAccountVisibility(t *testing.T) {
	svc := newTestService(t)
	acc := mustCreate(t, svc, alice, CreateAccountInput{Name: "Savings"})
	mustCreate(t, svc, bob, CreateAccountInput{Name: "Bob's"})

	if _, err := svc.Account.GetAccount(context.Background(), bob, acc.ID); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Errorf("bob reading alice's account: got %v, want ErrAccountNotFound", err)
	}
	if _, err := svc.Account.GetAccount(context.Background(), operator, acc.ID); err != nil {
		t.Errorf("operator read failed: %v", err)
	}

	mine, err := svc.Account.ListAccounts(context.Background(), alice, "bob", 0)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != acc.ID {
		t.Errorf("alice sees %d accounts, want only her own", len(mine))
	}

	all, err := svc.Account.ListAccounts(context.Background(), operator, "", 0)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("operator sees %d accounts, want 2", len(all))
	}
}

func TestTransferAuthorization(t *testing.T) {
	svc := newTestService(t)
	from := mustCreate(t, svc, alice, CreateAccountInput{Name: "A", InitialBalance: 1000})
	to := mustCreate(t, svc, bob, CreateAccountInput{Name: "B"})

	tests := []struct {
		name string
		req  Requester
		in   TransferInput
		want error
	}{
		{"stranger", bob, TransferInput{FromAccountID: from.ID, ToAccountID: to.ID, Amount: 10}, ledger.ErrForbidden},
		{"missing source", alice, TransferInput{FromAccountID: "nope", ToAccountID: to.ID, Amount: 10}, ledger.ErrAccountNotFound},
		{"zero amount", alice, TransferInput{FromAccountID: from.ID, ToAccountID: to.ID}, ledger.ErrValidation},
		{"same account", alice, TransferInput{FromAccountID: from.ID, ToAccountID: from.ID, Amount: 5}, ledger.ErrValidation},
		{"too much", alice, TransferInput{FromAccountID: from.ID, ToAccountID: to.ID, Amount: 1001}, ledger.ErrInsufficientFunds},
		{"wrong currency", alice, TransferInput{FromAccountID: from.ID, ToAccountID: to.ID, Amount: 1, Currency: "EUR"}, ledger.ErrCurrencyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transaction.CreateTransfer(context.Background(), tt.req, tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	res, err := svc.Transaction.CreateTransfer(context.Background(), alice, TransferInput{
		FromAccountID: from.ID, ToAccountID: to.ID, Amount: 400, IdempotencyKey: "pay-1",
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	// The recipient can read the transfer, a third party can't.
	if _, err := svc.Transaction.GetTransaction(context.Background(), bob, res.Transaction.ID); err != nil {
		t.Errorf("recipient read failed: %v", err)
	}
	stranger := Requester{ID: "mallory"}
	if _, err := svc.Transaction.GetTransaction(context.Background(), stranger, res.Transaction.ID); !errors.Is(err, ledger.ErrTransactionNotFound) {
		t.Errorf("stranger read: got %v, want ErrTransactionNotFound", err)
	}
}

func TestDepositAndWithdrawal(t *testing.T) {
	svc := newTestService(t)
	acc := mustCreate(t, svc, alice, CreateAccountInput{Name: "Wallet", Currency: "JPY"})

	if _, err := svc.Transaction.CreateDeposit(context.Background(), alice, DepositInput{
		AccountID: acc.ID, Amount: 3000, Currency: "JPY",
	}); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if _, err := svc.Transaction.CreateWithdrawal(context.Background(), alice, WithdrawalInput{
		AccountID: acc.ID, Amount: 5000, Currency: "JPY",
	}); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Errorf("over-withdrawal: got %v, want ErrInsufficientFunds", err)
	}

	if _, err := svc.Transaction.CreateWithdrawal(context.Background(), alice, WithdrawalInput{
		AccountID: acc.ID, Amount: 1000, Currency: "JPY",
	}); err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}

	got, err := svc.Account.GetAccount(context.Background(), alice, acc.ID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if got.Balance != 2000 {
		t.Errorf("balance = %d, want 2000", got.Balance)
	}
}

func TestDeactivateAccount(t *testing.T) {
	svc := newTestService(t)
	acc := mustCreate(t, svc, alice, CreateAccountInput{Name: "Old"})

	if _, err := svc.Account.DeactivateAccount(context.Background(), bob, acc.ID); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Errorf("bob deactivating: got %v, want ErrAccountNotFound", err)
	}

	closed, err := svc.Account.DeactivateAccount(context.Background(), alice, acc.ID)
	if err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if closed.Active {
		t.Error("account still active")
	}
}

func TestReusedKeyDoesNotExposeAnotherOwnersTransaction(t *testing.T) {
	svc := newTestService(t)
	alicesAccount := mustCreate(t, svc, alice, CreateAccountInput{Name: "A", InitialBalance: 5000})
	bobsAccount := mustCreate(t, svc, bob, CreateAccountInput{Name: "B"})

	if _, err := svc.Transaction.CreateWithdrawal(context.Background(), alice, WithdrawalInput{
		AccountID: alicesAccount.ID, Amount: 1234, IdempotencyKey: "k1",
	}); err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}

	res, err := svc.Transaction.CreateDeposit(context.Background(), bob, DepositInput{
		AccountID: bobsAccount.ID, Amount: 700, IdempotencyKey: "k1",
	})
	if !errors.Is(err, ledger.ErrKeyReused) {
		t.Fatalf("got %v, want ErrKeyReused", err)
	}
	if res != nil {
		t.Errorf("reused key returned %+v", res.Transaction)
	}
	if ledger.CodeOf(err) != ledger.CodeKeyReused {
		t.Errorf("code = %s, want %s", ledger.CodeOf(err), ledger.CodeKeyReused)
	}
	if strings.Contains(err.Error(), alicesAccount.ID) {
		t.Errorf("error leaks the other account: %v", err)
	}

	got, err := svc.Account.GetAccount(context.Background(), bob, bobsAccount.ID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if got.Balance != 0 {
		t.Errorf("balance = %d, want 0", got.Balance)
	}

	// The owner repeating the same request still gets the replay.
	replay, err := svc.Transaction.CreateWithdrawal(context.Background(), alice, WithdrawalInput{
		AccountID: alicesAccount.ID, Amount: 1234, IdempotencyKey: "k1",
	})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !replay.Replayed {
		t.Error("repeat not flagged as replayed")
	}
}
