package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

func seed(t *testing.T, s *Store, id string, balance int64) {
	t.Helper()

	now := time.Now().UTC()
	err := s.CreateAccount(context.Background(), &model.Account{
		ID: id, OwnerID: "owner", Name: id, Currency: model.USD,
		Balance: balance, Active: true, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("failed to seed %s: %v", id, err)
	}
}

func balance(t *testing.T, s *Store, id string) int64 {
	t.Helper()

	acc, err := s.GetAccountByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to read %s: %v", id, err)
	}
	return acc.Balance
}

func TestUncommittedChangesStayPrivate(t *testing.T) {
	s := NewStore(time.Second)
	seed(t, s, "a", 1000)
	errAbort := errors.New("abort")

	err := s.ExecTx(context.Background(), func(repo store.Repository) error {
		if _, err := repo.UpdateBalance(context.Background(), "a", -400); err != nil {
			return err
		}
		if err := repo.DeactivateAccount(context.Background(), "a"); !errors.Is(err, store.ErrNoRowAffected) {
			t.Errorf("deactivate with balance: got %v, want ErrNoRowAffected", err)
		}

		inside, err := repo.GetAccountByID(context.Background(), "a")
		if err != nil {
			return err
		}
		if inside.Balance != 600 {
			t.Errorf("balance inside = %d, want 600", inside.Balance)
		}
		if got := balance(t, s, "a"); got != 1000 {
			t.Errorf("balance outside = %d, want committed 1000", got)
		}

		listed, err := s.ListAccounts(context.Background(), "owner", 10)
		if err != nil {
			return err
		}
		if len(listed) != 1 || listed[0].Balance != 1000 {
			t.Errorf("listed outside = %+v, want committed balance", listed)
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("got %v, want errAbort", err)
	}

	acc, err := s.GetAccountByID(context.Background(), "a")
	if err != nil {
		t.Fatalf("GetAccountByID failed: %v", err)
	}
	if acc.Balance != 1000 || acc.Version != 0 {
		t.Errorf("after rollback balance=%d version=%d, want 1000 and 0", acc.Balance, acc.Version)
	}
}

func TestCommitPublishesChanges(t *testing.T) {
	s := NewStore(time.Second)
	seed(t, s, "a", 1000)
	seed(t, s, "b", 0)

	err := s.ExecTx(context.Background(), func(repo store.Repository) error {
		if _, err := repo.UpdateBalance(context.Background(), "a", -1000); err != nil {
			return err
		}
		if _, err := repo.UpdateBalance(context.Background(), "b", 1000); err != nil {
			return err
		}
		return repo.DeactivateAccount(context.Background(), "a")
	})
	if err != nil {
		t.Fatalf("ExecTx failed: %v", err)
	}

	a, err := s.GetAccountByID(context.Background(), "a")
	if err != nil {
		t.Fatalf("GetAccountByID failed: %v", err)
	}
	if a.Balance != 0 || a.Active || a.Version != 1 {
		t.Errorf("a = balance %d active %v version %d, want 0 false 1", a.Balance, a.Active, a.Version)
	}
	if got := balance(t, s, "b"); got != 1000 {
		t.Errorf("b balance = %d, want 1000", got)
	}
}

func TestLockTimeout(t *testing.T) {
	s := NewStore(50 * time.Millisecond)
	seed(t, s, "a", 0)

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.ExecTx(context.Background(), func(repo store.Repository) error {
			if _, err := repo.LockAccount(context.Background(), "a"); err != nil {
				return err
			}
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	defer close(release)

	err := s.ExecTx(context.Background(), func(repo store.Repository) error {
		_, err := repo.LockAccount(context.Background(), "a")
		return err
	})
	if !errors.Is(err, store.ErrLockTimeout) {
		t.Errorf("got %v, want ErrLockTimeout", err)
	}
}
