package transaction

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/prompts"
	"github.com/hance08/ledger/internal/utils"
)

// movementFlags are shared by transfer, deposit and withdraw.
type movementFlags struct {
	Amount      string
	Currency    string
	Key         string
	Description string
	Reference   string
}

func (f *movementFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Amount, "amount", "", "Amount in major units, e.g. 12.50")
	cmd.Flags().StringVar(&f.Currency, "currency", "", "Currency code (defaults to the account's currency)")
	cmd.Flags().StringVarP(&f.Key, "key", "k", "", "Idempotency key; repeating a key replays the first result")
	cmd.Flags().StringVarP(&f.Description, "description", "d", "", "Free-text description")
	cmd.Flags().StringVar(&f.Reference, "reference", "", "External reference ID")
}

// resolveAccount returns id, or asks the user to pick an account when it
// is empty.
func resolveAccount(ctx context.Context, svc *service.Service, id, message string, currency model.Currency) (string, error) {
	if id != "" {
		return id, nil
	}

	accounts, err := svc.Account.ListAccounts(ctx, service.Operator(), "", 0)
	if err != nil {
		return "", err
	}
	return prompts.PromptAccount(message, accounts, currency)
}

// resolveCurrency prefers the flag and falls back to the account's currency.
func resolveCurrency(ctx context.Context, svc *service.Service, flag, accountID string) (model.Currency, error) {
	if flag != "" {
		return model.ParseCurrency(flag)
	}

	acc, err := svc.Account.GetAccount(ctx, service.Operator(), accountID)
	if err != nil {
		return "", err
	}
	return acc.Currency, nil
}

func resolveAmount(flag string, currency model.Currency) (int64, error) {
	if flag == "" {
		return prompts.PromptAmount("Amount:", currency)
	}

	amount, err := utils.ParseMinor(flag, currency)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}
	return amount, nil
}
