package transaction

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/prompts"
	"github.com/hance08/ledger/internal/ui/views"
)

type singleFlags struct {
	movementFlags
	Account string
}

type DepositCommandRunner struct {
	svc   *service.Service
	flags *singleFlags
}

func NewDepositCmd(a *app.App) *cobra.Command {
	flags := &singleFlags{}

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Credit money from outside the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &DepositCommandRunner{svc: a.Service, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Account ID to credit")
	flags.bind(cmd)

	return cmd
}

func (r *DepositCommandRunner) Run(ctx context.Context) error {
	in, err := r.flags.input(ctx, r.svc, "Deposit into:")
	if err != nil {
		return err
	}

	res, err := r.svc.Transaction.CreateDeposit(ctx, service.Operator(), in)
	if err != nil {
		return err
	}
	return views.RenderResult(res)
}

// input resolves the flags of a single-account movement.
func (f *singleFlags) input(ctx context.Context, svc *service.Service, message string) (service.DepositInput, error) {
	accountID, err := resolveAccount(ctx, svc, f.Account, message, "")
	if err != nil {
		return service.DepositInput{}, err
	}

	currency, err := resolveCurrency(ctx, svc, f.Currency, accountID)
	if err != nil {
		return service.DepositInput{}, err
	}

	amount, err := resolveAmount(f.Amount, currency)
	if err != nil {
		return service.DepositInput{}, err
	}

	description := f.Description
	if f.Account == "" && description == "" {
		if description, err = prompts.PromptDescription("Description (optional):", false); err != nil {
			return service.DepositInput{}, err
		}
	}

	return service.DepositInput{
		AccountID:      accountID,
		Amount:         amount,
		Currency:       currency.String(),
		IdempotencyKey: f.Key,
		Description:    description,
		ReferenceID:    f.Reference,
	}, nil
}
