package transaction

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/prompts"
	"github.com/hance08/ledger/internal/ui/views"
)

type transferFlags struct {
	movementFlags
	From string
	To   string
}

type TransferCommandRunner struct {
	svc   *service.Service
	flags *transferFlags
}

func NewTransferCmd(a *app.App) *cobra.Command {
	flags := &transferFlags{}

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move money from one account to another",
		Long: `Move money from one account to another in the same currency.

Both balances change together or not at all. Missing accounts and amount
are asked for interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &TransferCommandRunner{svc: a.Service, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.From, "from", "f", "", "Source account ID")
	cmd.Flags().StringVarP(&flags.To, "to", "t", "", "Destination account ID")
	flags.bind(cmd)

	return cmd
}

func (r *TransferCommandRunner) Run(ctx context.Context) error {
	from, err := resolveAccount(ctx, r.svc, r.flags.From, "Transfer from:", "")
	if err != nil {
		return err
	}

	currency, err := resolveCurrency(ctx, r.svc, r.flags.Currency, from)
	if err != nil {
		return err
	}

	to, err := resolveAccount(ctx, r.svc, r.flags.To, "Transfer to:", currency)
	if err != nil {
		return err
	}

	amount, err := resolveAmount(r.flags.Amount, currency)
	if err != nil {
		return err
	}

	description := r.flags.Description
	if r.flags.From == "" && description == "" {
		if description, err = prompts.PromptDescription("Description (optional):", false); err != nil {
			return err
		}
	}

	res, err := r.svc.Transaction.CreateTransfer(ctx, service.Operator(), service.TransferInput{
		FromAccountID:  from,
		ToAccountID:    to,
		Amount:         amount,
		Currency:       currency.String(),
		IdempotencyKey: r.flags.Key,
		Description:    description,
		ReferenceID:    r.flags.Reference,
	})
	if err != nil {
		return err
	}

	return views.RenderResult(res)
}
