package transaction

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/views"
)

type WithdrawCommandRunner struct {
	svc   *service.Service
	flags *singleFlags
}

func NewWithdrawCmd(a *app.App) *cobra.Command {
	flags := &singleFlags{}

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Debit money out of the ledger",
		Long:  `Debit money out of the ledger. The account must hold at least the amount.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &WithdrawCommandRunner{svc: a.Service, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Account ID to debit")
	flags.bind(cmd)

	return cmd
}

func (r *WithdrawCommandRunner) Run(ctx context.Context) error {
	in, err := r.flags.input(ctx, r.svc, "Withdraw from:")
	if err != nil {
		return err
	}

	res, err := r.svc.Transaction.CreateWithdrawal(ctx, service.Operator(), service.WithdrawalInput(in))
	if err != nil {
		return err
	}
	return views.RenderResult(res)
}
