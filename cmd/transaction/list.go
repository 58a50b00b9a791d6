package transaction

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/views"
)

type listFlags struct {
	Account string
	Limit   int
}

type ListCommandRunner struct {
	svc   *service.Service
	flags *listFlags
}

func NewListCmd(a *app.App) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an account's transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{svc: a.Service, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Account ID (asked for when omitted)")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0, "Maximum number of transactions (defaults to the configured list limit)")

	return cmd
}

func (r *ListCommandRunner) Run(ctx context.Context) error {
	accountID, err := resolveAccount(ctx, r.svc, r.flags.Account, "Account:", "")
	if err != nil {
		return err
	}

	limit := r.flags.Limit
	if limit <= 0 {
		limit = r.svc.Config.ListLimit
	}

	txs, err := r.svc.Transaction.ListByAccount(ctx, service.Operator(), accountID, limit)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}

	return views.NewTransactionListView().Render(accountID, txs, limit)
}
