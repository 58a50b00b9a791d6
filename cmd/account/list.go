package account

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/views"
)

type listFlags struct {
	Owner string
	Limit int
}

type ListCommandRunner struct {
	svc   *service.Service
	flags *listFlags
}

func NewListCmd(a *app.App) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with their balances",
		Long: `List accounts with their current balances, oldest first.
You can restrict the list to one owner.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{svc: a.Service, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Owner, "owner", "o", "", "Only show accounts of this owner")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0, "Maximum number of accounts (defaults to the configured list limit)")

	return cmd
}

func (r *ListCommandRunner) Run(ctx context.Context) error {
	accounts, err := r.svc.Account.ListAccounts(ctx, service.Operator(), r.flags.Owner, r.flags.Limit)
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	return views.NewAccountListView().Render(accounts)
}
