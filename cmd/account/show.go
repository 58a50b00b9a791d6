package account

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/views"
)

type ShowCommandRunner struct {
	svc *service.Service
}

func NewShowCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <account-id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{svc: a.Service}
			return runner.Run(cmd.Context(), args[0])
		},
	}
}

func (r *ShowCommandRunner) Run(ctx context.Context, id string) error {
	acc, err := r.svc.Account.GetAccount(ctx, service.Operator(), id)
	if err != nil {
		return err
	}
	return views.RenderAccount(acc)
}
