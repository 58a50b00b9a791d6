package account

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui"
	"github.com/hance08/ledger/internal/ui/views"
)

type deactivateFlags struct {
	Yes bool
}

type DeactivateCommandRunner struct {
	svc   *service.Service
	flags *deactivateFlags
}

func NewDeactivateCmd(a *app.App) *cobra.Command {
	flags := &deactivateFlags{}

	cmd := &cobra.Command{
		Use:     "deactivate <account-id>",
		Aliases: []string{"close"},
		Short:   "Close an account with a zero balance",
		Long: `Close an account. The balance must be exactly zero; a closed account
rejects all further movements but its history stays readable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &DeactivateCommandRunner{svc: a.Service, flags: flags}
			return runner.Run(cmd.Context(), args[0])
		},
	}

	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (r *DeactivateCommandRunner) Run(ctx context.Context, id string) error {
	acc, err := r.svc.Account.GetAccount(ctx, service.Operator(), id)
	if err != nil {
		return err
	}

	if !r.flags.Yes {
		if err := views.RenderAccount(acc); err != nil {
			return err
		}
		ok, err := ui.Confirm("Close this account?")
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Nothing changed")
			return nil
		}
	}

	closed, err := r.svc.Account.DeactivateAccount(ctx, service.Operator(), id)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Account '%s' closed\n", closed.Name)
	return nil
}
