package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
)

func NewAccountCmd(a *app.App) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Open, inspect, list and close accounts.",
		Long:  `Open, inspect, list and close accounts. The CLI acts as the operator and can see every owner's accounts.`,
	}

	accountCmd.AddCommand(NewCreateCmd(a))
	accountCmd.AddCommand(NewListCmd(a))
	accountCmd.AddCommand(NewShowCmd(a))
	accountCmd.AddCommand(NewDeactivateCmd(a))

	return accountCmd
}
