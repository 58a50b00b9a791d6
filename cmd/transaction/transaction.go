package transaction

import (
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
)

func NewTransactionCmd(a *app.App) *cobra.Command {
	transactionCmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Move money and inspect transactions",
		Long:    "Move money between accounts, deposit, withdraw, and inspect transaction history.",
	}

	transactionCmd.AddCommand(NewTransferCmd(a))
	transactionCmd.AddCommand(NewDepositCmd(a))
	transactionCmd.AddCommand(NewWithdrawCmd(a))
	transactionCmd.AddCommand(NewShowCmd(a))
	transactionCmd.AddCommand(NewListCmd(a))

	return transactionCmd
}
