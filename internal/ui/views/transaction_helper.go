package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/utils"
)

const dateTimeFormat = "2006-01-02 15:04:05"

// signedAmount renders the amount as seen from accountID: negative when
// money left the account.
func signedAmount(tx *model.Transaction, accountID string) string {
	amount := utils.FormatMoney(tx.Amount, tx.Currency)
	if model.Deref(tx.FromAccountID) == accountID {
		return pterm.Red("-" + amount)
	}
	return pterm.Green("+" + amount)
}

// counterparty is the other side of a transfer, or "-" for deposits and
// withdrawals.
func counterparty(tx *model.Transaction, accountID string) string {
	if tx.Type != model.TypeTransfer {
		return "-"
	}
	if model.Deref(tx.FromAccountID) == accountID {
		return model.Deref(tx.ToAccountID)
	}
	return model.Deref(tx.FromAccountID)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
