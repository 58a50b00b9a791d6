package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/ui"
)

type TransactionListView struct{}

func NewTransactionListView() *TransactionListView {
	return &TransactionListView{}
}

// Render lists the history of accountID, newest first.
func (v *TransactionListView) Render(accountID string, txs []*model.Transaction, limit int) error {
	if len(txs) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Transactions of %s (limit: %d)", accountID, limit)

	tableData := pterm.TableData{
		{"ID", "Date", "Type", "Counterparty", "Description", "Amount", "Status"},
	}
	for _, tx := range txs {
		tableData = append(tableData, []string{
			tx.ID,
			tx.CreatedAt.Local().Format(dateTimeFormat),
			string(tx.Type),
			counterparty(tx, accountID),
			orDash(tx.Description),
			signedAmount(tx, accountID),
			ui.StatusColor(string(tx.Status)),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(txs))
	return nil
}
