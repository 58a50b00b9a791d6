package views

import (
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/ledger"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/ui"
	"github.com/hance08/ledger/internal/utils"
)

func RenderTransactionDetail(tx *model.Transaction) error {
	completed := "-"
	if tx.CompletedAt != nil {
		completed = tx.CompletedAt.Local().Format(dateTimeFormat)
	}

	pterm.Println()
	ui.PrintL2Title("Transaction Info")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", tx.ID},
		{"Type", string(tx.Type)},
		{"Status", ui.StatusColor(string(tx.Status))},
		{"Amount", utils.FormatMoney(tx.Amount, tx.Currency)},
		{"From", orDash(model.Deref(tx.FromAccountID))},
		{"To", orDash(model.Deref(tx.ToAccountID))},
		{"Description", orDash(tx.Description)},
		{"Reference", orDash(tx.ReferenceID)},
		{"Idempotency Key", orDash(model.Deref(tx.IdempotencyKey))},
		{"Created", tx.CreatedAt.Local().Format(dateTimeFormat)},
		{"Completed", completed},
	}
	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render(); err != nil {
		return err
	}

	if len(tx.Metadata) == 0 {
		return nil
	}

	pterm.Println()
	ui.PrintL2Title("Metadata")
	keys := make([]string, 0, len(tx.Metadata))
	for k := range tx.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	metaData := pterm.TableData{{"Key", "Value"}}
	for _, k := range keys {
		metaData = append(metaData, []string{k, tx.Metadata[k]})
	}
	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(metaData).
		Render()
}

// RenderResult prints the outcome of a transfer, deposit or withdrawal.
func RenderResult(res *ledger.Result) error {
	if err := RenderTransactionDetail(res.Transaction); err != nil {
		return err
	}

	if res.Replayed {
		pterm.Info.Printf("Idempotency key matched transaction %s, nothing was executed\n", res.Transaction.ID)
		return nil
	}
	pterm.Success.Printf("%s completed\n", titleCase(string(res.Transaction.Type)))
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
