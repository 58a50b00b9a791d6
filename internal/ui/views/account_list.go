package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/ui"
	"github.com/hance08/ledger/internal/utils"
)

type AccountListView struct{}

func NewAccountListView() *AccountListView {
	return &AccountListView{}
}

func (v *AccountListView) Render(accounts []*model.Account) error {
	if len(accounts) == 0 {
		pterm.Warning.Println("No accounts found")
		return nil
	}

	tableData := pterm.TableData{{"ID", "Name", "Owner", "Balance", "Status"}}

	for _, acc := range accounts {
		balance := utils.FormatMoney(acc.Balance, acc.Currency)
		status := ui.StatusColor(accountState(acc))

		name := acc.Name
		if acc.Active {
			balance = pterm.Green(balance)
		} else {
			name = pterm.Gray(name)
			balance = pterm.Gray(balance)
		}
		tableData = append(tableData, []string{acc.ID, name, acc.OwnerID, balance, status})
	}

	pterm.DefaultSection.Printf("Account List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))
	return nil
}

func accountState(acc *model.Account) string {
	if acc.Active {
		return "Active"
	}
	return "Inactive"
}
