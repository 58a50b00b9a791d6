package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/ui"
	"github.com/hance08/ledger/internal/utils"
)

func RenderAccount(acc *model.Account) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), acc.ID},
		{pterm.Blue("Name"), acc.Name},
		{pterm.Blue("Owner"), acc.OwnerID},
		{pterm.Blue("Currency"), acc.Currency.String()},
		{pterm.Blue("Balance"), utils.FormatMinor(acc.Balance, acc.Currency)},
		{pterm.Blue("Version"), fmt.Sprintf("%d", acc.Version)},
		{pterm.Blue("Status"), ui.StatusColor(accountState(acc))},
		{pterm.Blue("Created"), acc.CreatedAt.Local().Format(dateTimeFormat)},
		{pterm.Blue("Updated"), acc.UpdatedAt.Local().Format(dateTimeFormat)},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

func RenderAccountSuccess(acc *model.Account) error {
	if err := RenderAccount(acc); err != nil {
		return err
	}
	pterm.Success.Print("Account created successfully!\n")
	return nil
}
