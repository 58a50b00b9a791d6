package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/utils"
	"github.com/hance08/ledger/internal/validation"
)

func PromptAccountName() (string, error) {
	return PromptInput("Account name:", "", validation.ValidateAccountName)
}

func PromptOwnerID(defaultOwner string) (string, error) {
	return PromptInput("Owner ID:", defaultOwner, validation.ValidateOwnerID)
}

// PromptCurrency lets the user pick one of the supported currencies.
func PromptCurrency(defaultCurrency model.Currency) (model.Currency, error) {
	var options []huh.Option[string]
	for _, c := range model.Currencies() {
		options = append(options, huh.NewOption(c.String(), c.String()))
	}

	selected, err := PromptSelect("Currency:", options, defaultCurrency.String())
	if err != nil {
		return "", err
	}
	return model.ParseCurrency(selected)
}

// PromptAccount lets the user pick an active account and returns its ID.
func PromptAccount(message string, accounts []*model.Account, currency model.Currency) (string, error) {
	var options []huh.Option[string]
	for _, acc := range accounts {
		if !acc.Active || (currency != "" && acc.Currency != currency) {
			continue
		}
		label := fmt.Sprintf("%s (%s) %s", acc.Name, acc.OwnerID, utils.FormatMoney(acc.Balance, acc.Currency))
		options = append(options, huh.NewOption(label, acc.ID))
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no active accounts to choose from")
	}

	return PromptSelect(message, options, "")
}
