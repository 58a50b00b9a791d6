package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/utils"
	"github.com/hance08/ledger/internal/validation"
)

// PromptAmount asks for a major-unit amount and returns it in minor units.
func PromptAmount(message string, currency model.Currency) (int64, error) {
	var raw string

	err := huh.NewInput().
		Title(message).
		Description(fmt.Sprintf("In %s, e.g. %s", currency, utils.FormatMinor(1250, currency))).
		Value(&raw).
		Validate(func(s string) error {
			amount, err := utils.ParseMinor(s, currency)
			if err != nil {
				return err
			}
			return validation.ValidateAmount(amount)
		}).
		Run()
	if err != nil {
		return 0, err
	}

	return utils.ParseMinor(raw, currency)
}

// PromptInitCurrency runs on first start when no default currency is set.
func PromptInitCurrency(current model.Currency) (model.Currency, error) {
	selection := current.String()

	var options []huh.Option[string]
	for _, c := range model.Currencies() {
		options = append(options, huh.NewOption(c.String(), c.String()))
	}

	err := huh.NewSelect[string]().
		Title("Welcome to ledger! Please choose the default currency:").
		Description("New accounts and movements without a currency use this one.").
		Options(options...).
		Value(&selection).
		Run()
	if err != nil {
		return "", err
	}

	return model.ParseCurrency(selection)
}
