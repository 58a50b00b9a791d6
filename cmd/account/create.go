package account

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/prompts"
	"github.com/hance08/ledger/internal/ui/views"
	"github.com/hance08/ledger/internal/utils"
)

type createFlags struct {
	Name     string
	Owner    string
	Currency string
	Balance  string
}

type CreateCommandRunner struct {
	svc   *service.Service
	flags *createFlags
}

func NewCreateCmd(a *app.App) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new account",
		Long: `Open a new account for an owner.

Values not given as flags are asked for interactively. The opening balance
is in major units (e.g. 12.50) and is booked as a deposit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &CreateCommandRunner{svc: a.Service, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Account name")
	cmd.Flags().StringVarP(&flags.Owner, "owner", "o", "", "Owner ID")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "Currency code (defaults to the configured currency)")
	cmd.Flags().StringVarP(&flags.Balance, "balance", "b", "", "Opening balance in major units")

	return cmd
}

func (r *CreateCommandRunner) Run(ctx context.Context) error {
	interactive := r.flags.Name == "" || r.flags.Owner == ""

	name := r.flags.Name
	if name == "" {
		var err error
		if name, err = prompts.PromptAccountName(); err != nil {
			return err
		}
	}

	owner := r.flags.Owner
	if owner == "" {
		var err error
		if owner, err = prompts.PromptOwnerID(""); err != nil {
			return err
		}
	}

	currency := r.svc.Config.DefaultCurrency
	switch {
	case r.flags.Currency != "":
		parsed, err := model.ParseCurrency(r.flags.Currency)
		if err != nil {
			return err
		}
		currency = parsed
	case interactive:
		picked, err := prompts.PromptCurrency(currency)
		if err != nil {
			return err
		}
		currency = picked
	}

	var balance int64
	if r.flags.Balance != "" {
		parsed, err := utils.ParseMinor(r.flags.Balance, currency)
		if err != nil {
			return fmt.Errorf("invalid opening balance: %w", err)
		}
		balance = parsed
	} else if interactive {
		seed, err := prompts.PromptConfirm("Add an opening balance?", false)
		if err != nil {
			return err
		}
		if seed {
			if balance, err = prompts.PromptAmount("Opening balance:", currency); err != nil {
				return err
			}
		}
	}

	acc, err := r.svc.Account.CreateAccount(ctx, service.Operator(), service.CreateAccountInput{
		OwnerID:        owner,
		Name:           name,
		Currency:       currency.String(),
		InitialBalance: balance,
	})
	if err != nil {
		return err
	}

	pterm.Success.Printf("Account '%s' created\n", acc.Name)
	return views.RenderAccountSuccess(acc)
}
