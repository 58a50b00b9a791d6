package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hance08/ledger/cmd/account"
	"github.com/hance08/ledger/cmd/transaction"
	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/errhandler"
	"github.com/hance08/ledger/internal/logging"
	"github.com/hance08/ledger/internal/ui/prompts"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		pterm.Warning.Printf("Ignoring .env: %v\n", err)
	}

	// Filled in by PersistentPreRunE once flags are parsed; subcommands
	// read it when they run.
	application := &app.App{}
	var cleanup func()

	rootCmd := &cobra.Command{
		Use:           constants.AppName,
		Short:         "ledger moves money between accounts without ever losing a cent",
		Long:          `ledger keeps account balances in integer minor units and applies transfers, deposits and withdrawals as atomic, idempotent units of work.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			created, err := initConfig()
			if err != nil {
				return err
			}
			if created && cmd.Name() != "serve" {
				if err := initWizard(); err != nil {
					return err
				}
			}

			logger := logging.New(cfg.Log, os.Stderr)
			built, done, err := app.NewApp(cmd.Context(), cfg, migrations, logger)
			if err != nil {
				return err
			}
			*application = *built
			cleanup = done
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(account.NewAccountCmd(application))
	rootCmd.AddCommand(transaction.NewTransactionCmd(application))
	rootCmd.AddCommand(NewInfoCmd(application))
	rootCmd.AddCommand(NewServeCmd(application))

	err := rootCmd.ExecuteContext(context.Background())
	if cleanup != nil {
		cleanup()
	}
	if err != nil {
		errhandler.HandleError(err)
	}
}

// initConfig loads the config file, environment and defaults into cfg.
// It reports whether the config file was created by this call.
func initConfig() (bool, error) {
	defaults := config.NewDefault()
	viper.SetDefault("database.driver", defaults.Database.Driver)
	viper.SetDefault("database.path", defaults.Database.Path)
	viper.SetDefault("database.url", defaults.Database.URL)
	viper.SetDefault("database.lock_timeout", defaults.Database.LockTimeout)
	viper.SetDefault("database.max_conns", defaults.Database.MaxConns)
	viper.SetDefault("defaults.currency", defaults.Defaults.Currency)
	viper.SetDefault("defaults.list_limit", defaults.Defaults.ListLimit)
	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", defaults.Server.WriteTimeout)
	viper.SetDefault("events.enabled", defaults.Events.Enabled)
	viper.SetDefault("events.brokers", defaults.Events.Brokers)
	viper.SetDefault("events.topic", defaults.Events.Topic)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.format", defaults.Log.Format)

	created := false
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := config.AppDataDir()
		if err != nil {
			return false, fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		created, err = createDefaultConfig(appDir)
		if err != nil {
			return false, fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("LEDGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return false, fmt.Errorf("failed to read config file: %w", err)
		}
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return false, fmt.Errorf("unable to decode into struct, %v", err)
	}
	if brokers := os.Getenv("LEDGER_EVENTS_BROKERS"); brokers != "" {
		cfg.Events.Brokers = strings.Split(brokers, ",")
	}

	cfg.ConfigPath = viper.ConfigFileUsed()
	return created, nil
}

// initWizard asks for the default currency on first run and saves it.
func initWizard() error {
	current, err := prompts.PromptInitCurrency(cfg.DefaultCurrency())
	if err != nil {
		return err
	}

	viper.Set("defaults.currency", current.String())
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}
	cfg.Defaults.Currency = current.String()

	pterm.Success.Printf("Configuration saved. Default currency set to: %s\n", current)
	return nil
}

func createDefaultConfig(appDir string) (bool, error) {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
