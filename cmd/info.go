package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/ui/views"
)

type infoRunner struct {
	cfg *config.Config
}

func NewInfoCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database location, and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{cfg: a.Config}
			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	configPath := r.cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	item := views.SystemInfoItem{
		ConfigPath:      configPath,
		Driver:          r.cfg.Database.Driver,
		DefaultCurrency: r.cfg.Defaults.Currency,
		AppDataDir:      appDataDirOrUnknown(),
		EventsEnabled:   r.cfg.Events.Enabled,
	}

	switch r.cfg.Database.Driver {
	case config.DriverSQLite:
		path, err := r.cfg.DatabasePath()
		if err != nil {
			return err
		}
		item.DBLocation = path
		if _, err := os.Stat(path); err == nil {
			item.DBExists = true
		}
	case config.DriverPostgres:
		item.DBLocation = redactURL(r.cfg.Database.URL)
	default:
		item.DBLocation = "(in memory)"
	}

	return views.RenderSystemInfo(item)
}

func appDataDirOrUnknown() string {
	dir, err := config.AppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
