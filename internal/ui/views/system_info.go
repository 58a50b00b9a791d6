package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/ui"
)

type SystemInfoItem struct {
	ConfigPath      string
	Driver          string
	DBLocation      string
	DBExists        bool
	DefaultCurrency string
	AppDataDir      string
	EventsEnabled   bool
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	switch {
	case data.Driver != "sqlite":
		dbStatus = pterm.Gray("n/a")
	case !data.DBExists:
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	events := pterm.Gray("Disabled")
	if data.EventsEnabled {
		events = pterm.Green("Kafka")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Driver", data.Driver},
		{"Database Location", data.DBLocation},
		{"Database Status", dbStatus},
		{"Default Currency", data.DefaultCurrency},
		{"Events", events},
		{"AppData Directory", data.AppDataDir},
	}

	ui.PrintL1Title("System Info")
	return pterm.DefaultTable.WithData(tableData).Render()
}
