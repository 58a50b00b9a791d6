package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

func PrintL1Title(format string, a ...any) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	style.Println(fmt.Sprintf(" %s   ", fmt.Sprintf(format, a...)))
}

func PrintL2Title(format string, a ...any) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	style.Println(fmt.Sprintf("# %s   ", fmt.Sprintf(format, a...)))
}

// Separator prints a green rule between sections of output.
func Separator() {
	pterm.Println(pterm.Green("----------------------------------------"))
}

// StatusColor colors a transaction status or account state label.
func StatusColor(label string) string {
	switch label {
	case "COMPLETED", "Active":
		return pterm.Green(label)
	case "PENDING":
		return pterm.Yellow(label)
	case "FAILED", "CANCELLED":
		return pterm.Red(label)
	default:
		return pterm.Gray(label)
	}
}
