package errhandler

import (
	"errors"
	"os"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/ledger"
)

// IsCancelled reports whether err comes from the user aborting a prompt.
func IsCancelled(err error) bool {
	return errors.Is(err, terminal.InterruptErr) || errors.Is(err, huh.ErrUserAborted)
}

// ExitCode maps an error onto the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil, IsCancelled(err):
		return 0
	case ledger.CodeOf(err) == ledger.CodeRetryable:
		return 75
	default:
		return 1
	}
}

// HandleError prints err for a CLI user and exits.
func HandleError(err error) {
	if IsCancelled(err) {
		pterm.Warning.Println("Operation Cancelled")
		os.Exit(0)
	}

	code := ledger.CodeOf(err)
	if code != ledger.CodeInternal {
		pterm.Error.Printf("[%s] %s\n", code, capitalize(err.Error()))
	} else {
		pterm.Error.Println(capitalize(err.Error()))
	}
	os.Exit(ExitCode(err))
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
