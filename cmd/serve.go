package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/httpapi"
	"github.com/hance08/ledger/internal/ui"
)

type serveFlags struct {
	Addr string
}

type serveRunner struct {
	app   *app.App
	flags *serveFlags
}

func NewServeCmd(a *app.App) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API on the configured address.

Requests identify their owner with the X-Owner-ID header and may carry an
Idempotency-Key header on transfers, deposits and withdrawals.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &serveRunner{app: a, flags: flags}
			return runner.Run()
		},
	}

	cmd.Flags().StringVar(&flags.Addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func (r *serveRunner) Run() error {
	cfg := r.app.Config
	addr := r.flags.Addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	server := httpapi.New(r.app.Service, r.app.Logger, httpapi.Options{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		r.app.Logger.Info("server starting", "addr", addr, "driver", cfg.Database.Driver)
		errCh <- server.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	r.app.Logger.Info("shutting down server")
	if err := server.Shutdown(); err != nil {
		return err
	}

	pterm.Success.Println("Server stopped")
	ui.Separator()
	return nil
}
