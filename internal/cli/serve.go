package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SyrineLarbi/Daily-planner/internal/app"
	"github.com/SyrineLarbi/Daily-planner/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board to a browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				if addr == "" {
					addr = a.Config.Serve.Addr
				}

				srv, err := web.New(web.Options{
					Store:            a.Store,
					Icons:            a.Icons,
					Logger:           log.New(cmd.ErrOrStderr(), "", 0),
					DefaultColor:     a.Config.DefaultColor,
					BackdropInterval: a.Config.BackdropInterval,
				})
				if err != nil {
					return err
				}

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				fmt.Fprintf(cmd.OutOrStdout(), "Serving the board on http://%s (Ctrl+C to stop)\n", addr)
				return srv.ListenAndServe(ctx, addr)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config serve.addr)")
	return cmd
}
