package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SyrineLarbi/Daily-planner/internal/app"
	"github.com/SyrineLarbi/Daily-planner/internal/export"
	"github.com/SyrineLarbi/Daily-planner/internal/ui"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the board as JSON, Markdown or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				title := "Daily planner: " + time.Now().Format(ui.DateFormat)
				data, err := export.NewExporter(title, a.Store.Tasks()).Export(format)
				if err != nil {
					return err
				}

				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", a.Store.Len(), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
