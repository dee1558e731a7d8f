package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/fepc/fe"
	"github.com/dhamidi/fepc/fe/codebase"
	"github.com/dhamidi/fepc/format"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Check source files again whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("stat %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
			if noColor {
				profile = termenv.Ascii
			}
			renderer := format.NewDiagnosticRenderer(os.Stdout, profile)

			c := codebase.New(dir, fe.DefaultConfig())
			w, err := codebase.NewWatcher(c, func(path string, f *codebase.File) {
				switch {
				case f == nil:
					fmt.Printf("%s: removed\n", path)
				case len(f.Report.Diagnostics) == 0:
					fmt.Printf("%s: ok\n", path)
				default:
					renderer.Render(f.Report.Diagnostics)
				}
			})
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			if err := w.Start(); err != nil {
				w.Stop()
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			<-cmd.Context().Done()
			return w.Stop()
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "do not colour diagnostics")

	return cmd
}
