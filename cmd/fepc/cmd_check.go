package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/fepc/fe"
	"github.com/dhamidi/fepc/format"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var strict bool
	var noColor bool
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:           "check <file|->...",
		Short:         "Report every problem in source files",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := termenv.NewOutput(os.Stderr).EnvColorProfile()
			if noColor {
				profile = termenv.Ascii
			}
			renderer := format.NewDiagnosticRenderer(os.Stderr, profile)

			failed := 0
			for _, name := range args {
				cfg, err := flags.config(name)
				if err != nil {
					return err
				}
				text, err := readSource(name)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					failed++
					continue
				}

				if strict {
					if _, err := fe.ParseSource(text, cfg); err != nil {
						fmt.Fprintf(os.Stderr, "%s: %s\n", cfg.File, err)
						failed++
					}
					continue
				}

				rep := fe.Check(text, cfg)
				if err := renderer.Render(rep.Diagnostics); err != nil {
					return err
				}
				if rep.HasErrors() {
					failed++
				}
			}

			if failed > 0 {
				err := fmt.Errorf("%d of %d files have errors", failed, len(args))
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "stop each file at its first error")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "do not colour diagnostics")
	flags.register(cmd)

	return cmd
}
