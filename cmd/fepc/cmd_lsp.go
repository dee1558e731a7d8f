package main

import (
	"github.com/dhamidi/fepc/fe"
	"github.com/dhamidi/fepc/fe/codebase"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, fe.DefaultConfig())
			return server.RunStdio()
		},
	}
}
