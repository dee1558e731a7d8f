package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/fepc/fe"
	"github.com/dhamidi/fepc/fe/parser"
	"github.com/dhamidi/fepc/format"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".fepc_history"
	promptMain  = "fe> "
	promptCont  = "... "
)

func newReplCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read statements and print their syntax trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config("<repl>")
			if err != nil {
				return err
			}
			return runRepl(cfg)
		},
	}

	flags.register(cmd)

	return cmd
}

func runRepl(cfg fe.Config) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	var enc format.NodeEncoder = format.NewTreeEncoder(os.Stdout)
	fmt.Println("FE pseudocode front end. Type :json, :tree or :quit.")

	for {
		code, ok := readByParseProbe(ln, cfg)
		if !ok {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return nil
			case ":json":
				enc = format.NewASTJSONEncoder(os.Stdout)
			case ":tree":
				enc = format.NewTreeEncoder(os.Stdout)
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		src, err := fe.ParseSource(code, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if err := enc.Encode(src.Program); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// readByParseProbe keeps reading lines while the text so far is an
// incomplete program, such as an if without its endif.
func readByParseProbe(ln *liner.State, cfg fe.Config) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		_, perr := fe.ParseSource(src, cfg)
		if perr != nil && parser.IsIncomplete(perr) && line != "" {
			continue
		}
		return src, true
	}
}
