package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/fepc/fe/lexer"
	"github.com/dhamidi/fepc/fe/normalize"
	"github.com/dhamidi/fepc/fe/token"
	"github.com/dhamidi/fepc/format"
	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	var outputFormat string
	var trivia bool
	var workers int
	var stream bool
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "tokenize <file|->",
		Short: "Print the tokens of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := flags.config(name)
			if err != nil {
				return err
			}
			opts := []lexer.Option{lexer.WithFile(cfg.File)}
			if trivia {
				opts = append(opts, lexer.WithTrivia())
			}

			if stream {
				if outputFormat != "text" {
					return fmt.Errorf("--stream supports only the text format")
				}
				return streamTokens(cmd, name, opts)
			}

			var enc format.TokenEncoder
			switch outputFormat {
			case "json":
				enc = format.NewJSONEncoder(os.Stdout)
			case "text":
				enc = format.NewLineEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			text, err := readSource(name)
			if err != nil {
				return err
			}
			if cfg.Normalize {
				text, _ = normalize.Normalize(text, cfg.Form, cfg.Security)
			}

			var toks []token.Token
			if workers > 0 {
				toks, err = lexer.TokenizeParallel(cmd.Context(), text, lexer.ParallelOptions{Workers: workers}, opts...)
			} else {
				toks, err = lexer.Tokenize(text, opts...)
			}
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}
			if err := enc.Encode(toks); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&trivia, "trivia", false, "include whitespace, newline and comment tokens")
	cmd.Flags().IntVar(&workers, "parallel", 0, "tokenize in chunks with this many workers")
	cmd.Flags().BoolVar(&stream, "stream", false, "print tokens while reading, without normalizing")
	flags.register(cmd)

	return cmd
}

func streamTokens(cmd *cobra.Command, name string, opts []lexer.Option) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}
		defer f.Close()
		r = f
	}
	enc := format.NewLineEncoder(os.Stdout)
	err := lexer.TokenizeReader(cmd.Context(), r, func(tok token.Token) error {
		return enc.Encode([]token.Token{tok})
	}, opts...)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}
	return nil
}
