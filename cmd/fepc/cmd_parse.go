package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/fepc/fe"
	"github.com/dhamidi/fepc/fe/ast"
	"github.com/dhamidi/fepc/fe/parser"
	"github.com/dhamidi/fepc/format"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var expr bool
	var lenientArrays bool
	var maxNesting int
	var maxTokens int
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a source file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := flags.config(name)
			if err != nil {
				return err
			}
			cfg.Parser = []parser.Option{
				parser.WithMaxNesting(maxNesting),
				parser.WithMaxTokens(maxTokens),
			}
			if lenientArrays {
				cfg.Parser = append(cfg.Parser, parser.WithLenientArrayTypes())
			}

			var enc format.NodeEncoder
			switch outputFormat {
			case "json":
				enc = format.NewASTJSONEncoder(os.Stdout)
			case "tree":
				enc = format.NewTreeEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			text, err := readSource(name)
			if err != nil {
				return err
			}

			var node ast.Node
			if expr {
				node, err = fe.ParseExpressionSource(text, cfg)
			} else {
				var src *fe.Source
				src, err = fe.ParseSource(text, cfg)
				if src != nil {
					node = src.Program
				}
			}
			if err != nil {
				return fmt.Errorf("%s: %w", cfg.File, err)
			}

			if err := enc.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().BoolVar(&expr, "expr", false, "parse a single expression instead of a program")
	cmd.Flags().BoolVar(&lenientArrays, "lenient-arrays", false, "read 'array' without 'of' as an array of integer")
	cmd.Flags().IntVar(&maxNesting, "max-nesting", parser.DefaultMaxNesting, "deepest block nesting accepted")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", parser.DefaultMaxTokens, "largest token count accepted (0 for no limit)")
	flags.register(cmd)

	return cmd
}
