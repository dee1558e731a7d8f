package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/dhamidi/fepc/grammar"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Reference grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar, the built-in one by default",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var g ebnf.Grammar
			var err error
			if len(args) == 0 {
				g, err = grammar.Parse()
			} else {
				var f *os.File
				f, err = os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer f.Close()
				g, err = ebnf.Parse(args[0], f)
			}
			if err != nil {
				printErrors(err)
				return err
			}

			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(err)
				return err
			}

			fmt.Printf("%d productions, start %s: ok\n", len(g), startProduction)
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification")

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	var names bool

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !names {
				fmt.Print(grammar.Source)
				return nil
			}
			g, err := grammar.Parse()
			if err != nil {
				return err
			}
			for _, name := range grammar.Productions(g) {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&names, "names", false, "print only the production names")

	return cmd
}

func newGrammarMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <production> <text>",
		Short: "Match text against a lexical production of the built-in grammar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Parse()
			if err != nil {
				return err
			}
			n, err := grammar.NewMatcher(g).Match(args[0], args[1])
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%s does not match %q", args[0], args[1])
			}
			fmt.Printf("%s matches %q\n", args[0], string([]rune(args[1])[:n]))
			return nil
		},
	}
	return cmd
}

func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(os.Stderr, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}
