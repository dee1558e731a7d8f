package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/fepc/fe/normalize"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var form string
	var showStats bool
	var off struct {
		fullWidth, compose, punctuation, math, variation, bidi, homoglyphs bool
	}
	var maxLength int

	cmd := &cobra.Command{
		Use:   "normalize <file|->",
		Short: "Print a source file after Unicode normalization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := normalize.ParseForm(form)
			if !ok {
				return fmt.Errorf("unknown normalization form: %s", form)
			}
			cfg := normalize.SecurityConfig{
				FoldFullWidth:           !off.fullWidth,
				ComposeMarks:            !off.compose,
				FoldPunctuation:         !off.punctuation,
				FoldMathSymbols:         !off.math,
				StripVariationSelectors: !off.variation,
				StripBidi:               !off.bidi,
				FoldHomoglyphs:          !off.homoglyphs,
				MaxLength:               maxLength,
			}

			text, err := readSource(args[0])
			if err != nil {
				return err
			}
			out, stats := normalize.Normalize(text, f, cfg)
			fmt.Fprint(os.Stdout, out)

			if showStats {
				printStats(stats)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form, "form", "nfc", "normalization form (nfc, nfkc, none)")
	cmd.Flags().BoolVar(&off.fullWidth, "no-fullwidth", false, "keep full-width characters")
	cmd.Flags().BoolVar(&off.compose, "no-compose", false, "keep separate voicing marks")
	cmd.Flags().BoolVar(&off.punctuation, "no-punctuation", false, "keep CJK punctuation")
	cmd.Flags().BoolVar(&off.math, "no-math", false, "keep mathematical symbol variants")
	cmd.Flags().BoolVar(&off.variation, "no-variation", false, "keep variation selectors")
	cmd.Flags().BoolVar(&off.bidi, "no-bidi", false, "keep bidirectional control characters")
	cmd.Flags().BoolVar(&off.homoglyphs, "no-homoglyphs", false, "keep look-alike letters")
	cmd.Flags().IntVar(&maxLength, "max-length", normalize.DefaultMaxLength, "largest output in characters (0 for no limit)")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print what was changed to stderr")

	return cmd
}

func printStats(s normalize.Stats) {
	w := os.Stderr
	fmt.Fprintf(w, "full-width:   %d\n", s.FullWidth)
	fmt.Fprintf(w, "compositions: %d\n", s.Compositions)
	fmt.Fprintf(w, "punctuation:  %d\n", s.Punctuation)
	fmt.Fprintf(w, "math symbols: %d\n", s.MathSymbols)
	fmt.Fprintf(w, "emoji fixes:  %d\n", s.EmojiFixes)
	fmt.Fprintf(w, "homoglyphs:   %d\n", s.Homoglyphs)
	fmt.Fprintf(w, "bidi removed: %d\n", s.BidiRemoved)
	if s.LimitExceeded {
		fmt.Fprintln(w, "length limit exceeded; text left unchanged")
	}
	for _, f := range s.Findings {
		fmt.Fprintf(w, "offset %d: %s U+%04X\n", f.Offset, f.Kind, f.Rune)
	}
}
