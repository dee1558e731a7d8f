package main

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/dhamidi/fepc/fe"
	"github.com/dhamidi/fepc/fe/normalize"
	"github.com/spf13/cobra"
)

// readSource reads a named file, or standard input for "-".
func readSource(name string) (string, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: not valid UTF-8", name)
	}
	return string(data), nil
}

func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}

// pipelineFlags are the normalization switches shared by the commands
// that run the front end.
type pipelineFlags struct {
	noNormalize bool
	form        string
}

func (p *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.noNormalize, "no-normalize", false, "tokenize the text as given")
	cmd.Flags().StringVar(&p.form, "form", "nfc", "normalization form (nfc, nfkc, none)")
}

func (p *pipelineFlags) config(file string) (fe.Config, error) {
	cfg := fe.DefaultConfig()
	cfg.File = displayName(file)
	cfg.Normalize = !p.noNormalize
	form, ok := normalize.ParseForm(p.form)
	if !ok {
		return cfg, fmt.Errorf("unknown normalization form: %s", p.form)
	}
	cfg.Form = form
	return cfg, nil
}
