// Package fe runs the complete front end over source text: Unicode
// normalization, tokenization and parsing.
package fe

import (
	"fmt"

	"github.com/dhamidi/fepc/fe/ast"
	"github.com/dhamidi/fepc/fe/lexer"
	"github.com/dhamidi/fepc/fe/normalize"
	"github.com/dhamidi/fepc/fe/parser"
	"github.com/dhamidi/fepc/fe/token"
)

// Config controls one pipeline run.
type Config struct {
	File string

	// Normalize folds the text before tokenizing. Positions in the
	// result then refer to the normalized text.
	Normalize bool
	Form      normalize.Form
	Security  normalize.SecurityConfig

	Lexer  []lexer.Option
	Parser []parser.Option
}

// DefaultConfig normalizes with NFC and every fold enabled.
func DefaultConfig() Config {
	return Config{
		Normalize: true,
		Form:      normalize.FormCanonical,
		Security:  normalize.DefaultSecurityConfig(),
	}
}

// Source is the outcome of a successful pipeline run.
type Source struct {
	File    string
	Text    string
	Stats   normalize.Stats
	Tokens  []token.Token
	Program *ast.Program
}

func (cfg Config) prepare(text string) (string, normalize.Stats) {
	if !cfg.Normalize {
		return text, normalize.Stats{}
	}
	return normalize.Normalize(text, cfg.Form, cfg.Security)
}

func (cfg Config) lexerOptions() []lexer.Option {
	opts := make([]lexer.Option, 0, len(cfg.Lexer)+1)
	if cfg.File != "" {
		opts = append(opts, lexer.WithFile(cfg.File))
	}
	return append(opts, cfg.Lexer...)
}

// ParseSource normalizes, tokenizes and parses text as a program. The
// first failure of any stage is returned.
func ParseSource(text string, cfg Config) (*Source, error) {
	src := &Source{File: cfg.File}
	src.Text, src.Stats = cfg.prepare(text)

	toks, err := lexer.Tokenize(src.Text, cfg.lexerOptions()...)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	src.Tokens = toks

	prog, err := parser.ParseProgram(toks, cfg.Parser...)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	src.Program = prog
	return src, nil
}

// ParseExpressionSource runs the pipeline over text holding a single
// expression.
func ParseExpressionSource(text string, cfg Config) (ast.Expr, error) {
	text, _ = cfg.prepare(text)
	toks, err := lexer.Tokenize(text, cfg.lexerOptions()...)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	expr, err := parser.ParseExpression(toks, cfg.Parser...)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return expr, nil
}
