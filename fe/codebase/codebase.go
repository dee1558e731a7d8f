// Package codebase keeps a set of FE source files checked and current,
// and serves them to editors over the language server protocol.
package codebase

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/fepc/fe"
	"github.com/dhamidi/fepc/fe/lexer"
)

// Ext is the extension of FE source files.
const Ext = ".fe"

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	cfg     fe.Config
	files   map[string]*File
}

// File is one document and the result of checking it.
type File struct {
	Path    string
	Content string
	Report  *fe.Report

	// Relex describes how the last edit was tokenized.
	Relex lexer.RelexStats

	inc *lexer.Incremental
}

func New(rootDir string, cfg fe.Config) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		cfg:     cfg,
		files:   make(map[string]*File),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll checks every source file below the root directory. Hidden
// directories are skipped. Files and directories that cannot be read do
// not stop the scan; their errors are joined into the result.
func (c *Codebase) ScanAll() error {
	var errs []error
	err := filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if d.IsDir() {
			if path != c.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path) {
			if _, err := c.ScanFile(path); err != nil {
				errs = append(errs, err)
			}
		}
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func IsSource(path string) bool {
	return filepath.Ext(path) == Ext
}

func (c *Codebase) ScanFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.UpdateFile(path, string(content)), nil
}

// UpdateFile replaces a document's content and checks it.
func (c *Codebase) UpdateFile(path, content string) *File {
	cfg := c.configFor(path)
	f := &File{Path: path, Content: content}
	f.inc, _ = lexer.NewIncremental(content, lexer.WithFile(cfg.File))
	f.Report = fe.Check(content, cfg)
	f.Relex = lexer.RelexStats{Relexed: len(f.Report.Tokens), FullRescan: true}

	c.mu.Lock()
	c.files[path] = f
	c.mu.Unlock()
	return f
}

// EditFile applies edits in order to a known document. Tokens are kept
// current incrementally; only when the edited text has lexical errors
// is it checked from scratch. The batch is all or nothing: when an edit
// fails the document keeps its previous content. Relex sums the
// statistics of every edit in the batch.
func (c *Codebase) EditFile(path string, edits ...lexer.Edit) (*File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.files[path]
	if prev == nil {
		return nil, os.ErrNotExist
	}

	cfg := c.configFor(path)
	f := &File{Path: path, inc: prev.inc}
	var total lexer.RelexStats
	var lexErr error
	for _, e := range edits {
		_, stats, err := f.inc.Apply(e)
		if err != nil && !isLexical(err) {
			// Earlier edits of the batch are already applied; start over
			// from the stored content so the two cannot drift apart.
			prev.inc, _ = lexer.NewIncremental(prev.Content, lexer.WithFile(cfg.File))
			return nil, err
		}
		lexErr = err
		total.Reused += stats.Reused
		total.Relexed += stats.Relexed
		total.FullRescan = total.FullRescan || stats.FullRescan
	}
	f.Content = f.inc.Text()
	f.Relex = total
	if toks := f.inc.Tokens(); lexErr == nil && toks != nil {
		f.Report = fe.CheckTokens(f.Content, toks, cfg)
	} else {
		f.Report = fe.Check(f.Content, cfg)
	}
	c.files[path] = f
	return f, nil
}

func isLexical(err error) bool {
	var lerr *lexer.Error
	return errors.As(err, &lerr)
}

func (c *Codebase) configFor(path string) fe.Config {
	cfg := c.cfg
	cfg.File = filepath.Base(path)
	return cfg
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths lists the known documents in lexical order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
