package codebase

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/fepc/fe"
	"github.com/dhamidi/fepc/fe/token"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "fepc"

type LSPServer struct {
	codebase *Codebase
	cfg      fe.Config
	handler  protocol.Handler
	server   *server.Server
	version  string
	log      commonlog.Logger
}

func NewLSPServer(version string, cfg fe.Config) *LSPServer {
	ls := &LSPServer{
		codebase: New(".", cfg),
		cfg:      cfg,
		version:  version,
		log:      commonlog.GetLogger("fepc.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) Codebase() *Codebase {
	return ls.codebase
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, ls.cfg)
	ls.log.Infof("workspace root %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindIncremental),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.HoverProvider = true
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(); err != nil {
		ls.log.Warningf("scanning %s: %s", ls.codebase.RootDir(), err)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	f := ls.codebase.UpdateFile(path, params.TextDocument.Text)
	ls.publish(ctx, params.TextDocument.URI, f)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	f := ls.codebase.GetFile(path)
	for _, change := range params.ContentChanges {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			f = ls.codebase.UpdateFile(path, change.Text)
		case protocol.TextDocumentContentChangeEvent:
			if f == nil || change.Range == nil {
				f = ls.codebase.UpdateFile(path, change.Text)
				continue
			}
			r := change.Range
			e := newLineIndex(f.Content).edit(
				int(r.Start.Line), int(r.Start.Character),
				int(r.End.Line), int(r.End.Character),
				change.Text,
			)
			next, err := ls.codebase.EditFile(path, e)
			if err != nil {
				ls.log.Errorf("applying edit to %s: %s", path, err)
				return nil
			}
			f = next
			ls.log.Debugf("%s: reused %d tokens, relexed %d", path, f.Relex.Reused, f.Relex.Relexed)
		}
	}
	if f != nil {
		ls.publish(ctx, params.TextDocument.URI, f)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if _, err := ls.codebase.ScanFile(path); err != nil {
		ls.codebase.RemoveFile(path)
		ls.publish(ctx, params.TextDocument.URI, nil)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var f *File
	if params.Text != nil {
		f = ls.codebase.UpdateFile(path, *params.Text)
	} else if f, err = ls.codebase.ScanFile(path); err != nil {
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, f)
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.codebase.GetFile(path)
	if f == nil {
		return nil, nil
	}
	idx := newLineIndex(f.Content)
	offset := idx.offset(int(params.Position.Line), int(params.Position.Character))
	text, span, ok := f.Hover(offset)
	if !ok {
		return nil, nil
	}
	r := toProtocolRange(idx, span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
		Range: &r,
	}, nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.codebase.GetFile(path)
	if f == nil {
		return nil, nil
	}
	return toProtocolSymbols(newLineIndex(f.Content), f.Symbols()), nil
}

func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, f *File) {
	diags := []protocol.Diagnostic{}
	if f != nil {
		diags = toProtocolDiagnostics(f)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func toProtocolDiagnostics(f *File) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}
	if f.Report == nil {
		return out
	}
	idx := newLineIndex(f.Content)
	for _, d := range f.Report.Diagnostics {
		severity := protocol.DiagnosticSeverityError
		if d.Severity == fe.SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
		}
		source := lsName + " " + string(d.Stage)
		message := d.Message
		for _, s := range d.Suggestions {
			message += "\nsuggestion: " + s
		}
		pd := protocol.Diagnostic{
			Range:    toProtocolRange(idx, d.Span),
			Severity: &severity,
			Source:   &source,
			Message:  message,
		}
		if d.Code != "" {
			pd.Code = &protocol.IntegerOrString{Value: d.Code}
		}
		out = append(out, pd)
	}
	return out
}

func toProtocolSymbols(idx *lineIndex, syms []Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, s := range syms {
		kind := protocol.SymbolKindVariable
		if s.Kind == SymbolFunction || s.Kind == SymbolProcedure {
			kind = protocol.SymbolKindFunction
		}
		ds := protocol.DocumentSymbol{
			Name:           s.Name,
			Kind:           kind,
			Range:          toProtocolRange(idx, s.Span),
			SelectionRange: toProtocolRange(idx, s.NameSpan),
		}
		if s.Detail != "" {
			detail := s.Detail
			ds.Detail = &detail
		}
		if len(s.Children) > 0 {
			ds.Children = toProtocolSymbols(idx, s.Children)
		}
		out = append(out, ds)
	}
	return out
}

func toProtocolRange(idx *lineIndex, span token.Span) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(idx, span.Start),
		End:   toProtocolPosition(idx, span.End),
	}
}

func toProtocolPosition(idx *lineIndex, pos token.Position) protocol.Position {
	line := pos.Line - 1
	if line < 0 {
		line = 0
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(idx.utf16Column(pos)),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
