package workspace

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/esparse/config"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "esparse"

var lspLog = commonlog.GetLogger("esparse.lsp")

// LSPServer parses documents as they are opened, changed and saved and
// publishes at most one syntax diagnostic per document.
type LSPServer struct {
	workspace *Workspace
	cfg       *config.Config
	handler   protocol.Handler
	server    *server.Server
	version   string
}

// NewLSPServer returns a server using cfg, or the configuration found from
// the client's root directory when cfg is nil.
func NewLSPServer(version string, cfg *config.Config) *LSPServer {
	ls := &LSPServer{
		version: version,
		cfg:     cfg,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
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

	cfg := ls.cfg
	if cfg == nil {
		var err error
		cfg, err = config.Resolve("", rootDir)
		if err != nil {
			lspLog.Warningf("%s; using defaults", err)
			cfg = config.Default()
		}
	}
	ls.workspace = New(rootDir, cfg)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(context.Background()); err != nil {
		lspLog.Warningf("scan %s: %s", ls.workspace.RootDir(), err)
	}
	for _, doc := range ls.workspace.Failed() {
		ls.publish(ctx, pathToURI(doc.Path), doc)
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
	ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, []byte(textChange.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
		return nil
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	doc, err := ls.workspace.ScanFile(path)
	if err != nil {
		lspLog.Warningf("%s", err)
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, doc)
	return nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) {
	path, err := uriToPath(uri)
	if err != nil {
		return
	}
	ls.publish(ctx, uri, ls.workspace.UpdateFile(path, content))
}

func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, doc *Document) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(doc),
	})
}

// Diagnostics converts a document's parse failure into LSP diagnostics. The
// result is empty, never nil, when the document parsed.
func Diagnostics(doc *Document) []protocol.Diagnostic {
	if doc == nil || doc.Err == nil {
		return []protocol.Diagnostic{}
	}

	severity := protocol.DiagnosticSeverity(protocol.DiagnosticSeverityError)
	source := lsName
	diag := protocol.Diagnostic{
		Severity: &severity,
		Source:   &source,
		Message:  doc.Err.Error(),
	}

	start, end := len(doc.Content), len(doc.Content)
	if syntaxErr := doc.SyntaxError(); syntaxErr != nil {
		diag.Message = syntaxErr.Message()
		if syntaxErr.Pos.Line > 0 {
			start = min(syntaxErr.Pos.Offset, len(doc.Content))
			end = start
			if syntaxErr.Found != "" && strings.HasPrefix(string(doc.Content[start:]), syntaxErr.Found) {
				end = start + len(syntaxErr.Found)
			} else if start < len(doc.Content) {
				_, size := utf8.DecodeRune(doc.Content[start:])
				end = start + size
			}
		}
	}
	diag.Range = protocol.Range{
		Start: offsetToPosition(doc.Content, start),
		End:   offsetToPosition(doc.Content, end),
	}
	return []protocol.Diagnostic{diag}
}

// offsetToPosition converts a byte offset to a zero-based line and UTF-16
// character position. Lines end at "\n", "\r\n" or a lone "\r".
func offsetToPosition(content []byte, offset int) protocol.Position {
	var line, char protocol.UInteger
	for i := 0; i < offset && i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		i += size
		if r == '\n' || (r == '\r' && (i >= len(content) || content[i] != '\n')) {
			line++
			char = 0
			continue
		}
		if r >= 0x10000 {
			char += 2
		} else {
			char++
		}
	}
	return protocol.Position{Line: line, Character: char}
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

func pathToURI(path string) protocol.DocumentUri {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
