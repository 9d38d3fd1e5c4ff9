// Package lsp implements a language server for files of expressions, one
// expression per line.
package lsp

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/zephyrtronium/postfix"
)

const lsName = "postfix"

// Server is a language server over stdio. Every open document is checked
// against one vocabulary.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	vocab   *postfix.Vocabulary
	log     commonlog.Logger

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string
}

// NewServer creates a language server. If v is nil, the default vocabulary is
// used.
func NewServer(version string, v *postfix.Vocabulary) *Server {
	if v == nil {
		v = postfix.NewVocabulary()
	}
	ls := &Server{
		version: version,
		vocab:   v,
		log:     commonlog.GetLogger("postfix.lsp"),
		docs:    make(map[protocol.DocumentUri]string),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
		TextDocumentHover:      ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

// RunStdio serves requests on stdin and stdout until the client exits.
func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKind(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.HoverProvider = true
	capabilities.CompletionProvider = &protocol.CompletionOptions{}

	if params.ClientInfo != nil {
		ls.log.Infof("initializing for %s", params.ClientInfo.Name)
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()
	// Clear diagnostics for the closed document.
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	text, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return Hover(ls.vocab, text, params.Position), nil
}

func (ls *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	text, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return Complete(ls.vocab, text, params.Position), nil
}

// update stores a new version of a document and publishes its diagnostics.
func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.docs[uri] = text
	ls.mu.Unlock()
	diags := Diagnose(ls.vocab, text)
	ls.log.Debugf("%s: %d diagnostics", uri, len(diags))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func (ls *Server) document(uri protocol.DocumentUri) (string, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	text, ok := ls.docs[uri]
	return text, ok
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
