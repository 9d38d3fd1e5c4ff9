package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/zephyrtronium/postfix"
)

func TestDiagnose(t *testing.T) {
	doc := "1 + 2\n\nx * (y\nw + 1\nsin(1, 2)\n1/0\r\nfoo(1)\n"
	diags := Diagnose(postfix.NewVocabulary(), doc)
	want := []struct {
		line, char protocol.UInteger
		sev        protocol.DiagnosticSeverity
		msg        string
	}{
		{2, 6, protocol.DiagnosticSeverityError, ""},
		{3, 0, protocol.DiagnosticSeverityWarning, `unknown identifier "w"`},
		{4, 0, protocol.DiagnosticSeverityError, ""},
		{5, 1, protocol.DiagnosticSeverityWarning, "(1, 0) outside domain of /"},
		{6, 0, protocol.DiagnosticSeverityWarning, "unknown function foo/1"},
	}
	require.Len(t, diags, len(want))
	for i, w := range want {
		d := diags[i]
		assert.Equal(t, w.line, d.Range.Start.Line, "diagnostic %d", i)
		assert.Equal(t, w.char, d.Range.Start.Character, "diagnostic %d", i)
		assert.Equal(t, w.char+1, d.Range.End.Character, "diagnostic %d", i)
		require.NotNil(t, d.Severity)
		assert.Equal(t, w.sev, *d.Severity, "diagnostic %d", i)
		if w.msg != "" {
			assert.Equal(t, w.msg, d.Message)
		}
		require.NotNil(t, d.Source)
		assert.Equal(t, "postfix", *d.Source)
	}
}

func TestDiagnoseLenient(t *testing.T) {
	diags := Diagnose(postfix.NewVocabulary(postfix.Lenient()), "w + 1\nfoo(1) + 2")
	assert.Empty(t, diags)
	assert.NotNil(t, diags)
}

func TestUTF16Col(t *testing.T) {
	cases := []struct {
		line string
		col  int
		want protocol.UInteger
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"abc", 4, 3},
		{"abc", 6, 5},
		{"a😀b", 3, 3},
		{"π+x", 3, 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, utf16col(c.line, c.col), "%q at %d", c.line, c.col)
	}
}

func TestHover(t *testing.T) {
	v := postfix.NewVocabulary()
	doc := "x^2 + 1\n2*PI\n\n(1"
	h := Hover(v, doc, protocol.Position{Line: 0, Character: 3})
	require.NotNil(t, h)
	mc, ok := h.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, mc.Kind)
	assert.Equal(t, "`x 2 ^ 1 +`\n\nreads x", mc.Value)
	require.NotNil(t, h.Range)
	assert.Equal(t, protocol.UInteger(7), h.Range.End.Character)

	h = Hover(v, doc, protocol.Position{Line: 1})
	require.NotNil(t, h)
	mc = h.Contents.(protocol.MarkupContent)
	assert.Equal(t, "`2 PI *`\n\n= 6.283185307179586", mc.Value)

	assert.Nil(t, Hover(v, doc, protocol.Position{Line: 2}))
	assert.Nil(t, Hover(v, doc, protocol.Position{Line: 3}))
	assert.Nil(t, Hover(v, doc, protocol.Position{Line: 9}))
}

func TestComplete(t *testing.T) {
	v := postfix.NewVocabulary()
	labels := func(items []protocol.CompletionItem) []string {
		r := make([]string, len(items))
		for i, it := range items {
			r[i] = it.Label
		}
		return r
	}

	items := Complete(v, "s + si", protocol.Position{Character: 6})
	require.Len(t, items, 1)
	assert.Equal(t, "sin", items[0].Label)
	require.NotNil(t, items[0].InsertText)
	assert.Equal(t, "sin(", *items[0].InsertText)
	require.NotNil(t, items[0].Kind)
	assert.Equal(t, protocol.CompletionItemKindFunction, *items[0].Kind)

	items = Complete(v, "s + si", protocol.Position{Character: 4})
	assert.Len(t, items, 3+2+len(v.Functions()))

	items = Complete(v, "1\n2*e", protocol.Position{Line: 1, Character: 3})
	assert.Equal(t, []string{"E", "exp"}, labels(items))

	items = Complete(v, "x", protocol.Position{Character: 1})
	assert.Equal(t, []string{"x"}, labels(items))
}

func TestServerDocuments(t *testing.T) {
	ls := NewServer("test", nil)
	var published []protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, method)
			published = append(published, params.(protocol.PublishDiagnosticsParams))
		},
	}
	uri := protocol.DocumentUri("file:///tmp/a.expr")

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "1 +"},
	})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, uri, published[0].URI)
	assert.Len(t, published[0].Diagnostics, 1)

	err = ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "1 + 2"}},
	})
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Empty(t, published[1].Diagnostics)

	text, ok := ls.document(uri)
	require.True(t, ok)
	assert.Equal(t, "1 + 2", text)

	err = ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	_, ok = ls.document(uri)
	assert.False(t, ok)
	require.Len(t, published, 3)
	assert.Empty(t, published[2].Diagnostics)
}
