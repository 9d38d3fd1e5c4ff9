package lsp

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/zephyrtronium/postfix"
)

// splitLines returns the lines of a document. Each non-blank line is one
// expression.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Diagnose parses every line of a document and reports syntax errors, names
// outside the vocabulary, and closed expressions that fail to evaluate.
func Diagnose(v *postfix.Vocabulary, text string) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}
	for i, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		diags = append(diags, diagnoseLine(v, line, protocol.UInteger(i))...)
	}
	return diags
}

func diagnoseLine(v *postfix.Vocabulary, line string, n protocol.UInteger) []protocol.Diagnostic {
	s, err := v.Parse(line)
	if err != nil {
		col := 1
		var ie postfix.InputError
		if errors.As(err, &ie) {
			col = ie.Pos()
		}
		return []protocol.Diagnostic{diagnostic(line, n, col, protocol.DiagnosticSeverityError, err.Error())}
	}
	var diags []protocol.Diagnostic
	for _, tok := range s.Tokens() {
		switch {
		case tok.Kind == postfix.TokenVariable && !v.IsVariable(tok.Text) && !v.Lenient():
			msg := "unknown identifier " + strconv.Quote(tok.Text)
			diags = append(diags, diagnostic(line, n, tok.Pos, protocol.DiagnosticSeverityWarning, msg))
		case tok.Kind == postfix.TokenFunction && !v.CanCall(tok.Text, tok.Arity) && !v.Lenient():
			msg := "unknown function " + tok.String()
			diags = append(diags, diagnostic(line, n, tok.Pos, protocol.DiagnosticSeverityWarning, msg))
		}
	}
	if len(diags) != 0 || len(s.Vars()) != 0 {
		return diags
	}
	if _, err := s.Eval(nil); err != nil {
		diags = append(diags, diagnostic(line, n, s.At(s.Len()-1).Pos, protocol.DiagnosticSeverityWarning, err.Error()))
	}
	return diags
}

func diagnostic(line string, n protocol.UInteger, col int, sev protocol.DiagnosticSeverity, msg string) protocol.Diagnostic {
	start := utf16col(line, col)
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: n, Character: start},
			End:   protocol.Position{Line: n, Character: start + 1},
		},
		Severity: &sev,
		Source:   &source,
		Message:  msg,
	}
}

// utf16col converts a 1-based rune column to a 0-based UTF-16 offset.
func utf16col(line string, col int) protocol.UInteger {
	var c protocol.UInteger
	for _, r := range line {
		if col <= 1 {
			break
		}
		col--
		if r >= 0x10000 {
			c += 2
		} else {
			c++
		}
	}
	// Positions past the end, as at EOF, count one unit per rune.
	return c + protocol.UInteger(max(col-1, 0))
}

// runeIndex converts a 0-based UTF-16 offset to a byte index into line.
func runeIndex(line string, ch protocol.UInteger) int {
	var c protocol.UInteger
	for i, r := range line {
		if c >= ch {
			return i
		}
		if r >= 0x10000 {
			c += 2
		} else {
			c++
		}
	}
	return len(line)
}

// Hover describes the expression on the hovered line: its postfix form and,
// when it reads no variables, its value.
func Hover(v *postfix.Vocabulary, text string, pos protocol.Position) *protocol.Hover {
	lines := splitLines(text)
	if int(pos.Line) >= len(lines) {
		return nil
	}
	line := lines[pos.Line]
	if strings.TrimSpace(line) == "" {
		return nil
	}
	s, err := v.Parse(line)
	if err != nil {
		return nil
	}
	var b strings.Builder
	b.WriteString("`")
	b.WriteString(s.String())
	b.WriteString("`")
	if vars := s.Vars(); len(vars) != 0 {
		b.WriteString("\n\nreads ")
		b.WriteString(strings.Join(vars, ", "))
	} else if r, err := s.Eval(nil); err == nil {
		b.WriteString("\n\n= ")
		b.WriteString(strconv.FormatFloat(r, 'g', -1, 64))
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: b.String(),
		},
		Range: &protocol.Range{
			Start: protocol.Position{Line: pos.Line, Character: 0},
			End:   protocol.Position{Line: pos.Line, Character: utf16col(line, len([]rune(line))+1)},
		},
	}
}

// Complete lists the variables, constants, and functions of the vocabulary
// that extend the identifier ending at pos.
func Complete(v *postfix.Vocabulary, text string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(text)
	var prefix string
	if int(pos.Line) < len(lines) {
		line := lines[pos.Line]
		end := runeIndex(line, pos.Character)
		start := strings.LastIndexFunc(line[:end], func(r rune) bool {
			return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if start >= 0 {
			_, sz := utf8.DecodeRuneInString(line[start:])
			start += sz
		} else {
			start = 0
		}
		prefix = line[start:end]
	}

	items := []protocol.CompletionItem{}
	add := func(label string, kind protocol.CompletionItemKind, detail, insert string) {
		items = append(items, protocol.CompletionItem{
			Label:      label,
			Kind:       &kind,
			Detail:     &detail,
			InsertText: &insert,
		})
	}
	for _, name := range v.Variables() {
		if strings.HasPrefix(name, prefix) {
			add(name, protocol.CompletionItemKindVariable, "variable", name)
		}
	}
	for _, name := range []string{"PI", "E"} {
		if len(prefix) <= len(name) && strings.EqualFold(name[:len(prefix)], prefix) {
			add(name, protocol.CompletionItemKindConstant, "constant", name)
		}
	}
	for _, name := range v.Functions() {
		if strings.HasPrefix(name, prefix) {
			add(name, protocol.CompletionItemKindFunction, "function", name+"(")
		}
	}
	return items
}
