package postfix

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an unsigned integer or real literal.
	tokenNum
	// tokenIdent is a variable, constant, or function name.
	tokenIdent
	// tokenOp is an operator rune from the vocabulary.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is the function argument separator, a comma.
	tokenSep
)

var tokenKindNames = [...]string{
	tokenNone:  "None",
	tokenEOF:   "EOF",
	tokenNum:   "Num",
	tokenIdent: "Ident",
	tokenOp:    "Op",
	tokenOpen:  "Open",
	tokenClose: "Close",
	tokenSep:   "Sep",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// DefaultOperators contains the operator runes every vocabulary starts with.
const DefaultOperators = "+-*/^"

const (
	openParen  = "("
	closeParen = ")"
	separator  = ","
)

type lexer struct {
	src io.RuneScanner
	// ops is the set of runes lexed as operators.
	ops  string
	buf  strings.Builder
	rune int
	p    lexToken
	eof  bool
}

func lex(src io.RuneScanner, ops string) *lexer {
	return &lexer{
		src:  src,
		ops:  ops,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("postfix: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("postfix: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (lexToken, error) {
	tok, err := l.next()
	if err != nil {
		return tok, err
	}
	l.push(tok)
	return tok, nil
}

func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Later calls return the same EOF
// token again, so the parser may look past the end as often as it likes.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{kind: tokenEOF, pos: l.rune}, nil
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		case r == '(':
			tok.text = openParen
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = closeParen
			tok.kind = tokenClose
			return tok, nil
		case r == ',':
			tok.text = separator
			tok.kind = tokenSep
			return tok, nil
		default:
			if strings.ContainsRune(l.ops, r) {
				tok.text = string(r)
				tok.kind = tokenOp
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

func (l *lexer) scanNum() error {
	var dig, dot, e, le, ed bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if unicode.IsSpace(r) {
			l.unreadRune()
			break
		}
		if (r == '+' || r == '-') && le {
			// A sign immediately following an exponent marker belongs to the
			// exponent. Anywhere else it is an operator.
			le = false
			l.buf.WriteRune(r)
			continue
		}
		if strings.ContainsRune(l.ops, r) || r == '(' || r == ')' || r == ',' {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		switch r {
		case '.':
			if dot || e {
				return l.error("number")
			}
			dot = true
			le = false
		case 'e', 'E':
			if !dig || e {
				return l.error("number")
			}
			e = true
			le = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		default:
			return l.error("number")
		}
	}
	if !dig || (e && !ed) {
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune - 1,
	}
}
