package postfix

import (
	"errors"
	"strconv"
	"strings"
)

// expr   = term { ('+' | '-') term }
// term   = factor { ('*' | '/' | other operator) factor }
// factor = atom [ '^' factor ]
// atom   = '-' atom | ['+'] num | pi | e | call | name | '(' expr ')'
// call   = name '(' expr { ',' expr } ')'

// Parser parses expressions with a fixed vocabulary and keeps the most recent
// result for evaluation. A Parser must not be used to Parse concurrently with
// any other method, but the Postfix values it returns may be evaluated
// concurrently.
type Parser struct {
	vocab *Vocabulary
	seq   Postfix
	ok    bool
}

// New creates a parser with a vocabulary built from the defaults and opts.
func New(opts ...Option) *Parser {
	return &Parser{vocab: NewVocabulary(opts...)}
}

// NewParser creates a parser using an existing vocabulary.
func NewParser(v *Vocabulary) *Parser {
	return &Parser{vocab: v}
}

// Parse parses an expression and keeps the result for Evaluate. If parsing
// fails, the previously kept expression is discarded, so Evaluate returns
// ErrNoExpression until the next successful Parse.
func (p *Parser) Parse(text string) (Postfix, error) {
	s, err := p.vocab.Parse(text)
	if err != nil {
		p.seq, p.ok = Postfix{}, false
		return Postfix{}, err
	}
	p.seq, p.ok = s, true
	return s, nil
}

// Postfix returns the most recently parsed expression. The result is empty if
// nothing has been parsed successfully.
func (p *Parser) Postfix() Postfix {
	return p.seq
}

// Vocabulary returns the parser's vocabulary.
func (p *Parser) Vocabulary() *Vocabulary {
	return p.vocab
}

// Compile is a shortcut to build a vocabulary and parse one expression.
func Compile(text string, opts ...Option) (Postfix, error) {
	return NewVocabulary(opts...).Parse(text)
}

// Parse parses an expression into postfix order. Every error resulting from
// invalid input implements InputError and matches ErrSyntax.
func (v *Vocabulary) Parse(text string) (Postfix, error) {
	p := parsectx{
		scan:  lex(strings.NewReader(text), v.opchars),
		vocab: v,
	}
	if err := p.parseexpr(); err != nil {
		return Postfix{}, err
	}
	tok, err := p.scan.next()
	if err != nil {
		return Postfix{}, err
	}
	if tok.kind != tokenEOF {
		return Postfix{}, itShouldNotHaveEndedThisWay(tok, false)
	}
	if len(p.out) == 0 {
		panic("postfix: parse produced no tokens for " + strconv.Quote(text))
	}
	return Postfix{toks: p.out, vocab: v}, nil
}

// parsectx holds the state of a single parse.
type parsectx struct {
	scan  *lexer
	vocab *Vocabulary
	// out is the postfix sequence so far.
	out []Token
}

func (p *parsectx) emit(t Token) {
	p.out = append(p.out, t)
}

func (p *parsectx) parseexpr() error {
	return p.parselevel(precAdd)
}

// parselevel parses a left-associative chain of operators of one precedence
// level. Each operator is emitted after its right operand, so operators of the
// same level apply from left to right.
func (p *parsectx) parselevel(level int) error {
	if level >= precPow {
		return p.parsefactor()
	}
	if err := p.parselevel(level + 1); err != nil {
		return err
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return err
		}
		if tok.kind != tokenOp || p.vocab.prec(tok.text) != level {
			p.scan.push(tok)
			return nil
		}
		if err := p.parselevel(level + 1); err != nil {
			return err
		}
		p.emit(Token{Kind: TokenOperator, Text: tok.text, Pos: tok.pos})
	}
}

// parsefactor parses an atom with an optional exponent. The exponent is
// itself a factor, which makes exponentiation right-associative.
func (p *parsectx) parsefactor() error {
	if err := p.parseatom(); err != nil {
		return err
	}
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	if tok.kind != tokenOp || p.vocab.prec(tok.text) != precPow {
		p.scan.push(tok)
		return nil
	}
	if err := p.parsefactor(); err != nil {
		return err
	}
	p.emit(Token{Kind: TokenOperator, Text: tok.text, Pos: tok.pos})
	return nil
}

func (p *parsectx) parseatom() error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	switch tok.kind {
	case tokenOp:
		switch tok.text {
		case "-":
			// The negation applies after everything in the atom.
			if err := p.parseatom(); err != nil {
				return err
			}
			p.emit(Token{Kind: TokenUnaryMinus, Text: "-", Pos: tok.pos})
			return nil
		case "+":
			// A plus sign is only allowed as part of a numeric literal.
			num, err := p.scan.next()
			if err != nil {
				return err
			}
			if num.kind != tokenNum {
				return &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
			}
			return p.parsenum(num.text, "+"+num.text, tok.pos)
		default:
			return &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
	case tokenNum:
		return p.parsenum(tok.text, tok.text, tok.pos)
	case tokenIdent:
		return p.parseident(tok)
	case tokenOpen:
		if err := p.parseexpr(); err != nil {
			return err
		}
		end, err := p.scan.next()
		if err != nil {
			return err
		}
		if end.kind != tokenClose {
			return itShouldNotHaveEndedThisWay(end, true)
		}
		return nil
	case tokenClose, tokenSep:
		return &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenEOF:
		return &EmptyExpressionError{Col: tok.pos}
	default:
		panic("postfix: unknown token: " + tok.String())
	}
}

// parsenum emits a number token. lit is the literal as the lexer scanned it,
// and text is the literal including any sign.
func (p *parsectx) parsenum(lit, text string, pos int) error {
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// The lexer only produces literals ParseFloat understands.
		return &LexError{Text: lit, Kind: "number", Col: pos}
	}
	p.emit(Token{Kind: TokenNumber, Text: text, Value: v, Pos: pos})
	return nil
}

// parseident parses an atom beginning with an identifier: a constant, a
// function call, or a variable.
func (p *parsectx) parseident(tok lexToken) error {
	if isConstant(tok.text) {
		p.emit(Token{Kind: TokenConstant, Text: strings.ToUpper(tok.text), Pos: tok.pos})
		return nil
	}
	next, err := p.scan.peek()
	if err != nil {
		return err
	}
	if next.kind == tokenOpen {
		return p.parsecall(tok)
	}
	if !p.vocab.IsVariable(tok.text) && p.vocab.IsFunction(tok.text) {
		// Function names are reserved; a bare one is a call without its
		// argument list.
		return &CallError{Col: tok.pos, Func: tok.text, Len: 0}
	}
	p.emit(Token{Kind: TokenVariable, Text: tok.text, Pos: tok.pos})
	return nil
}

// parsecall parses the argument list of a call. Each argument is emitted in
// source order, followed by the function token.
func (p *parsectx) parsecall(name lexToken) error {
	p.scan.must()
	n := 0
	for {
		if err := p.parseexpr(); err != nil {
			return err
		}
		n++
		end, err := p.scan.next()
		if err != nil {
			return err
		}
		if end.kind == tokenClose {
			break
		}
		if end.kind != tokenSep {
			return itShouldNotHaveEndedThisWay(end, true)
		}
	}
	if p.vocab.IsFunction(name.text) && !p.vocab.CanCall(name.text, n) {
		return &CallError{Col: name.pos, Func: name.text, Len: n}
	}
	p.emit(Token{Kind: TokenFunction, Text: name.text, Arity: n, Pos: name.pos})
	return nil
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open indicates whether the
// subexpression is inside parentheses.
func itShouldNotHaveEndedThisWay(tok lexToken, open bool) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: openParen}
	case tokenClose:
		if open {
			panic("postfix: close bracket ended a bracketed expression: " + tok.String())
		}
		return &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		return &TokenError{Col: tok.pos, Text: tok.text}
	}
}
