package postfix

import (
	"strconv"
	"strings"
)

// Token is one element of a postfix sequence.
type Token struct {
	// Kind is the kind of the token.
	Kind TokenKind
	// Text is the source text of the token: the literal, name, or operator
	// symbol. It is "-" for TokenUnaryMinus.
	Text string
	// Value is the value of a TokenNumber.
	Value float64
	// Arity is the number of arguments of a TokenFunction.
	Arity int
	// Pos is the column of the token in the source, starting at 1.
	Pos int
}

// TokenKind is the kind of a Token.
type TokenKind int8

const (
	TokenNone TokenKind = iota

	TokenNumber     // push Value
	TokenConstant   // push pi or e
	TokenVariable   // push lookup(Text)
	TokenOperator   // pop right, pop left, push op(left, right)
	TokenUnaryMinus // pop, push negation
	TokenFunction   // pop Arity args, push call
)

var tokenNames = [...]string{
	TokenNone:       "None",
	TokenNumber:     "Number",
	TokenConstant:   "Constant",
	TokenVariable:   "Variable",
	TokenOperator:   "Operator",
	TokenUnaryMinus: "UnaryMinus",
	TokenFunction:   "Function",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// String formats the token as it appears in RPN text. Functions carry their
// arity after a slash, e.g. "max/3", and unary minus is written "neg".
func (t Token) String() string {
	switch t.Kind {
	case TokenUnaryMinus:
		return "neg"
	case TokenFunction:
		return t.Text + "/" + strconv.Itoa(t.Arity)
	default:
		return t.Text
	}
}

// Postfix is a parsed expression: a sequence of tokens in which every operator
// and function follows all of its operands. A Postfix is immutable and safe to
// evaluate from many goroutines at once.
type Postfix struct {
	toks  []Token
	vocab *Vocabulary
}

// Len returns the number of tokens in the sequence.
func (s Postfix) Len() int {
	return len(s.toks)
}

// At returns the token at index i.
func (s Postfix) At(i int) Token {
	return s.toks[i]
}

// Tokens returns a copy of the token sequence.
func (s Postfix) Tokens() []Token {
	return append([]Token(nil), s.toks...)
}

// Vocabulary returns the vocabulary the sequence was parsed with.
func (s Postfix) Vocabulary() *Vocabulary {
	return s.vocab
}

// Vars returns the sorted, distinct names the expression reads as variables.
func (s Postfix) Vars() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range s.toks {
		if t.Kind == TokenVariable && !seen[t.Text] {
			seen[t.Text] = true
			names = append(names, t.Text)
		}
	}
	sortstrs(names)
	return names
}

// String formats the sequence as space-separated RPN text, e.g. "9 3 + 11 /".
func (s Postfix) String() string {
	var b strings.Builder
	for i, t := range s.toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}
