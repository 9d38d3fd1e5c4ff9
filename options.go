package postfix

import (
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Option is an option for building a vocabulary.
type Option interface {
	option(config) config
}

type (
	varsopt     []string
	opsopt      map[string]Binary
	funcsopt    map[string]Unary
	binfuncsopt map[string]Binary
	varfuncsopt map[string]Variadic
	epsopt      float64
	lenientopt  struct{}
)

// config collects options before the vocabulary is built.
type config struct {
	// vars is the list of variable names, or nil to use the defaults.
	vars []string
	// ops, unary, binary, and variadic are merged over the defaults, in
	// order. A nil entry removes the name.
	ops      map[string]Binary
	unary    map[string]Unary
	binary   map[string]Binary
	variadic map[string]Variadic
	// eps is the sgn epsilon if epsset is true.
	eps     float64
	epsset  bool
	lenient bool
}

// Vars sets the names recognized as variables, replacing the default x, y, z.
// Panics if any name is not an identifier.
func Vars(names ...string) Option {
	for _, name := range names {
		mustIdent(name)
	}
	return varsopt(append([]string{}, names...))
}

func (o varsopt) option(c config) config {
	c.vars = o
	return c
}

// Operators sets binary infix operators. Each key must be a single rune that
// is not a letter, digit, space, underscore, period, parenthesis, or comma.
// The default operators + - * / ^ keep their precedence when replaced; any
// other operator binds like * and /. To remove an operator, map it to nil.
func Operators(ops map[string]Binary) Option {
	for sym := range ops {
		mustOperator(sym)
	}
	return opsopt(ops)
}

func (o opsopt) option(c config) config {
	c.ops = merge(c.ops, o)
	return c
}

// Funcs sets unary functions. To remove a function, map it to nil. The
// constant names pi and e always take precedence over functions.
func Funcs(fns map[string]Unary) Option {
	for name := range fns {
		mustIdent(name)
	}
	return funcsopt(fns)
}

func (o funcsopt) option(c config) config {
	c.unary = merge(c.unary, o)
	return c
}

// BinaryFuncs sets functions of two arguments, called like name(x, y).
func BinaryFuncs(fns map[string]Binary) Option {
	for name := range fns {
		mustIdent(name)
	}
	return binfuncsopt(fns)
}

func (o binfuncsopt) option(c config) config {
	c.binary = merge(c.binary, o)
	return c
}

// VariadicFuncs sets functions accepting any positive number of arguments.
// Unary and binary functions of the same name are preferred for calls with
// one or two arguments.
func VariadicFuncs(fns map[string]Variadic) Option {
	for name := range fns {
		mustIdent(name)
	}
	return varfuncsopt(fns)
}

func (o varfuncsopt) option(c config) config {
	c.variadic = merge(c.variadic, o)
	return c
}

// Epsilon sets the magnitude below which sgn reports zero. Panics if eps is
// negative or NaN.
func Epsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) {
		panic("postfix: invalid epsilon " + strconv.FormatFloat(eps, 'g', -1, 64))
	}
	return epsopt(eps)
}

func (o epsopt) option(c config) config {
	c.eps = float64(o)
	c.epsset = true
	return c
}

// Lenient makes evaluation treat identifiers missing from the bindings, and
// calls to functions missing from the vocabulary, as zero instead of failing.
// The arguments of such calls are still evaluated.
func Lenient() Option {
	return lenientopt{}
}

func (lenientopt) option(c config) config {
	c.lenient = true
	return c
}

// merge copies src over dst, allocating dst if needed. The option maps belong
// to the caller, so they are never used directly.
func merge[V any](dst, src map[string]V) map[string]V {
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func mustIdent(name string) {
	if !isIdent(name) {
		panic("postfix: invalid name " + strconv.Quote(name))
	}
}

func mustOperator(sym string) {
	r, sz := utf8.DecodeRuneInString(sym)
	if sz == 0 || sz != len(sym) || r == utf8.RuneError {
		panic("postfix: operator must be one rune: " + strconv.Quote(sym))
	}
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
	case r == '_', r == '.', r == '(', r == ')', r == ',':
	default:
		return
	}
	panic("postfix: cannot use " + strconv.Quote(sym) + " as an operator")
}
