package postfix

import (
	"strings"
)

// DefaultVars returns the variable names a vocabulary recognizes when no Vars
// option is given.
func DefaultVars() []string {
	return []string{"x", "y", "z"}
}

// Vocabulary is the set of names and symbols an expression may use: variables,
// operators, and functions. A Vocabulary never changes after it is built, so
// it is safe to share between goroutines.
type Vocabulary struct {
	vars     map[string]bool
	ops      map[string]Binary
	opchars  string
	unary    map[string]Unary
	binary   map[string]Binary
	variadic map[string]Variadic
	eps      float64
	lenient  bool
}

// NewVocabulary builds a vocabulary from the defaults and the given options,
// applied in order. Later options win on name collisions.
func NewVocabulary(opts ...Option) *Vocabulary {
	var c config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	v := Vocabulary{
		vars:     make(map[string]bool),
		ops:      merge(nil, defaultops),
		unary:    merge(nil, defaultfuncs),
		binary:   make(map[string]Binary),
		variadic: make(map[string]Variadic),
		eps:      DefaultEpsilon,
		lenient:  c.lenient,
	}
	if c.epsset {
		v.eps = c.eps
	}
	v.unary["sgn"] = sign(v.eps)
	names := c.vars
	if names == nil {
		names = DefaultVars()
	}
	for _, name := range names {
		v.vars[name] = true
	}
	overlay(v.ops, c.ops)
	overlay(v.unary, c.unary)
	overlay(v.binary, c.binary)
	overlay(v.variadic, c.variadic)
	syms := make([]string, 0, len(v.ops))
	for sym := range v.ops {
		syms = append(syms, sym)
	}
	sortstrs(syms)
	v.opchars = strings.Join(syms, "")
	return &v
}

// overlay applies src over dst, deleting names that src maps to nil.
func overlay[V any](dst, src map[string]V) {
	for k, fn := range src {
		if isnil(fn) {
			delete(dst, k)
			continue
		}
		dst[k] = fn
	}
}

func isnil(fn any) bool {
	switch fn := fn.(type) {
	case Unary:
		return fn == nil
	case Binary:
		return fn == nil
	case Variadic:
		return fn == nil
	default:
		return fn == nil
	}
}

// IsVariable returns whether name is a configured variable name.
func (v *Vocabulary) IsVariable(name string) bool {
	return v.vars[name]
}

// Variables returns the configured variable names in sorted order.
func (v *Vocabulary) Variables() []string {
	r := make([]string, 0, len(v.vars))
	for name := range v.vars {
		r = append(r, name)
	}
	sortstrs(r)
	return r
}

// Operators returns the operator runes of the vocabulary.
func (v *Vocabulary) Operators() string {
	return v.opchars
}

// Operator returns the function for an operator symbol.
func (v *Vocabulary) Operator(sym string) (Binary, bool) {
	fn, ok := v.ops[sym]
	return fn, ok
}

// Functions returns the names of all functions of any arity in sorted order.
func (v *Vocabulary) Functions() []string {
	seen := make(map[string]bool, len(v.unary)+len(v.binary)+len(v.variadic))
	for name := range v.unary {
		seen[name] = true
	}
	for name := range v.binary {
		seen[name] = true
	}
	for name := range v.variadic {
		seen[name] = true
	}
	r := make([]string, 0, len(seen))
	for name := range seen {
		r = append(r, name)
	}
	sortstrs(r)
	return r
}

// IsFunction returns whether name is a function of any arity.
func (v *Vocabulary) IsFunction(name string) bool {
	return v.unary[name] != nil || v.binary[name] != nil || v.variadic[name] != nil
}

// CanCall returns whether name is a function accepting n arguments.
func (v *Vocabulary) CanCall(name string, n int) bool {
	switch {
	case n == 1 && v.unary[name] != nil:
		return true
	case n == 2 && v.binary[name] != nil:
		return true
	default:
		return n > 0 && v.variadic[name] != nil
	}
}

// Epsilon returns the magnitude below which sgn reports zero.
func (v *Vocabulary) Epsilon() float64 {
	return v.eps
}

// Lenient returns whether unbound identifiers evaluate to zero.
func (v *Vocabulary) Lenient() bool {
	return v.lenient
}

// prec returns the binding strength of a binary operator. Higher binds more
// tightly.
func (v *Vocabulary) prec(sym string) int {
	switch sym {
	case "+", "-":
		return precAdd
	case "^":
		return precPow
	default:
		return precMul
	}
}

const (
	precAdd = 1 + iota
	precMul
	precPow
)

// isConstant reports whether an identifier names a built-in constant.
func isConstant(name string) bool {
	return strings.EqualFold(name, "pi") || strings.EqualFold(name, "e")
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
