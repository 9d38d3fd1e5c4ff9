package postfix_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/postfix"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("sin(x)^2 + cos(y)^2")
	f.Add("1×2")
	f.Add("--(2^-3)")
	f.Add("f(1,,2)")
	f.Fuzz(func(t *testing.T, s string) {
		p, err := postfix.Compile(s)
		if err != nil {
			var ie postfix.InputError
			if !errors.As(err, &ie) {
				t.Errorf("%q: error %v has no position", s, err)
			}
			if !errors.Is(err, postfix.ErrSyntax) {
				t.Errorf("%q: error %v is not a syntax error", s, err)
			}
			return
		}
		if p.Len() == 0 {
			t.Errorf("%q: parsed to an empty sequence", s)
		}
		q, err := postfix.Compile(s)
		if err != nil || q.String() != p.String() {
			t.Errorf("%q: reparse gave %v, %v; want %v", s, q, err, p)
		}
	})
}

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y / x")
	f.Add("1×2")
	f.Add("sgn(ln(x))")
	f.Fuzz(func(t *testing.T, s string) {
		p, err := postfix.Compile(s, postfix.Lenient())
		if err != nil {
			return
		}
		// Evaluation must never panic on anything the parser accepts.
		p.Eval(postfix.Bindings{"x": 0, "y": 1})
	})
}
