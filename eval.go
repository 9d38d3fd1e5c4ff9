package postfix

import (
	"errors"
	"math"
	"strconv"
)

// Bindings maps variable names to their values for one evaluation.
type Bindings map[string]float64

// Evaluate evaluates the most recently parsed expression. The result is the
// same for the same bindings no matter how many times Evaluate is called.
func (p *Parser) Evaluate(b Bindings) (float64, error) {
	if !p.ok {
		return 0, ErrNoExpression
	}
	return p.seq.Eval(b)
}

// Eval evaluates the expression with the given bindings. It never modifies
// the sequence, so any number of goroutines may call Eval on the same Postfix.
func (s Postfix) Eval(b Bindings) (float64, error) {
	if len(s.toks) == 0 {
		return 0, ErrNoExpression
	}
	e := evaluator{
		toks:  s.toks,
		top:   len(s.toks),
		vocab: s.vocab,
		vars:  b,
	}
	r, err := e.eval()
	if err != nil {
		return 0, err
	}
	if e.top != 0 {
		panic("postfix: inconsistent sequence: " + strconv.Itoa(e.top) + " tokens left (bad parse?)")
	}
	return r, nil
}

// Eval is a shortcut to parse and evaluate an expression.
func Eval(text string, b Bindings, opts ...Option) (float64, error) {
	s, err := Compile(text, opts...)
	if err != nil {
		return 0, err
	}
	return s.Eval(b)
}

// evaluator is a cursor over a postfix sequence. Tokens at and above top have
// been consumed.
type evaluator struct {
	toks  []Token
	top   int
	vocab *Vocabulary
	vars  Bindings
}

func (e *evaluator) pop() Token {
	if e.top == 0 {
		panic("postfix: sequence underflow (bad parse?)")
	}
	e.top--
	return e.toks[e.top]
}

// eval consumes the operand that ends at the cursor and returns its value.
// Right operands end nearer the operator, so they are evaluated first.
func (e *evaluator) eval() (float64, error) {
	t := e.pop()
	switch t.Kind {
	case TokenNumber:
		return t.Value, nil
	case TokenConstant:
		switch t.Text {
		case "PI":
			return math.Pi, nil
		case "E":
			return math.E, nil
		default:
			panic("postfix: unknown constant " + strconv.Quote(t.Text))
		}
	case TokenVariable:
		if v, ok := e.vars[t.Text]; ok {
			return v, nil
		}
		if e.vocab.lenient {
			return 0, nil
		}
		if e.vocab.IsVariable(t.Text) {
			return 0, &UnboundVariableError{Name: t.Text}
		}
		return 0, &UnknownIdentifierError{Name: t.Text}
	case TokenUnaryMinus:
		x, err := e.eval()
		if err != nil {
			return 0, err
		}
		return -x, nil
	case TokenOperator:
		fn := e.vocab.ops[t.Text]
		if fn == nil {
			panic("postfix: unknown operator " + strconv.Quote(t.Text))
		}
		y, x, err := e.eval2()
		if err != nil {
			return 0, err
		}
		r, err := fn(x, y)
		return r, named(err, t.Text, x, y)
	case TokenFunction:
		return e.call(t)
	default:
		panic("postfix: invalid token " + t.Kind.String())
	}
}

// eval2 evaluates the two operands of a binary operation, right first.
func (e *evaluator) eval2() (y, x float64, err error) {
	y, err = e.eval()
	if err != nil {
		return 0, 0, err
	}
	x, err = e.eval()
	if err != nil {
		return 0, 0, err
	}
	return y, x, nil
}

func (e *evaluator) call(t Token) (float64, error) {
	if t.Arity == 1 {
		if fn := e.vocab.unary[t.Text]; fn != nil {
			x, err := e.eval()
			if err != nil {
				return 0, err
			}
			r, err := fn(x)
			return r, named(err, t.Text, x)
		}
	}
	if t.Arity == 2 {
		if fn := e.vocab.binary[t.Text]; fn != nil {
			y, x, err := e.eval2()
			if err != nil {
				return 0, err
			}
			r, err := fn(x, y)
			return r, named(err, t.Text, x, y)
		}
	}
	fn := e.vocab.variadic[t.Text]
	if fn == nil || t.Arity < 1 {
		if !e.vocab.lenient {
			return 0, &UnknownFunctionError{Name: t.Text, Arity: t.Arity}
		}
		// The arguments are still evaluated so the cursor stays on the
		// caller's operands.
		for i := 0; i < t.Arity; i++ {
			if _, err := e.eval(); err != nil {
				return 0, err
			}
		}
		return 0, nil
	}
	args := make([]float64, t.Arity)
	for i := len(args) - 1; i >= 0; i-- {
		x, err := e.eval()
		if err != nil {
			return 0, err
		}
		args[i] = x
	}
	r, err := fn(args)
	return r, named(err, t.Text, args...)
}

// named attributes an error from a function or operator to it. A domain error
// without a name gets one, and any other error becomes the cause of a domain
// error so that it still has a kind.
func named(err error, name string, args ...float64) error {
	if err == nil {
		return nil
	}
	var de *DomainError
	if !errors.As(err, &de) {
		return &DomainError{Func: name, Args: append([]float64(nil), args...), Err: err}
	}
	if de, ok := err.(*DomainError); ok && de.Func == "" {
		d := *de
		d.Func = name
		return &d
	}
	return err
}
