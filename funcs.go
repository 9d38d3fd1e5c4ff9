package postfix

import (
	"math"
)

// Unary is a function of one real argument. It returns a *DomainError, or an
// error wrapping one, when x is outside its domain.
type Unary func(x float64) (float64, error)

// Binary is a function of two real arguments, used for both infix operators
// and two-argument functions. x is the left operand.
type Binary func(x, y float64) (float64, error)

// Variadic is a function of any positive number of real arguments, given in
// source order. The function must not retain args.
type Variadic func(args []float64) (float64, error)

// Monadic wraps a plain function of one variable into a Unary. A non-finite
// result from a finite argument is reported as a domain error.
func Monadic(f func(x float64) float64) Unary {
	return func(x float64) (float64, error) {
		r := f(x)
		if !finite(r) && finite(x) {
			return 0, &DomainError{Args: []float64{x}}
		}
		return r, nil
	}
}

// Dyadic wraps a plain function of two variables into a Binary. A non-finite
// result from finite arguments is reported as a domain error.
func Dyadic(f func(x, y float64) float64) Binary {
	return func(x, y float64) (float64, error) {
		r := f(x, y)
		if !finite(r) && finite(x) && finite(y) {
			return 0, &DomainError{Args: []float64{x, y}}
		}
		return r, nil
	}
}

// Polyadic wraps a plain function of any number of variables into a Variadic.
// A non-finite result from finite arguments is reported as a domain error.
func Polyadic(f func(args ...float64) float64) Variadic {
	return func(args []float64) (float64, error) {
		r := f(args...)
		if finite(r) {
			return r, nil
		}
		for _, x := range args {
			if !finite(x) {
				return r, nil
			}
		}
		return 0, &DomainError{Args: append([]float64(nil), args...)}
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// DefaultEpsilon is the magnitude below which sgn reports zero.
const DefaultEpsilon = 1e-12

var defaultops = map[string]Binary{
	"+": Dyadic(func(x, y float64) float64 { return x + y }),
	"-": Dyadic(func(x, y float64) float64 { return x - y }),
	"*": Dyadic(func(x, y float64) float64 { return x * y }),
	"/": func(x, y float64) (float64, error) {
		// Guard against x/0 rather than producing infinities.
		if y == 0 {
			return 0, &DomainError{Func: "/", Args: []float64{x, y}}
		}
		return x / y, nil
	},
	"^": Dyadic(math.Pow),
}

// defaultfuncs are the unary functions every vocabulary starts with, except
// sgn, which depends on the vocabulary's epsilon.
var defaultfuncs = map[string]Unary{
	"sin":   Monadic(math.Sin),
	"cos":   Monadic(math.Cos),
	"tan":   Monadic(math.Tan),
	"abs":   Monadic(math.Abs),
	"trunc": Monadic(math.Trunc),
	"round": Monadic(math.Round),
	"sqrt":  Monadic(math.Sqrt),
	"exp":   Monadic(math.Exp),
	"ln":    Monadic(math.Log),
	"log":   Monadic(math.Log10),
}

// sign returns the sgn function for a given epsilon.
func sign(eps float64) Unary {
	return func(x float64) (float64, error) {
		switch {
		case math.IsNaN(x):
			return 0, &DomainError{Func: "sgn", Args: []float64{x}}
		case math.Abs(x) <= eps:
			return 0, nil
		case x < 0:
			return -1, nil
		default:
			return 1, nil
		}
	}
}
