// Package postfix implements a small arithmetic expression language over the
// reals with a pluggable vocabulary of variables, operators, and functions.
//
// An expression is parsed once into a Postfix sequence, in which every
// operator and function follows its operands, and then evaluated any number of
// times with different variable bindings:
//
//	p := postfix.New(postfix.BinaryFuncs(map[string]postfix.Binary{
//		"hypot": postfix.Dyadic(math.Hypot),
//	}))
//	if _, err := p.Parse("hypot(x, y) / 2"); err != nil {
//		// handle the syntax error
//	}
//	r, err := p.Evaluate(postfix.Bindings{"x": 3, "y": 4})
//
// The grammar has the usual precedence: "+" and "-" bind most loosely, then
// "*" and "/", then "^", which is right-associative, so "2^3^2" is 512. A
// leading "-" negates the following atom, including a parenthesized group, so
// "-2^2" is 4 but "-(2^2)" is -4. PI and E, in any case, are the mathematical
// constants.
//
// Identifiers that are not functions evaluate to their bindings. A missing
// binding or an unknown function is an error unless the vocabulary is Lenient,
// in which case it is zero.
package postfix
