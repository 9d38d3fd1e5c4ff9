package postfix

import (
	"errors"
	"strconv"
	"strings"
)

// Error kinds. Every error returned from parsing or evaluation matches one of
// these with errors.Is. Errors from user functions that are not domain errors
// are reported as the cause of one.
var (
	// ErrSyntax is the kind of every error caused by input that does not match
	// the grammar.
	ErrSyntax = errors.New("syntax error")
	// ErrUnboundVariable is the kind of errors for configured variables that
	// have no value in the bindings.
	ErrUnboundVariable = errors.New("unbound variable")
	// ErrUnknownIdentifier is the kind of errors for identifiers that are
	// neither configured variables nor bound.
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrUnknownFunction is the kind of errors for calls to names that have no
	// function in the vocabulary.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrDomain is the kind of errors for operators and functions applied
	// outside their domain.
	ErrDomain = errors.New("numeric domain error")
	// ErrNoExpression is returned when evaluating with a Parser that has not
	// successfully parsed anything.
	ErrNoExpression = errors.New("no expression parsed")
)

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number"
	// or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the position of the invalid rune.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return ErrSyntax
}

// OperatorError is an error indicating an operator token in a position where
// the parser cannot use it. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrSyntax
}

// BracketError is an error indicating unbalanced parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the offending token.
	Col int
	// Left is the opening bracket, or empty if there was none.
	Left string
	// Right is the closing bracket, or empty if there was none.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrSyntax
}

// SeparatorError is an error indicating a comma outside a function argument
// list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

func (err *SeparatorError) Unwrap() error {
	return ErrSyntax
}

// CallError is an error indicating a call to a known function with a number of
// arguments it does not accept. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Unwrap() error {
	return ErrSyntax
}

// EmptyExpressionError is an error indicating an empty expression or
// subexpression. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrSyntax
}

// TokenError is an error indicating input left over after a complete
// expression, e.g. the 3 in "2 3". It implements InputError.
type TokenError struct {
	// Col is the position of the unexpected token.
	Col int
	// Text is the unexpected token.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text)+" after expression")
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Unwrap() error {
	return ErrSyntax
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
)

// UnboundVariableError is an error from a lookup for a configured variable that
// is missing from the bindings.
type UnboundVariableError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UnboundVariableError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

func (err *UnboundVariableError) Unwrap() error {
	return ErrUnboundVariable
}

// UnknownIdentifierError is an error from a lookup for an identifier that is
// not a configured variable and is missing from the bindings.
type UnknownIdentifierError struct {
	// Name is the identifier.
	Name string
}

func (err *UnknownIdentifierError) Error() string {
	return "unknown identifier: " + strconv.Quote(err.Name)
}

func (err *UnknownIdentifierError) Unwrap() error {
	return ErrUnknownIdentifier
}

// UnknownFunctionError is an error from a call to a name that has no function
// of the call's arity.
type UnknownFunctionError struct {
	// Name is the function name.
	Name string
	// Arity is the number of arguments in the call.
	Arity int
}

func (err *UnknownFunctionError) Error() string {
	return "unknown function: " + strconv.Quote(err.Name) + " with " + strconv.Itoa(err.Arity) + " arguments"
}

func (err *UnknownFunctionError) Unwrap() error {
	return ErrUnknownFunction
}

// DomainError is an error returned when an operator or function is applied to
// arguments outside its domain.
type DomainError struct {
	// Func is a name identifying the function or operator.
	Func string
	// Args are the arguments it was applied to.
	Args []float64
	// Err is the error the function returned, if it was not a DomainError.
	Err error
}

func (err *DomainError) Error() string {
	var b strings.Builder
	b.WriteString("(")
	for i, x := range err.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	b.WriteString(") outside domain")
	if err.Func != "" {
		b.WriteString(" of ")
		b.WriteString(err.Func)
	}
	if err.Err != nil {
		b.WriteString(": ")
		b.WriteString(err.Err.Error())
	}
	return b.String()
}

func (err *DomainError) Unwrap() []error {
	if err.Err == nil {
		return []error{ErrDomain}
	}
	return []error{ErrDomain, err.Err}
}
