package postfix

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testbinfns = map[string]Binary{
	"sum_this": Dyadic(func(x, y float64) float64 { return x + y }),
}

func TestParseRPN(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  string
	}{
		{"num", "9", "9"},
		{"neg", "-9", "9 neg"},
		{"negneg", "--9", "9 neg neg"},
		{"plus", "+9", "+9"},
		{"negconst", "-E", "E neg"},
		{"add3", "9 + 3 + 6", "9 3 + 6 +"},
		{"prec", "9 + 3 / 11", "9 3 11 / +"},
		{"paren", "(9 + 3)", "9 3 +"},
		{"parendiv", "(9+3) / 11", "9 3 + 11 /"},
		{"sub3", "9 - 12 - 6", "9 12 - 6 -"},
		{"subparen", "9 - (12 - 6)", "9 12 6 - -"},
		{"mul", "2*3.14159", "2 3.14159 *"},
		{"pi", "PI * PI / 10", "PI PI * 10 /"},
		{"pilower", "pi^2", "PI 2 ^"},
		{"exp", "6.02E23 * 8.048", "6.02E23 8.048 *"},
		{"elower", "e / 3", "E 3 /"},
		{"call", "sin(PI/2)", "PI 2 / sin/1"},
		{"callnested", "round(abs(-E))", "E neg abs/1 round/1"},
		{"powright", "2^3^2", "2 3 2 ^ ^"},
		{"powadd", "2^3+2", "2 3 ^ 2 +"},
		{"powneg", "2^-3", "2 3 neg ^"},
		{"negpow", "-2^2", "2 neg 2 ^"},
		{"negparen", "-(2^2)", "2 2 ^ neg"},
		{"vars", "x*y+z", "x y * z +"},
		{"binary", "sum_this(x,x+y)", "x x y + sum_this/2"},
		{"unknowncall", "f(1, 2, 3)", "1 2 3 f/3"},
		{"unknownname", "w + 1", "w 1 +"},
		{"signedexp", "1e-3*x", "1e-3 x *"},
		{"space", "  1  +  2  ", "1 2 +"},
	}
	v := NewVocabulary(BinaryFuncs(testbinfns))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := v.Parse(c.src)
			require.NoError(t, err, "failed to parse %q", c.src)
			assert.Equal(t, c.rpn, s.String())
			assert.NotZero(t, s.Len())
		})
	}
}

func TestParseTokens(t *testing.T) {
	s, err := New(BinaryFuncs(testbinfns)).Parse("sum_this(x, -2.5e1) ^ PI")
	require.NoError(t, err)
	want := []Token{
		{Kind: TokenVariable, Text: "x", Pos: 10},
		{Kind: TokenNumber, Text: "2.5e1", Value: 25, Pos: 14},
		{Kind: TokenUnaryMinus, Text: "-", Pos: 13},
		{Kind: TokenFunction, Text: "sum_this", Arity: 2, Pos: 1},
		{Kind: TokenConstant, Text: "PI", Pos: 23},
		{Kind: TokenOperator, Text: "^", Pos: 21},
	}
	assert.Equal(t, want, s.Tokens())
	for i, tok := range want {
		assert.Equal(t, tok, s.At(i))
	}
}

func TestParseIdempotent(t *testing.T) {
	p := New()
	a, err := p.Parse("sin(x)^2 + cos(x)^2 - y/z")
	require.NoError(t, err)
	b, err := p.Parse("sin(x)^2 + cos(x)^2 - y/z")
	require.NoError(t, err)
	assert.Equal(t, a.Tokens(), b.Tokens())
	assert.Equal(t, a.String(), b.String())
}

func TestParseLiterals(t *testing.T) {
	cases := []struct {
		src string
		val float64
	}{
		{"0", 0},
		{"1.5", 1.5},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"1E-3", 0.001},
		{"+7", 7},
		{"1e400", math.Inf(1)},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			s, err := Compile(c.src)
			require.NoError(t, err)
			require.Equal(t, 1, s.Len())
			assert.Equal(t, TokenNumber, s.At(0).Kind)
			assert.Equal(t, c.val, s.At(0).Value)
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
	}{
		{"empty", "", &EmptyExpressionError{Col: 1}},
		{"spaces", "   ", &EmptyExpressionError{Col: 4}},
		{"unclosed", "(9+3", &BracketError{Col: 5, Left: "("}},
		{"unopened", "9+3)", &BracketError{Col: 4, Right: ")"}},
		{"trailingop", "9+", &EmptyExpressionError{Col: 3}},
		{"emptyparen", "()", &EmptyExpressionError{Col: 2, End: ")"}},
		{"adjacent", "2 3", &TokenError{Col: 3, Text: "3"}},
		{"adjacentparen", "2(3)", &TokenError{Col: 2, Text: "("}},
		{"sep", "1,2", &SeparatorError{Col: 2, Sep: ","}},
		{"parensep", "(1,2)", &SeparatorError{Col: 3, Sep: ","}},
		{"unarymul", "*2", &OperatorError{Col: 1, Operator: "*", Unary: true}},
		{"unaryplus", "+x", &OperatorError{Col: 1, Operator: "+", Unary: true}},
		{"arity", "sin(1, 2)", &CallError{Col: 1, Func: "sin", Len: 2}},
		{"bare", "sin + 1", &CallError{Col: 1, Func: "sin", Len: 0}},
		{"unclosedcall", "f(1", &BracketError{Col: 4, Left: "("}},
		{"nullary", "f()", &EmptyExpressionError{Col: 3, End: ")"}},
		{"trailingcomma", "f(1,)", &EmptyExpressionError{Col: 5, End: ")"}},
		{"leadingcomma", "f(,1)", &EmptyExpressionError{Col: 3, End: ","}},
		{"lex", "2 $", &LexError{Col: 3, Text: "$"}},
		{"number", "1.2.3", &LexError{Col: 4, Text: "1.2.", Kind: "number"}},
		{"constcall", "e(1)", &TokenError{Col: 2, Text: "("}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := Compile(c.src)
			require.Error(t, err, "%q parsed as %v", c.src, s)
			assert.Equal(t, c.err, err)
			assert.True(t, errors.Is(err, ErrSyntax), "%v is not a syntax error", err)
			var ie InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, c.err.Pos(), ie.Pos())
			assert.NotEmpty(t, err.Error())
			assert.Zero(t, s.Len())
		})
	}
}

func TestParserDiscardsOnFailure(t *testing.T) {
	p := New()
	_, err := p.Parse("x + 1")
	require.NoError(t, err)
	r, err := p.Evaluate(Bindings{"x": 2})
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)

	_, err = p.Parse("x +")
	require.Error(t, err)
	assert.Zero(t, p.Postfix().Len())
	_, err = p.Evaluate(Bindings{"x": 2})
	assert.ErrorIs(t, err, ErrNoExpression)

	_, err = p.Parse("x * 4")
	require.NoError(t, err)
	r, err = p.Evaluate(Bindings{"x": 2})
	require.NoError(t, err)
	assert.Equal(t, 8.0, r)
}

func TestParseVariableShadowsFunction(t *testing.T) {
	s, err := Compile("exp + exp(1)", Vars("exp"))
	require.NoError(t, err)
	assert.Equal(t, "exp 1 exp/1 +", s.String())
	assert.Equal(t, []string{"exp"}, s.Vars())
}

func TestParseCustomOperator(t *testing.T) {
	v := NewVocabulary(Operators(map[string]Binary{"%": Dyadic(math.Mod)}))
	cases := []struct {
		src string
		rpn string
	}{
		{"7 % 4", "7 4 %"},
		{"1 + 7 % 4", "1 7 4 % +"},
		{"2 * 7 % 4", "2 7 * 4 %"},
		{"7 % 2^2", "7 2 2 ^ %"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			s, err := v.Parse(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.rpn, s.String())
		})
	}
}

func TestParseRemovedOperator(t *testing.T) {
	v := NewVocabulary(Operators(map[string]Binary{"^": nil}))
	_, err := v.Parse("2^3")
	var le *LexError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Col)
}
