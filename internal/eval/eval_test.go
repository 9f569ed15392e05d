package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jslang/jslin/internal/parser"
)

func evalSrc(t *testing.T, src string) (*Value, bool) {
	t.Helper()
	expr, err := parser.ParseExpression(src)
	require.NoError(t, err)
	return Evaluate(expr)
}

func mustEval(t *testing.T, src string) any {
	t.Helper()
	v, ok := evalSrc(t, src)
	require.True(t, ok, "expected %q to be static", src)
	return v.V
}

func TestEvaluateLiterals(t *testing.T) {
	assert.Equal(t, float64(42), mustEval(t, "42"))
	assert.Equal(t, "hi", mustEval(t, `"hi"`))
	assert.Equal(t, true, mustEval(t, "true"))
	assert.Nil(t, mustEval(t, "null"))
	assert.Equal(t, BigInt("10"), mustEval(t, "10n"))
}

func TestEvaluateRegexIsNotStatic(t *testing.T) {
	// each evaluation of a regex literal yields a distinct object
	_, ok := evalSrc(t, "/ab/g")
	assert.False(t, ok)
}

func TestEvaluateUnknownNodes(t *testing.T) {
	for _, src := range []string{"x", "a.b", "f()", "this", "new X()"} {
		_, ok := evalSrc(t, src)
		assert.False(t, ok, "%q should not be static", src)
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		src      string
		expected float64
	}{
		{"1 + 2", 3},
		{"10 - 4", 6},
		{"3 * 4", 12},
		{"10 / 4", 2.5},
		{"10 % 3", 1},
		{"2 ** 10", 1024},
		{"-5", -5},
		{"+true", 1},
		{"~0", -1},
		{"1 + null", 1},
		{"5 & 3", 1},
		{"5 | 3", 7},
		{"5 ^ 3", 6},
		{"1 << 4", 16},
		{"-16 >> 2", -4},
		{"-1 >>> 28", 15},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustEval(t, tt.src))
		})
	}
}

func TestEvaluateStringConcat(t *testing.T) {
	assert.Equal(t, "ab", mustEval(t, `"a" + "b"`))
	// + with one string side coerces the other
	assert.Equal(t, "a1", mustEval(t, `"a" + 1`))
	assert.Equal(t, "100x", mustEval(t, `100 + "x"`))
	assert.Equal(t, "nullish", mustEval(t, `null + "ish"`))
}

func TestEvaluateComparisons(t *testing.T) {
	assert.Equal(t, true, mustEval(t, "1 < 2"))
	assert.Equal(t, false, mustEval(t, "2 <= 1"))
	assert.Equal(t, true, mustEval(t, `"a" < "b"`))
	assert.Equal(t, true, mustEval(t, `1 === 1`))
	assert.Equal(t, false, mustEval(t, `1 === "1"`))
	assert.Equal(t, true, mustEval(t, `1 !== "1"`))
	assert.Equal(t, true, mustEval(t, `10n === 10n`))
	assert.Equal(t, false, mustEval(t, `10n === 11n`))
}

func TestEvaluateLooseEquality(t *testing.T) {
	// same-type comparisons fold
	assert.Equal(t, true, mustEval(t, `"a" == "a"`))
	assert.Equal(t, false, mustEval(t, `1 != 1`))
	// cross-type coercion is left alone
	_, ok := evalSrc(t, `1 == "1"`)
	assert.False(t, ok)
}

func TestEvaluateNaN(t *testing.T) {
	v := mustEval(t, `0 / 0`)
	f, ok := v.(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(f))

	// NaN is not equal to itself
	assert.Equal(t, false, mustEval(t, `0/0 === 0/0`))
}

func TestEvaluateLogical(t *testing.T) {
	// short-circuit keeps the deciding operand's value
	assert.Equal(t, float64(0), mustEval(t, `0 && x`))
	assert.Equal(t, float64(1), mustEval(t, `1 || x`))
	assert.Equal(t, "a", mustEval(t, `"a" ?? x`))
	assert.Equal(t, false, mustEval(t, `false ?? true`))
	assert.Equal(t, true, mustEval(t, `null ?? true`))

	// the right side is needed and unknown
	_, ok := evalSrc(t, `1 && x`)
	assert.False(t, ok)
	_, ok = evalSrc(t, `0 || x`)
	assert.False(t, ok)
}

func TestEvaluateUnaryOperators(t *testing.T) {
	assert.Equal(t, false, mustEval(t, `!1`))
	assert.Equal(t, true, mustEval(t, `!""`))
	assert.Equal(t, "number", mustEval(t, `typeof 1`))
	assert.Equal(t, "string", mustEval(t, `typeof "s"`))
	assert.Equal(t, "object", mustEval(t, `typeof null`))
	assert.Equal(t, "bigint", mustEval(t, `typeof 1n`))
	assert.Nil(t, mustEval(t, `void 0`))
}

func TestEvaluateConditional(t *testing.T) {
	assert.Equal(t, "yes", mustEval(t, `1 ? "yes" : "no"`))
	assert.Equal(t, "no", mustEval(t, `"" ? "yes" : "no"`))
	// only the taken branch needs to be static
	assert.Equal(t, float64(2), mustEval(t, `false ? x : 2`))
	_, ok := evalSrc(t, `true ? x : 2`)
	assert.False(t, ok)
}

func TestEvaluateSequence(t *testing.T) {
	assert.Equal(t, float64(3), mustEval(t, `1, 2, 3`))
	_, ok := evalSrc(t, `x, 3`)
	assert.False(t, ok)
}

func TestEvaluateTemplates(t *testing.T) {
	assert.Equal(t, "plain", mustEval(t, "`plain`"))
	assert.Equal(t, "n=5", mustEval(t, "`n=${2 + 3}`"))
	assert.Equal(t, "v=null", mustEval(t, "`v=${null}`"))
	_, ok := evalSrc(t, "`v=${x}`")
	assert.False(t, ok)
}

func TestEvaluateArraysAndObjects(t *testing.T) {
	v := mustEval(t, `[1, "a", null]`)
	assert.Equal(t, []any{float64(1), "a", nil}, v)

	obj := mustEval(t, `{ a: 1, "b": 2 }`)
	assert.Equal(t, map[string]any{"a": float64(1), "b": float64(2)}, obj)

	// spreads and accessors stop the fold
	_, ok := evalSrc(t, `[...xs]`)
	assert.False(t, ok)
	_, ok = evalSrc(t, `{ ...rest }`)
	assert.False(t, ok)
	_, ok = evalSrc(t, `{ a: x }`)
	assert.False(t, ok)
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(float64(0)))
	assert.False(t, Truthy(math.NaN()))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(BigInt("0")))
	assert.True(t, Truthy(float64(1)))
	assert.True(t, Truthy("x"))
	assert.True(t, Truthy(BigInt("10")))
	assert.True(t, Truthy([]any{}))
}

func TestToString(t *testing.T) {
	tests := []struct {
		name     string
		v        any
		expected string
	}{
		{"null", nil, "null"},
		{"true", true, "true"},
		{"string", "s", "s"},
		{"bigint", BigInt("42"), "42"},
		{"integer", float64(100), "100"},
		{"float", 1.5, "1.5"},
		{"negative zero exponent", 0.0000001, "1e-7"},
		{"large exponent", 1e21, "1e+21"},
		{"nan", math.NaN(), "NaN"},
		{"infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
		{"zero", float64(0), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToString(tt.v))
		})
	}
}
