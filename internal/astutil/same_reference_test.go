package astutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/eval"
	"github.com/jslang/jslin/internal/parser"
)

func mustExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := parser.ParseExpression(src)
	require.NoError(t, err, "parse %q", src)
	require.NotNil(t, expr)
	return expr
}

func TestSameReference(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		want  bool
	}{
		{"same identifier", "a", "a", true},
		{"different identifiers", "a", "b", false},
		{"this vs this", "this", "this", true},
		{"this vs identifier", "this", "a", false},
		{"dot vs dot", "a.b", "a.b", true},
		{"dot vs bracket string", "a.b", `a["b"]`, true},
		{"bracket string both sides", `a["b"]`, `a["b"]`, true},
		{"different property names", "a.b", "a.c", false},
		{"different bases", "a.b", "c.b", false},
		{"computed identifier key is dynamic", "a.b", "a[b]", false},
		{"dynamic key never matches itself", "a[b]", "a[b]", false},
		{"two different dynamic keys", "a[x]", "a[y]", false},
		{"number key stringifies", "a[1]", `a["1"]`, true},
		{"number key both sides", "a[100]", "a[100]", true},
		{"number vs different string", "a[1]", `a["2"]`, false},
		{"nested chains", "a.b.c", `a["b"]["c"]`, true},
		{"nested chain mismatch", "a.b.c", `a["b"]["d"]`, false},
		{"deep base mismatch", "a.b.c", "x.b.c", false},
		{"optional chain parity", "a?.b", "a.b", true},
		{"optional chain both sides", "a?.b", "a?.b", true},
		{"optional deep", "a?.b.c", "a.b.c", true},
		{"optional inner only", "a.b?.c", "a.b.c", true},
		{"calls are not references", "f()", "f()", false},
		{"call in base", "f().a", "f().a", false},
		{"binary expressions are not references", "a + b", "a + b", false},
		{"literal equal", "1", "1", true},
		{"literal unequal", "1", "2", false},
		{"string literal equal", `"x"`, `"x"`, true},
		{"string vs number literal", `"1"`, "1", false},
		{"null literals", "null", "null", true},
		{"boolean literals", "true", "true", true},
		{"bigint equal", "10n", "10n", true},
		{"bigint unequal raw", "10n", "0x0an", false},
		{"regex equal", "/a/g", "/a/g", true},
		{"regex different flags", "/a/g", "/a/gi", false},
		{"regex flag order matters", "/a/gi", "/a/ig", false},
		{"this member", "this.a", "this.a", true},
		{"template key with no substitution", "a[`b`]", "a.b", true},
		{"folded key", `a["b" + "c"]`, "a.bc", true},
		{"mixed member and identifier", "a.b", "b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left := mustExpr(t, tt.left)
			right := mustExpr(t, tt.right)
			got := SameReference(left, right)
			assert.Equal(t, tt.want, got, "SameReference(%s, %s)", tt.left, tt.right)
			// the relation is symmetric even though the implementation
			// resolves the left name first
			assert.Equal(t, tt.want, SameReference(right, left),
				"SameReference(%s, %s)", tt.right, tt.left)
		})
	}
}

func TestSameReferenceReflexivity(t *testing.T) {
	for _, src := range []string{"a", "this", "a.b", "a.b.c", `a["b"]`, "a?.b"} {
		expr := mustExpr(t, src)
		assert.True(t, SameReference(expr, expr), "node parsed from %q", src)
	}
}

func TestSameReferenceChainTransparency(t *testing.T) {
	m := mustExpr(t, "a.b")
	wrapped := &ast.ChainExpression{Expression: m}

	assert.True(t, SameReference(m, wrapped))
	assert.True(t, SameReference(wrapped, m))
	assert.True(t, SameReference(wrapped, wrapped))
}

func TestSameReferenceNilSafety(t *testing.T) {
	expr := mustExpr(t, "a.b")
	assert.False(t, SameReference(nil, expr))
	assert.False(t, SameReference(expr, nil))
	assert.False(t, SameReference(nil, nil))

	// a malformed member node without a property resolves to no name
	broken := &ast.MemberExpression{Object: mustExpr(t, "a")}
	assert.False(t, SameReference(broken, expr))
	_, ok := StaticPropertyName(broken)
	assert.False(t, ok)
}

func TestSameReferenceSuper(t *testing.T) {
	prog, err := parser.Parse(`class A extends B {
		m() { super.x; super.x; }
	}`)
	require.NoError(t, err)

	var supers []ast.Expr
	ast.Inspect(prog, func(n ast.Node) bool {
		if m, ok := n.(*ast.MemberExpression); ok {
			if _, isSuper := m.Object.(*ast.Super); isSuper {
				supers = append(supers, m)
			}
		}
		return true
	})
	require.Len(t, supers, 2)
	assert.True(t, SameReference(supers[0], supers[1]))
}

func TestStaticPropertyName(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		ok   bool
	}{
		{"dot access", "a.b", "b", true},
		{"bracket string", `a["b"]`, "b", true},
		{"bracket number", "a[100]", "100", true},
		{"bracket float", "a[1.5]", "1.5", true},
		{"bracket boolean", "a[true]", "true", true},
		{"bracket null", "a[null]", "null", true},
		{"bracket bigint", "a[1n]", "1", true},
		{"bracket template", "a[`b`]", "b", true},
		{"bracket folded", `a["b" + "c"]`, "bc", true},
		{"computed identifier", "a[b]", "", false},
		{"computed call", "a[f()]", "", false},
		{"computed regex", "a[/x/]", "", false},
		{"optional chain", "a?.b", "b", true},
		{"keyword name", "a.in", "in", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := mustExpr(t, tt.src)
			name, ok := StaticPropertyName(expr)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, name)
			}
		})
	}
}

func TestStaticPropertyNameOnProperties(t *testing.T) {
	prog, err := parser.Parse(`var o = { a: 1, "b": 2, [c]: 3, [1 + 1]: 4, get d() {} };`)
	require.NoError(t, err)

	var props []*ast.Property
	ast.Inspect(prog, func(n ast.Node) bool {
		if p, ok := n.(*ast.Property); ok {
			props = append(props, p)
		}
		return true
	})
	require.Len(t, props, 5)

	type result struct {
		name string
		ok   bool
	}
	want := []result{{"a", true}, {"b", true}, {"", false}, {"2", true}, {"d", true}}
	for i, p := range props {
		name, ok := StaticPropertyName(p)
		assert.Equal(t, want[i].ok, ok, "property %d", i)
		assert.Equal(t, want[i].name, name, "property %d", i)
	}
}

func TestStaticPropertyNameOnMethodDefinitions(t *testing.T) {
	prog, err := parser.Parse(`class A { m() {} "n"() {} [x]() {} 42() {} }`)
	require.NoError(t, err)

	var methods []*ast.MethodDefinition
	ast.Inspect(prog, func(n ast.Node) bool {
		if m, ok := n.(*ast.MethodDefinition); ok {
			methods = append(methods, m)
		}
		return true
	})
	require.Len(t, methods, 4)

	name, ok := StaticPropertyName(methods[0])
	assert.True(t, ok)
	assert.Equal(t, "m", name)

	name, ok = StaticPropertyName(methods[1])
	assert.True(t, ok)
	assert.Equal(t, "n", name)

	_, ok = StaticPropertyName(methods[2])
	assert.False(t, ok)

	name, ok = StaticPropertyName(methods[3])
	assert.True(t, ok)
	assert.Equal(t, "42", name)
}

func TestStaticPropertyNameUnsupportedNodes(t *testing.T) {
	_, ok := StaticPropertyName(mustExpr(t, "a"))
	assert.False(t, ok)
	_, ok = StaticPropertyName(mustExpr(t, "f()"))
	assert.False(t, ok)
	_, ok = StaticPropertyName(nil)
	assert.False(t, ok)
}

// A stubbed oracle proves the equality logic is independent of the bundled
// constant folder.
func TestSameReferenceWithStubEvaluator(t *testing.T) {
	never := EvaluatorFunc(func(ast.Expr) (*eval.Value, bool) {
		return nil, false
	})
	always := EvaluatorFunc(func(ast.Expr) (*eval.Value, bool) {
		return &eval.Value{V: "k"}, true
	})

	left := mustExpr(t, `a["b"]`)
	right := mustExpr(t, "a.b")

	// with folding disabled the bracket key is unresolvable
	assert.False(t, SameReferenceWithEvaluator(never, left, right))
	// non-computed a.b never consults the oracle
	name, ok := StaticPropertyNameWithEvaluator(never, right)
	assert.True(t, ok)
	assert.Equal(t, "b", name)

	// an oracle that resolves every key makes any computed pair match
	assert.True(t, SameReferenceWithEvaluator(always, mustExpr(t, "a[x]"), mustExpr(t, "a[y]")))
}

func TestLiteralsEqualDirect(t *testing.T) {
	re := func(pat, flags string) *ast.Literal {
		return &ast.Literal{Regex: &ast.RegexData{Pattern: pat, Flags: flags}}
	}

	assert.True(t, literalsEqual(re("a", "g"), re("a", "g")))
	assert.False(t, literalsEqual(re("a", "g"), re("b", "g")))
	assert.False(t, literalsEqual(re("a", "gi"), re("a", "ig")))
	// regex on one side only never matches, even against a same-raw string
	assert.False(t, literalsEqual(re("a", "g"), &ast.Literal{Value: "/a/g"}))

	big := func(digits string) *ast.Literal { return &ast.Literal{BigInt: digits} }
	assert.True(t, literalsEqual(big("10"), big("10")))
	assert.False(t, literalsEqual(big("10"), big("010")))
	assert.False(t, literalsEqual(big("10"), &ast.Literal{Value: float64(10)}))

	// plain values use interface equality, so NaN stays unequal to itself
	nan := &ast.Literal{Value: math.NaN()}
	assert.False(t, literalsEqual(nan, nan))
}
