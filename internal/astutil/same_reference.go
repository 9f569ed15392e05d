// Package astutil provides the syntax-level reasoning shared by the lint
// rules: deciding whether two expressions provably denote the same reference,
// and resolving property names that are fixed in the source text.
//
// The analysis is sound but incomplete: a true result is a proof, a false
// result only means "could not prove it". Anything dynamic, ambiguous or
// unmodeled compares unequal.
package astutil

import (
	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/eval"
)

// Evaluator resolves an expression to a static value when one is lexically
// determinable. It is satisfied by the eval package and easy to stub.
type Evaluator interface {
	Evaluate(node ast.Expr) (*eval.Value, bool)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(node ast.Expr) (*eval.Value, bool)

func (f EvaluatorFunc) Evaluate(node ast.Expr) (*eval.Value, bool) { return f(node) }

// defaultEvaluator is the constant-folding oracle used unless a caller
// injects its own.
var defaultEvaluator Evaluator = EvaluatorFunc(eval.Evaluate)

// StaticPropertyName returns the property name of a member access, object
// property or class member when that name can be read off the source text
// without evaluating anything. ok is false when the name is dynamic.
//
// a.b and a["b"] both resolve to "b"; a[100] resolves to "100"; a[b] does
// not resolve even though b is an identifier, because in computed position
// it is a variable reference.
func StaticPropertyName(node ast.Node) (string, bool) {
	return StaticPropertyNameWithEvaluator(defaultEvaluator, node)
}

// StaticPropertyNameWithEvaluator is StaticPropertyName with an explicit
// static-value oracle.
func StaticPropertyNameWithEvaluator(ev Evaluator, node ast.Node) (string, bool) {
	var prop ast.Expr
	var computed bool

	switch n := node.(type) {
	case *ast.MemberExpression:
		prop, computed = n.Property, n.Computed
	case *ast.ChainExpression:
		return StaticPropertyNameWithEvaluator(ev, n.Expression)
	case *ast.Property:
		prop, computed = n.Key, n.Computed
	case *ast.MethodDefinition:
		prop, computed = n.Key, n.Computed
	default:
		return "", false
	}

	if prop == nil {
		return "", false
	}
	if id, ok := prop.(*ast.Identifier); ok && !computed {
		return id.Name, true
	}
	v, ok := ev.Evaluate(prop)
	if !ok {
		return "", false
	}
	return eval.ToString(v.V), true
}

// SameReference reports whether left and right provably refer to the same
// runtime location or value, by purely syntactic means. Optional chaining is
// transparent, so a.b and a?.b compare equal. Identifier comparison is
// lexical, not binding-resolved: two identifiers spelled alike compare equal
// even across scopes.
func SameReference(left, right ast.Expr) bool {
	return SameReferenceWithEvaluator(defaultEvaluator, left, right)
}

// SameReferenceWithEvaluator is SameReference with an explicit static-value
// oracle for resolving computed property names.
func SameReferenceWithEvaluator(ev Evaluator, left, right ast.Expr) bool {
	if left == nil || right == nil {
		return false
	}

	// a chain wrapper on one side only is transparent: unwrap and retry
	if lc, ok := left.(*ast.ChainExpression); ok {
		if _, ok := right.(*ast.ChainExpression); !ok {
			return SameReferenceWithEvaluator(ev, lc.Expression, right)
		}
	} else if rc, ok := right.(*ast.ChainExpression); ok {
		return SameReferenceWithEvaluator(ev, left, rc.Expression)
	}

	switch l := left.(type) {
	case *ast.Super:
		_, ok := right.(*ast.Super)
		return ok
	case *ast.ThisExpression:
		_, ok := right.(*ast.ThisExpression)
		return ok
	case *ast.Identifier:
		r, ok := right.(*ast.Identifier)
		return ok && l.Name == r.Name
	case *ast.Literal:
		r, ok := right.(*ast.Literal)
		return ok && literalsEqual(l, r)
	case *ast.ChainExpression:
		r, ok := right.(*ast.ChainExpression)
		return ok && SameReferenceWithEvaluator(ev, l.Expression, r.Expression)
	case *ast.MemberExpression:
		r, ok := right.(*ast.MemberExpression)
		if !ok {
			return false
		}
		name, ok := StaticPropertyNameWithEvaluator(ev, l)
		if !ok {
			// a dynamic key on the left can never be proven equal,
			// and two unresolvable keys are never considered equal
			// to each other either
			return false
		}
		rname, ok := StaticPropertyNameWithEvaluator(ev, r)
		if !ok || name != rname {
			return false
		}
		return SameReferenceWithEvaluator(ev, l.Object, r.Object)
	}

	// calls, operators, and anything else not modeled: not provably equal
	return false
}

// literalsEqual compares two literal nodes by value. The regex and bigint
// subkinds carry data that defeats plain value comparison and are handled
// structurally first.
func literalsEqual(a, b *ast.Literal) bool {
	if a.Regex != nil || b.Regex != nil {
		// flags are compared exactly as written: /a/gi and /a/ig differ
		return a.Regex != nil && b.Regex != nil &&
			a.Regex.Pattern == b.Regex.Pattern &&
			a.Regex.Flags == b.Regex.Flags
	}
	if a.BigInt != "" || b.BigInt != "" {
		return a.BigInt == b.BigInt
	}
	// interface equality on the stored value; float NaN stays unequal to
	// itself here, matching the host language's == on literal values
	return a.Value == b.Value
}
