// Package eval answers "what value does this expression have, if that can be
// known without running the program". It is deliberately conservative: any
// construct whose result could depend on runtime state (variable references,
// calls, member reads, tagged templates) is reported as not static.
package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/jslang/jslin/internal/ast"
)

// Value is one statically determined result. V holds a string, float64,
// bool, nil (null), BigInt, []any or map[string]any.
type Value struct {
	V any
}

// BigInt is the static form of a bigint literal: its digit text, compared
// and stringified without numeric normalization.
type BigInt string

// Evaluate resolves node to a static value. ok is false when the value
// cannot be determined from source text alone.
func Evaluate(node ast.Expr) (*Value, bool) {
	if node == nil {
		return nil, false
	}
	switch n := node.(type) {
	case *ast.Literal:
		if n.Regex != nil {
			// a regex literal evaluates to a fresh object each time
			return nil, false
		}
		if n.BigInt != "" {
			return &Value{V: BigInt(n.BigInt)}, true
		}
		return &Value{V: n.Value}, true

	case *ast.TemplateLiteral:
		if len(n.Exprs) == 0 {
			return &Value{V: cookQuasi(n.Quasis[0])}, true
		}
		var sb strings.Builder
		for i, q := range n.Quasis {
			sb.WriteString(cookQuasi(q))
			if i < len(n.Exprs) {
				v, ok := Evaluate(n.Exprs[i])
				if !ok {
					return nil, false
				}
				sb.WriteString(ToString(v.V))
			}
		}
		return &Value{V: sb.String()}, true

	case *ast.UnaryExpression:
		return evalUnary(n)

	case *ast.BinaryExpression:
		return evalBinary(n)

	case *ast.LogicalExpression:
		return evalLogical(n)

	case *ast.ConditionalExpression:
		test, ok := Evaluate(n.Test)
		if !ok {
			return nil, false
		}
		if Truthy(test.V) {
			return Evaluate(n.Consequent)
		}
		return Evaluate(n.Alternate)

	case *ast.SequenceExpression:
		if len(n.Exprs) == 0 {
			return nil, false
		}
		for _, e := range n.Exprs[:len(n.Exprs)-1] {
			if _, ok := Evaluate(e); !ok {
				return nil, false
			}
		}
		return Evaluate(n.Exprs[len(n.Exprs)-1])

	case *ast.ArrayExpression:
		out := make([]any, 0, len(n.Elements))
		for _, el := range n.Elements {
			if el == nil {
				out = append(out, nil)
				continue
			}
			if _, spread := el.(*ast.SpreadElement); spread {
				return nil, false
			}
			v, ok := Evaluate(el)
			if !ok {
				return nil, false
			}
			out = append(out, v.V)
		}
		return &Value{V: out}, true

	case *ast.ObjectExpression:
		out := make(map[string]any, len(n.Properties))
		for _, prop := range n.Properties {
			if prop.Spread || prop.Kind != "init" {
				return nil, false
			}
			key, ok := staticKey(prop)
			if !ok {
				return nil, false
			}
			v, ok := Evaluate(prop.Value)
			if !ok {
				return nil, false
			}
			out[key] = v.V
		}
		return &Value{V: out}, true
	}

	// identifiers, member reads, calls, and everything else: unknown
	return nil, false
}

func staticKey(prop *ast.Property) (string, bool) {
	if id, ok := prop.Key.(*ast.Identifier); ok && !prop.Computed {
		return id.Name, true
	}
	v, ok := Evaluate(prop.Key)
	if !ok {
		return "", false
	}
	return ToString(v.V), true
}

// cookQuasi processes the escape sequences of one template chunk.
func cookQuasi(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '`':
			sb.WriteByte('`')
		case '$':
			sb.WriteByte('$')
		case '\\':
			sb.WriteByte('\\')
		default:
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

func evalUnary(n *ast.UnaryExpression) (*Value, bool) {
	v, ok := Evaluate(n.Operand)
	if !ok {
		return nil, false
	}
	switch n.Operator {
	case "-":
		if f, ok := numeric(v.V); ok {
			return &Value{V: -f}, true
		}
	case "+":
		if f, ok := numeric(v.V); ok {
			return &Value{V: f}, true
		}
	case "!":
		return &Value{V: !Truthy(v.V)}, true
	case "~":
		if f, ok := numeric(v.V); ok {
			return &Value{V: float64(^toInt32(f))}, true
		}
	case "typeof":
		return &Value{V: typeOf(v.V)}, true
	case "void":
		return &Value{V: nil}, true
	}
	return nil, false
}

func evalBinary(n *ast.BinaryExpression) (*Value, bool) {
	lv, ok := Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	rv, ok := Evaluate(n.Right)
	if !ok {
		return nil, false
	}
	l, r := lv.V, rv.V

	if n.Operator == "+" {
		ls, lIsStr := l.(string)
		rs, rIsStr := r.(string)
		if lIsStr || rIsStr {
			if !lIsStr {
				ls = ToString(l)
			}
			if !rIsStr {
				rs = ToString(r)
			}
			return &Value{V: ls + rs}, true
		}
	}

	switch n.Operator {
	case "===", "!==":
		eq := strictEquals(l, r)
		if n.Operator == "!==" {
			eq = !eq
		}
		return &Value{V: eq}, true
	case "==", "!=":
		// fold only the unambiguous cases
		if typeOf(l) != typeOf(r) {
			return nil, false
		}
		eq := strictEquals(l, r)
		if n.Operator == "!=" {
			eq = !eq
		}
		return &Value{V: eq}, true
	}

	lf, lok := numeric(l)
	rf, rok := numeric(r)
	if lok && rok {
		switch n.Operator {
		case "+":
			return &Value{V: lf + rf}, true
		case "-":
			return &Value{V: lf - rf}, true
		case "*":
			return &Value{V: lf * rf}, true
		case "/":
			return &Value{V: lf / rf}, true
		case "%":
			return &Value{V: math.Mod(lf, rf)}, true
		case "**":
			return &Value{V: math.Pow(lf, rf)}, true
		case "<":
			return &Value{V: lf < rf}, true
		case ">":
			return &Value{V: lf > rf}, true
		case "<=":
			return &Value{V: lf <= rf}, true
		case ">=":
			return &Value{V: lf >= rf}, true
		case "&":
			return &Value{V: float64(toInt32(lf) & toInt32(rf))}, true
		case "|":
			return &Value{V: float64(toInt32(lf) | toInt32(rf))}, true
		case "^":
			return &Value{V: float64(toInt32(lf) ^ toInt32(rf))}, true
		case "<<":
			return &Value{V: float64(toInt32(lf) << (toUint32(rf) & 31))}, true
		case ">>":
			return &Value{V: float64(toInt32(lf) >> (toUint32(rf) & 31))}, true
		case ">>>":
			return &Value{V: float64(toUint32(lf) >> (toUint32(rf) & 31))}, true
		}
	}

	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			switch n.Operator {
			case "<":
				return &Value{V: ls < rs}, true
			case ">":
				return &Value{V: ls > rs}, true
			case "<=":
				return &Value{V: ls <= rs}, true
			case ">=":
				return &Value{V: ls >= rs}, true
			}
		}
	}
	return nil, false
}

func evalLogical(n *ast.LogicalExpression) (*Value, bool) {
	lv, ok := Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	switch n.Operator {
	case "&&":
		if !Truthy(lv.V) {
			return lv, true
		}
	case "||":
		if Truthy(lv.V) {
			return lv, true
		}
	case "??":
		if lv.V != nil {
			return lv, true
		}
	default:
		return nil, false
	}
	return Evaluate(n.Right)
}

func strictEquals(l, r any) bool {
	if lb, ok := l.(BigInt); ok {
		rb, ok := r.(BigInt)
		return ok && lb == rb
	}
	switch l.(type) {
	case string, float64, bool, nil:
		return l == r
	}
	return false
}

// Truthy follows JS boolean coercion for the value kinds Evaluate produces.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	case BigInt:
		return strings.Trim(string(t), "0") != ""
	default:
		return true // arrays and objects
	}
}

func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case nil:
		return 0, true
	}
	return 0, false
}

func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(uint32(int64(f)))
}

func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(f))
}

func typeOf(v any) string {
	switch v.(type) {
	case nil:
		return "object" // typeof null
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case BigInt:
		return "bigint"
	default:
		return "object"
	}
}

// ToString renders a static value the way the JS String() function would.
// This is what turns a[100] into the property name "100".
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case string:
		return t
	case BigInt:
		return string(t)
	case float64:
		return numberToString(t)
	default:
		return ""
	}
}

func numberToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go prints e+05, JS prints e+5
		if i := strings.IndexAny(s, "eE"); i >= 0 {
			mant, exp := s[:i], s[i+1:]
			sign := ""
			if exp[0] == '+' || exp[0] == '-' {
				sign = string(exp[0])
				exp = exp[1:]
			}
			exp = strings.TrimLeft(exp, "0")
			if exp == "" {
				exp = "0"
			}
			return mant + "e" + sign + exp
		}
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
