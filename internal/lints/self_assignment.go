package lints

import (
	"fmt"

	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/astutil"
	tt "github.com/jslang/jslin/internal/types"
)

// DetectSelfAssignment reports assignments whose target and source provably
// refer to the same thing, e.g. `a = a`, `a.b = a.b` or `a["b"] = a?.b`.
// Logical assignment operators are included since `a ||= a` is equally
// pointless; arithmetic compound assignments are not, `a += a` changes a.
func DetectSelfAssignment(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	var issues []tt.Issue
	ast.Inspect(prog, func(n ast.Node) bool {
		assign, ok := n.(*ast.AssignmentExpression)
		if !ok {
			return true
		}
		switch assign.Operator {
		case "=", "&&=", "||=", "??=":
		default:
			return true
		}
		for _, pair := range assignedPairs(assign.Left, assign.Right) {
			if astutil.SameReference(pair.left, pair.right) {
				issue := issueAt("self-assignment", filename,
					fmt.Sprintf("'%s' is assigned to itself", sourceText(src, pair.right)),
					pair.right)
				issue.Category = "correctness"
				issues = append(issues, issue)
			}
		}
		return true
	})
	return issues, nil
}

type exprPair struct {
	left, right ast.Expr
}

// assignedPairs matches assignment targets with their sources, descending
// into array destructuring so `[a, b] = [a, c]` checks a against a and b
// against c.
func assignedPairs(left, right ast.Expr) []exprPair {
	la, lok := left.(*ast.ArrayExpression)
	ra, rok := right.(*ast.ArrayExpression)
	if !lok || !rok {
		return []exprPair{{left, right}}
	}
	var pairs []exprPair
	for i := 0; i < len(la.Elements) && i < len(ra.Elements); i++ {
		l, r := la.Elements[i], ra.Elements[i]
		if l == nil || r == nil {
			continue
		}
		// a spread stops positional matching
		if _, ok := l.(*ast.SpreadElement); ok {
			break
		}
		if _, ok := r.(*ast.SpreadElement); ok {
			break
		}
		pairs = append(pairs, assignedPairs(l, r)...)
	}
	return pairs
}
