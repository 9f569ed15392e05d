package lints

import (
	"fmt"

	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/eval"
	tt "github.com/jslang/jslin/internal/types"
)

// DetectConstantConditions reports conditions whose outcome is fixed at
// parse time, e.g. `if (2 > 1)` or `x ? 1 : 2` with a folded test. The
// idiomatic infinite loops `while (true)` and `for (;;)` are left alone.
func DetectConstantConditions(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	var issues []tt.Issue

	report := func(test ast.Expr, v *eval.Value) {
		outcome := "falsy"
		if eval.Truthy(v.V) {
			outcome = "truthy"
		}
		issue := issueAt("constant-condition", filename,
			fmt.Sprintf("condition '%s' is always %s", sourceText(src, test), outcome),
			test)
		issue.Category = "correctness"
		issues = append(issues, issue)
	}

	check := func(test ast.Expr) {
		if test == nil {
			return
		}
		if v, ok := eval.Evaluate(test); ok {
			report(test, v)
		}
	}

	ast.Inspect(prog, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.IfStatement:
			check(node.Test)
		case *ast.ConditionalExpression:
			check(node.Test)
		case *ast.WhileStatement:
			if !isLiteralTrue(node.Test) {
				check(node.Test)
			}
		case *ast.DoWhileStatement:
			if !isLiteralTrue(node.Test) {
				check(node.Test)
			}
		case *ast.ForStatement:
			if node.Test != nil && !isLiteralTrue(node.Test) {
				check(node.Test)
			}
		}
		return true
	})
	return issues, nil
}

func isLiteralTrue(expr ast.Expr) bool {
	lit, ok := expr.(*ast.Literal)
	return ok && lit.Value == true
}
