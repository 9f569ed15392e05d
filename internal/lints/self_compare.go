package lints

import (
	"fmt"

	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/astutil"
	tt "github.com/jslang/jslin/internal/types"
)

var comparisonOps = map[string]bool{
	"==": true, "!=": true, "===": true, "!==": true,
	"<": true, ">": true, "<=": true, ">=": true,
}

// DetectSelfCompare reports comparisons of an expression against itself,
// e.g. `x === x`. Such comparisons are either bugs or obscure NaN checks
// better written as Number.isNaN(x).
func DetectSelfCompare(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	var issues []tt.Issue
	ast.Inspect(prog, func(n ast.Node) bool {
		bin, ok := n.(*ast.BinaryExpression)
		if !ok || !comparisonOps[bin.Operator] {
			return true
		}
		// literal-to-literal comparisons are constant conditions, not
		// self comparisons
		if isLiteral(bin.Left) && isLiteral(bin.Right) {
			return true
		}
		if astutil.SameReference(bin.Left, bin.Right) {
			issue := issueAt("no-self-compare", filename,
				fmt.Sprintf("'%s' is compared to itself", sourceText(src, bin.Left)),
				bin)
			issue.Category = "correctness"
			issue.Note = "comparing a value to itself is only useful as a NaN check; use Number.isNaN instead"
			issues = append(issues, issue)
		}
		return true
	})
	return issues, nil
}

func isLiteral(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.Literal, *ast.TemplateLiteral:
		return true
	}
	return false
}
