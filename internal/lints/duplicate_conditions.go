package lints

import (
	"fmt"

	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/astutil"
	tt "github.com/jslang/jslin/internal/types"
)

// DetectDuplicateConditions reports two redundancy patterns:
//
//   - an else-if whose test provably matches an earlier test in the same
//     chain, which makes its branch unreachable;
//   - a `||` or `&&` with provably identical operands, where one side is
//     redundant.
//
// Matching uses reference equality, so only conditions built from
// identifiers, member accesses and literals are compared; anything with a
// call or other effectful construct is conservatively left alone.
func DetectDuplicateConditions(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	var issues []tt.Issue

	// mark nodes that are continuations of a larger construct so each
	// chain and operator tree is only examined from its head
	interior := make(map[ast.Node]bool)
	ast.Inspect(prog, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.IfStatement:
			if alt, ok := node.Alternate.(*ast.IfStatement); ok {
				interior[alt] = true
			}
		case *ast.LogicalExpression:
			if l, ok := node.Left.(*ast.LogicalExpression); ok && l.Operator == node.Operator {
				interior[l] = true
			}
			if r, ok := node.Right.(*ast.LogicalExpression); ok && r.Operator == node.Operator {
				interior[r] = true
			}
		}
		return true
	})

	ast.Inspect(prog, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.IfStatement:
			if !interior[node] {
				issues = append(issues, checkIfChain(filename, src, node)...)
			}
		case *ast.LogicalExpression:
			if !interior[node] {
				issues = append(issues, checkLogicalOperands(filename, src, node)...)
			}
		}
		return true
	})
	return issues, nil
}

// checkIfChain walks one if / else-if chain from its head and compares
// every test against all earlier ones.
func checkIfChain(filename, src string, head *ast.IfStatement) []tt.Issue {
	var issues []tt.Issue
	var seen []ast.Expr
	for stmt := head; stmt != nil; {
		for _, prev := range seen {
			if astutil.SameReference(prev, stmt.Test) {
				issue := issueAt("duplicate-condition", filename,
					fmt.Sprintf("this branch can never run: condition '%s' already matched above",
						sourceText(src, stmt.Test)),
					stmt.Test)
				issue.Category = "correctness"
				issues = append(issues, issue)
				break
			}
		}
		seen = append(seen, stmt.Test)
		next, ok := stmt.Alternate.(*ast.IfStatement)
		if !ok {
			break
		}
		stmt = next
	}
	return issues
}

// checkLogicalOperands flattens a tree of one logical operator and looks
// for operands that repeat, e.g. `a || b || a`.
func checkLogicalOperands(filename, src string, expr *ast.LogicalExpression) []tt.Issue {
	// only handle the root of a same-operator tree so each duplication
	// is reported once
	if expr.Operator == "??" {
		return nil
	}
	operands := flattenLogical(expr, expr.Operator)
	var issues []tt.Issue
	for i := 1; i < len(operands); i++ {
		for j := 0; j < i; j++ {
			if astutil.SameReference(operands[j], operands[i]) {
				issue := issueAt("duplicate-condition", filename,
					fmt.Sprintf("'%s' repeats in this %s expression",
						sourceText(src, operands[i]), expr.Operator),
					operands[i])
				issue.Category = "correctness"
				issues = append(issues, issue)
				break
			}
		}
	}
	return issues
}

func flattenLogical(expr ast.Expr, op string) []ast.Expr {
	if logical, ok := expr.(*ast.LogicalExpression); ok && logical.Operator == op {
		return append(flattenLogical(logical.Left, op), flattenLogical(logical.Right, op)...)
	}
	return []ast.Expr{expr}
}
