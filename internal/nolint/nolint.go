package nolint

import (
	"math"
	"strings"

	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/lexer"
)

const nolintPrefix = "nolint"

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	scopes []nolintScope
}

// nolintScope represents a line range in the code where nolint applies.
type nolintScope struct {
	rules     map[string]struct{}
	startLine int
	endLine   int
}

// ParseComments scans the comments collected while lexing one file and
// returns a Manager holding every nolint scope found in it.
//
// Both comment forms are honored: `// nolint` suppresses every rule and
// `// nolint:rule1,rule2` suppresses only the listed ones. An inline
// comment covers the statement it trails, a standalone comment covers the
// statement on the following line, and a comment above the first statement
// covers the whole file.
func ParseComments(prog *ast.Program, comments []lexer.Comment) *Manager {
	manager := Manager{scopes: make([]nolintScope, 0, len(comments))}
	stmtMap := indexStatementsByLine(prog)
	firstLine := firstStatementLine(prog)

	for _, comment := range comments {
		ns, ok := parseComment(comment, stmtMap, firstLine)
		if !ok {
			continue
		}
		manager.scopes = append(manager.scopes, ns)
	}
	return &manager
}

// parseComment parses a single nolint comment and determines its scope.
func parseComment(comment lexer.Comment, stmtMap map[int]ast.Stmt, firstLine int) (nolintScope, bool) {
	var ns nolintScope
	text := strings.TrimSpace(comment.Text)

	if !strings.HasPrefix(text, nolintPrefix) {
		return ns, false
	}

	rest := text[len(nolintPrefix):]

	// either a bare `nolint` (all rules) or `nolint:rule1,rule2`
	if rest != "" && rest[0] != ':' {
		return ns, false
	}
	if rest != "" {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if rest == "" {
			return ns, false
		}
	}
	ns.rules = parseIgnoreRuleNames(rest)

	// above the first statement: the whole file is covered
	if comment.Pos.Line < firstLine {
		ns.startLine = 0
		ns.endLine = math.MaxInt
		return ns, true
	}

	// inline: the comment trails a statement on its own line
	if stmt, exists := stmtMap[comment.Pos.Line]; exists {
		if comment.Pos.Offset > stmt.Pos().Offset {
			ns.startLine = stmt.Pos().Line
			ns.endLine = stmt.EndPos().Line
			return ns, true
		}
	}

	// standalone: the next line's statement is covered, comment line included
	if stmt, exists := stmtMap[comment.Pos.Line+1]; exists {
		ns.startLine = comment.Pos.Line
		ns.endLine = stmt.EndPos().Line
		return ns, true
	}

	ns.startLine = comment.Pos.Line
	ns.endLine = comment.Pos.Line
	return ns, true
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// indexStatementsByLine maps each line to the first statement starting on it.
func indexStatementsByLine(prog *ast.Program) map[int]ast.Stmt {
	stmtMap := make(map[int]ast.Stmt)
	ast.Inspect(prog, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Program, *ast.BlockStatement:
			return true
		}
		if stmt, ok := n.(ast.Stmt); ok {
			line := stmt.Pos().Line
			if _, exists := stmtMap[line]; !exists {
				stmtMap[line] = stmt
			}
		}
		return true
	})
	return stmtMap
}

func firstStatementLine(prog *ast.Program) int {
	if len(prog.Body) == 0 {
		return math.MaxInt
	}
	return prog.Body[0].Pos().Line
}

// IsNolint reports whether the rule is suppressed at the given position.
func (m *Manager) IsNolint(pos ast.Position, ruleName string) bool {
	for _, ns := range m.scopes {
		if pos.Line < ns.startLine || pos.Line > ns.endLine {
			continue
		}
		// an empty rule set suppresses everything
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
