package lints

import (
	"github.com/jslang/jslin/internal/ast"
	tt "github.com/jslang/jslin/internal/types"
)

// issueAt builds an issue spanning the given node.
func issueAt(rule, filename, message string, node ast.Node) tt.Issue {
	return tt.Issue{
		Rule:     rule,
		Filename: filename,
		Message:  message,
		Start:    node.Pos(),
		End:      node.EndPos(),
	}
}

// sourceText returns the original text of a node, for use in messages.
func sourceText(src string, node ast.Node) string {
	start, end := node.Pos().Offset, node.EndPos().Offset
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}
