package lints

import (
	"fmt"

	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/astutil"
	tt "github.com/jslang/jslin/internal/types"
)

// DetectDuplicateClassMembers reports class bodies that define the same
// member name twice. Static and instance members live in separate
// namespaces; a getter/setter pair for one name is allowed.
func DetectDuplicateClassMembers(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	var issues []tt.Issue
	check := func(body []*ast.MethodDefinition) {
		instance := make(map[string]keyState)
		static := make(map[string]keyState)
		for _, m := range body {
			name, ok := astutil.StaticPropertyName(m)
			if !ok {
				continue
			}
			ns := instance
			if m.Static {
				ns = static
			}
			kind := m.Kind
			if kind == "constructor" {
				kind = "method"
			}
			state := ns[name]
			if state.conflictsWith(kind) {
				issue := issueAt("no-dupe-class-members", filename,
					fmt.Sprintf("duplicate class member '%s'", name), m)
				issue.Category = "correctness"
				issues = append(issues, issue)
			}
			switch kind {
			case "get":
				state.get = true
			case "set":
				state.set = true
			default:
				state.init = true
			}
			ns[name] = state
		}
	}

	ast.Inspect(prog, func(n ast.Node) bool {
		switch cls := n.(type) {
		case *ast.ClassDeclaration:
			check(cls.Body)
		case *ast.ClassExpression:
			check(cls.Body)
		}
		return true
	})
	return issues, nil
}
