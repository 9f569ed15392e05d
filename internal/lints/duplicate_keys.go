package lints

import (
	"fmt"

	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/astutil"
	tt "github.com/jslang/jslin/internal/types"
)

// keyState tracks which forms of a property name an object literal has
// already defined. A getter and a setter for the same name are a legal
// pair; everything else is a duplicate.
type keyState struct {
	init bool
	get  bool
	set  bool
}

func (s keyState) conflictsWith(kind string) bool {
	switch kind {
	case "get":
		return s.init || s.get
	case "set":
		return s.init || s.set
	default:
		return s.init || s.get || s.set
	}
}

// DetectDuplicateKeys reports object literals that define the same property
// name more than once. Later definitions silently win at runtime, so the
// earlier ones are dead and usually indicate a copy-paste mistake. Keys are
// matched through their statically resolved names, so `{a: 1, "a": 2}` and
// `{a: 1, ["a"]: 2}` are both caught while `{[x]: 1, [y]: 2}` is not.
func DetectDuplicateKeys(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	var issues []tt.Issue
	ast.Inspect(prog, func(n ast.Node) bool {
		obj, ok := n.(*ast.ObjectExpression)
		if !ok {
			return true
		}
		seen := make(map[string]keyState)
		for _, prop := range obj.Properties {
			if prop.Spread {
				continue
			}
			name, ok := astutil.StaticPropertyName(prop)
			if !ok {
				continue
			}
			state := seen[name]
			if state.conflictsWith(prop.Kind) {
				issue := issueAt("no-dupe-keys", filename,
					fmt.Sprintf("duplicate key '%s' in object literal", name),
					prop)
				issue.Category = "correctness"
				issues = append(issues, issue)
			}
			switch prop.Kind {
			case "get":
				state.get = true
			case "set":
				state.set = true
			default:
				state.init = true
			}
			seen[name] = state
		}
		return true
	})
	return issues, nil
}
