package lints

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/jslang/jslin/internal/ast"
	tt "github.com/jslang/jslin/internal/types"
)

const validRegexFlags = "dgimsuvy"

// DetectInvalidRegexp reports regex literals that would throw a SyntaxError
// at runtime: unknown or repeated flags, the mutually exclusive u and v
// flags together, or a pattern that does not compile.
func DetectInvalidRegexp(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	var issues []tt.Issue
	ast.Inspect(prog, func(n ast.Node) bool {
		lit, ok := n.(*ast.Literal)
		if !ok || lit.Regex == nil {
			return true
		}
		if msg := checkRegexFlags(lit.Regex.Flags); msg != "" {
			issue := issueAt("invalid-regexp", filename, msg, lit)
			issue.Category = "correctness"
			issues = append(issues, issue)
			return true
		}
		if _, err := regexp2.Compile(lit.Regex.Pattern, regexp2.ECMAScript); err != nil {
			issue := issueAt("invalid-regexp", filename,
				fmt.Sprintf("invalid regular expression %s: %v", sourceText(src, lit), err),
				lit)
			issue.Category = "correctness"
			issues = append(issues, issue)
		}
		return true
	})
	return issues, nil
}

func checkRegexFlags(flags string) string {
	seen := map[rune]bool{}
	for _, f := range flags {
		if !strings.ContainsRune(validRegexFlags, f) {
			return fmt.Sprintf("invalid regular expression flag '%c'", f)
		}
		if seen[f] {
			return fmt.Sprintf("duplicate regular expression flag '%c'", f)
		}
		seen[f] = true
	}
	if seen['u'] && seen['v'] {
		return "regular expression flags 'u' and 'v' cannot be combined"
	}
	return ""
}
