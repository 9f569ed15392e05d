package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jslang/jslin/internal"
	"github.com/jslang/jslin/internal/ast"
	tt "github.com/jslang/jslin/internal/types"
)

func TestGenerateFormattedIssue(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{
		Lines: []string{
			"function main() {",
			"  foo = foo;",
			"  if (a && a) {}",
			"}",
		},
	}

	issues := []tt.Issue{
		{
			Rule:     "self-assignment",
			Filename: "test.js",
			Start:    ast.Position{Line: 2, Column: 3},
			End:      ast.Position{Line: 2, Column: 12},
			Message:  "'foo' is assigned to itself",
		},
		{
			Rule:     "duplicate-condition",
			Filename: "test.js",
			Start:    ast.Position{Line: 3, Column: 12},
			End:      ast.Position{Line: 3, Column: 12},
			Message:  "'a' repeats in this && expression",
			Severity: tt.SeverityWarning,
		},
	}

	result := GenerateFormattedIssue(issues, code)

	assert.Contains(t, result, "error: self-assignment")
	assert.Contains(t, result, "--> test.js:2:3")
	assert.Contains(t, result, "2 | foo = foo;")
	assert.Contains(t, result, "'foo' is assigned to itself")

	assert.Contains(t, result, "warning: duplicate-condition")
	assert.Contains(t, result, "3 | if (a && a) {}")
	assert.Contains(t, result, "'a' repeats in this && expression")
}

func TestGenerateFormattedIssueUnderline(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{
		Lines: []string{
			"foo = foo;",
		},
	}

	issues := []tt.Issue{
		{
			Rule:     "self-assignment",
			Filename: "test.js",
			Start:    ast.Position{Line: 1, Column: 1},
			End:      ast.Position{Line: 1, Column: 9},
			Message:  "'foo' is assigned to itself",
		},
	}

	expected := `error: self-assignment
 --> test.js:1:1
  |
1 | foo = foo;
  | ~~~~~~~~~
  = 'foo' is assigned to itself

`

	result := GenerateFormattedIssue(issues, code)
	assert.Equal(t, expected, result, "Formatted output does not match expected")
}

func TestGenerateFormattedIssueSyntaxError(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{Lines: []string{"var = ;"}}

	issues := []tt.Issue{
		{
			Rule:     "syntax-error",
			Filename: "broken.js",
			Start:    ast.Position{Line: 1, Column: 5},
			End:      ast.Position{Line: 1, Column: 5},
			Message:  "unexpected token '='",
		},
	}

	result := GenerateFormattedIssue(issues, code)

	assert.Contains(t, result, "error: syntax-error")
	assert.Contains(t, result, "--> broken.js:1:5")
	assert.Contains(t, result, "unexpected token '='")
	assert.NotContains(t, result, "1 | var = ;")
}

func TestGenerateFormattedIssueSuggestionAndNote(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{Lines: []string{"if (x !== x) {}"}}

	issues := []tt.Issue{
		{
			Rule:       "no-self-compare",
			Filename:   "test.js",
			Start:      ast.Position{Line: 1, Column: 5},
			End:        ast.Position{Line: 1, Column: 11},
			Message:    "comparing 'x' to itself",
			Suggestion: "if (Number.isNaN(x)) {}",
			Note:       "use Number.isNaN to test for NaN",
			Severity:   tt.SeverityWarning,
		},
	}

	result := GenerateFormattedIssue(issues, code)

	assert.Contains(t, result, "Suggestion:")
	assert.Contains(t, result, "if (Number.isNaN(x)) {}")
	assert.Contains(t, result, "Note: ")
	assert.Contains(t, result, "use Number.isNaN to test for NaN")
}

func TestGenerateFormattedIssueOutOfRange(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{Lines: []string{"x;"}}
	issues := []tt.Issue{
		{
			Rule:     "self-assignment",
			Filename: "test.js",
			Start:    ast.Position{Line: 99, Column: 1},
			End:      ast.Position{Line: 99, Column: 2},
			Message:  "positions outside the snippet fall back to the message",
		},
	}

	result := GenerateFormattedIssue(issues, code)
	assert.Contains(t, result, "positions outside the snippet fall back to the message")
}

func TestFindCommonIndent(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		lines    []string
	}{
		{
			name: "whitespace indent",
			lines: []string{
				"    if (foo) {",
				"        bar();",
				"    }",
			},
			expected: "    ",
		},
		{
			name: "tab indent",
			lines: []string{
				"	if (foo) {",
				"		bar();",
				"	}",
			},
			expected: "\t",
		},
		{
			name: "mixed indent (space and tab)",
			lines: []string{
				"\t    if (foo) {",
				"\t    \tbar();",
				"\t    }",
			},
			expected: "\t    ",
		},
		{
			name: "no indent",
			lines: []string{
				"if (foo) {",
				"bar();",
				"}",
			},
			expected: "",
		},
		{
			name: "empty line",
			lines: []string{
				"    if (foo) {",
				"",
				"        bar();",
				"    }",
			},
			expected: "    ",
		},
		{
			name: "various indent levels",
			lines: []string{
				"    if (foo) {",
				"      bar();",
				"        baz();",
				"    }",
			},
			expected: "    ",
		},
		{
			name:     "empty input",
			lines:    []string{},
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := findCommonIndent(tc.lines)
			if result != tc.expected {
				t.Errorf("findCommonIndent() = %q, want %q", result, tc.expected)
			}
		})
	}
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()
	line := "\tfoo = foo;"
	// the tab expands to the next tab stop
	assert.Equal(t, tabWidth, calculateVisualColumn(line, 2))
	assert.Equal(t, 0, calculateVisualColumn(line, 1))
	assert.Equal(t, 0, calculateVisualColumn(line, -1))
}
