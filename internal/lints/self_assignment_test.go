package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jslang/jslin/internal/parser"
)

func TestDetectSelfAssignment(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{
			name:     "simple self assignment",
			code:     `a = a;`,
			expected: 1,
		},
		{
			name:     "normal assignment",
			code:     `a = b;`,
			expected: 0,
		},
		{
			name:     "member self assignment",
			code:     `obj.prop = obj.prop;`,
			expected: 1,
		},
		{
			name:     "bracket and dot alias",
			code:     `obj["prop"] = obj.prop;`,
			expected: 1,
		},
		{
			name:     "optional chain alias",
			code:     `obj.prop = obj?.prop;`,
			expected: 1,
		},
		{
			name:     "dynamic key is not provable",
			code:     `obj[key] = obj[key];`,
			expected: 0,
		},
		{
			name:     "different properties",
			code:     `obj.a = obj.b;`,
			expected: 0,
		},
		{
			name:     "compound arithmetic assignment changes the value",
			code:     `a += a;`,
			expected: 0,
		},
		{
			name:     "logical self assignment",
			code:     `a ||= a;`,
			expected: 1,
		},
		{
			name:     "array destructuring pairwise",
			code:     `[a, b] = [a, c];`,
			expected: 1,
		},
		{
			name:     "array destructuring all same",
			code:     `[a, b] = [a, b];`,
			expected: 2,
		},
		{
			name:     "nested member chain",
			code:     `a.b.c = a["b"]["c"];`,
			expected: 1,
		},
		{
			name:     "call bases are never provably equal",
			code:     `f().a = f().a;`,
			expected: 0,
		},
		{
			name: "inside function body",
			code: `function init(opts) {
				opts.debug = opts.debug;
			}`,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.code)
			require.NoError(t, err)

			issues, err := DetectSelfAssignment("test.js", prog, tt.code)
			require.NoError(t, err)
			assert.Len(t, issues, tt.expected)
			for _, issue := range issues {
				assert.Equal(t, "self-assignment", issue.Rule)
			}
		})
	}
}
