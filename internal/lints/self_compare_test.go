package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jslang/jslin/internal/parser"
)

func TestDetectSelfCompare(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{
			name:     "strict equality with itself",
			code:     `if (x === x) { f(); }`,
			expected: 1,
		},
		{
			name:     "inequality with itself",
			code:     `var nanCheck = x !== x;`,
			expected: 1,
		},
		{
			name:     "member access with itself",
			code:     `if (a.b.c === a.b.c) { f(); }`,
			expected: 1,
		},
		{
			name:     "different operands",
			code:     `if (x === y) { f(); }`,
			expected: 0,
		},
		{
			name:     "relational self compare",
			code:     `while (i <= i) { f(); }`,
			expected: 1,
		},
		{
			name:     "literal comparison is not a self compare",
			code:     `if (1 === 1) { f(); }`,
			expected: 0,
		},
		{
			name:     "calls are not provably equal",
			code:     `if (rand() === rand()) { f(); }`,
			expected: 0,
		},
		{
			name:     "arithmetic is not a comparison",
			code:     `var y = x - x;`,
			expected: 0,
		},
		{
			name:     "dynamic member keys",
			code:     `if (a[i] === a[i]) { f(); }`,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.code)
			require.NoError(t, err)

			issues, err := DetectSelfCompare("test.js", prog, tt.code)
			require.NoError(t, err)
			assert.Len(t, issues, tt.expected)
		})
	}
}
