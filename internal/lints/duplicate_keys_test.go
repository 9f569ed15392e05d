package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jslang/jslin/internal/parser"
)

func TestDetectDuplicateKeys(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{
			name:     "plain duplicate",
			code:     `var o = { a: 1, a: 2 };`,
			expected: 1,
		},
		{
			name:     "identifier and string alias",
			code:     `var o = { a: 1, "a": 2 };`,
			expected: 1,
		},
		{
			name:     "computed string alias",
			code:     `var o = { a: 1, ["a"]: 2 };`,
			expected: 1,
		},
		{
			name:     "number and string key",
			code:     `var o = { 1: "x", "1": "y" };`,
			expected: 1,
		},
		{
			name:     "no duplicates",
			code:     `var o = { a: 1, b: 2, c: 3 };`,
			expected: 0,
		},
		{
			name:     "getter and setter pair is fine",
			code:     `var o = { get a() {}, set a(v) {} };`,
			expected: 0,
		},
		{
			name:     "two getters clash",
			code:     `var o = { get a() {}, get a() {} };`,
			expected: 1,
		},
		{
			name:     "getter after plain value clashes",
			code:     `var o = { a: 1, get a() {} };`,
			expected: 1,
		},
		{
			name:     "dynamic keys are not compared",
			code:     `var o = { [x]: 1, [x]: 2 };`,
			expected: 0,
		},
		{
			name:     "nested object checked independently",
			code:     `var o = { a: { b: 1, b: 2 }, b: 3 };`,
			expected: 1,
		},
		{
			name:     "spread does not participate",
			code:     `var o = { ...base, a: 1 };`,
			expected: 0,
		},
		{
			name:     "triple duplicate reports twice",
			code:     `var o = { a: 1, a: 2, a: 3 };`,
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.code)
			require.NoError(t, err)

			issues, err := DetectDuplicateKeys("test.js", prog, tt.code)
			require.NoError(t, err)
			assert.Len(t, issues, tt.expected)
		})
	}
}

func TestDetectDuplicateClassMembers(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{
			name:     "duplicate method",
			code:     `class A { m() {} m() {} }`,
			expected: 1,
		},
		{
			name:     "static and instance do not clash",
			code:     `class A { m() {} static m() {} }`,
			expected: 0,
		},
		{
			name:     "duplicate static methods",
			code:     `class A { static m() {} static m() {} }`,
			expected: 1,
		},
		{
			name:     "getter setter pair",
			code:     `class A { get x() {} set x(v) {} }`,
			expected: 0,
		},
		{
			name:     "string and identifier alias",
			code:     `class A { m() {} "m"() {} }`,
			expected: 1,
		},
		{
			name:     "computed keys skipped",
			code:     `class A { [k]() {} [k]() {} }`,
			expected: 0,
		},
		{
			name:     "class expression checked too",
			code:     `var A = class { m() {} m() {} };`,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.code)
			require.NoError(t, err)

			issues, err := DetectDuplicateClassMembers("test.js", prog, tt.code)
			require.NoError(t, err)
			assert.Len(t, issues, tt.expected)
		})
	}
}
