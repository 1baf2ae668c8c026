// Copyright 2025 The srcinspect Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	testCases := []struct {
		input    string
		expected Expr
	}{
		{
			input:    `'Debug|Win32'=='Debug|Win32'`,
			expected: Compare{StringLit(`'Debug|Win32'`), "==", StringLit(`'Debug|Win32'`)},
		},
		{
			input:    `'Debug'!='Release'`,
			expected: Compare{StringLit(`'Debug'`), "!=", StringLit(`'Release'`)},
		},
		{
			input: `'A'=='A' && 'B'=='C'`,
			expected: And{
				Compare{StringLit(`'A'`), "==", StringLit(`'A'`)},
				Compare{StringLit(`'B'`), "==", StringLit(`'C'`)},
			},
		},
		{
			input: `!('A'=='B') || X`,
			expected: Or{
				Not{Compare{StringLit(`'A'`), "==", StringLit(`'B'`)}},
				Ident("X"),
			},
		},
		{
			// && binds tighter than ||
			input: `A || B && C`,
			expected: Or{
				Ident("A"),
				And{Ident("B"), Ident("C")},
			},
		},
		{
			input:    `VERSION >= 2`,
			expected: Compare{Ident("VERSION"), ">=", Ident("2")},
		},
	}

	for _, testCase := range testCases {
		expr, err := ParseExpression(testCase.input)
		require.NoError(t, err, "input: %q", testCase.input)
		assert.Equal(t, testCase.expected, expr, "input: %q", testCase.input)
	}
}

func TestParseExpressionErrors(t *testing.T) {
	invalidInputs := []string{
		"",
		"   ",
		"==",
		"'A'==",
		"('A'=='A'",
		"'A'=='A' trailing",
	}
	for _, input := range invalidInputs {
		_, err := ParseExpression(input)
		assert.Error(t, err, "input: %q", input)
	}
}

func TestParseExpressions(t *testing.T) {
	t.Run("empty input yields no expressions", func(t *testing.T) {
		assert.Empty(t, ParseExpressions(""))
	})

	t.Run("recovers comparisons around unknown connectives", func(t *testing.T) {
		// MSBuild spells boolean operators as words; the parser does not
		// understand them but must still surface both comparisons.
		exprs := ParseExpressions(`'x'=='y' And 'a'=='a'`)
		assert.Contains(t, exprs, Compare{StringLit(`'x'`), "==", StringLit(`'y'`)})
		assert.Contains(t, exprs, Compare{StringLit(`'a'`), "==", StringLit(`'a'`)})
	})

	t.Run("entirely unparsable input yields no expressions", func(t *testing.T) {
		assert.Empty(t, ParseExpressions("== != &&"))
	})
}

func TestContainsSatisfiedEquality(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{"identical operands", `'Debug|Win32'=='Debug|Win32'`, true},
		{"different operands", `'Release|x64'=='Debug|Win32'`, false},
		{"satisfied half of a conjunction", `'A'=='A' && 'B'=='C'`, true},
		{"satisfied half of a disjunction", `'B'=='C' || 'A'=='A'`, true},
		{"inequality is never satisfied", `'A'!='A'`, false},
		{"negation does not flip the coarse check", `!('A'=='A')`, true},
		{"identifier operands", `WINVER==WINVER`, true},
		{"no comparison at all", `SOME_FLAG`, false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			found := false
			for _, expr := range ParseExpressions(testCase.input) {
				if ContainsSatisfiedEquality(expr) {
					found = true
				}
			}
			assert.Equal(t, testCase.expected, found)
		})
	}
}
