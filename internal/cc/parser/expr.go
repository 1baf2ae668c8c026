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

type (
	// Expr represents an abstract syntax tree (AST) node for a build-configuration
	// condition expression. Each Expr node implements fmt.Stringer for debugging
	// and round-tripping.
	Expr interface {
		String() string
	}

	// Not represents logical negation of a condition: !X
	Not struct {
		X Expr
	}

	// And represents a logical AND (X && Y).
	And struct {
		L, R Expr
	}

	// Or represents a logical OR (X || Y).
	Or struct {
		L, R Expr
	}

	// Compare represents a comparison between two values, e.g. A == B, A < B.
	Compare struct {
		Left  Expr   // Left-hand side of the comparison
		Op    string // Comparison operator: "==", "!=", "<", "<=", ">", ">="
		Right Expr   // Right-hand side of the comparison
	}

	// Ident is an unquoted word operand, such as a macro name or number.
	Ident string

	// StringLit is a quoted string operand, quotes included, such as 'Debug|Win32'.
	StringLit string
)

func (expr Not) String() string       { return "!(" + expr.X.String() + ")" }
func (expr And) String() string       { return expr.L.String() + " && " + expr.R.String() }
func (expr Or) String() string        { return expr.L.String() + " || " + expr.R.String() }
func (expr Compare) String() string   { return expr.Left.String() + " " + expr.Op + " " + expr.Right.String() }
func (expr Ident) String() string     { return string(expr) }
func (expr StringLit) String() string { return string(expr) }

// ContainsSatisfiedEquality reports whether the expression tree contains at
// least one == node whose two operand subtrees are textually identical.
//
// This is a deliberately coarse check: it does not evaluate boolean algebra, so
// surrounding &&, || or != nodes have no influence on the result. Downstream
// consumers depend on exactly this behaviour when matching project-file
// conditions against build configurations.
func ContainsSatisfiedEquality(expr Expr) bool {
	switch e := expr.(type) {
	case Not:
		return ContainsSatisfiedEquality(e.X)
	case And:
		return ContainsSatisfiedEquality(e.L) || ContainsSatisfiedEquality(e.R)
	case Or:
		return ContainsSatisfiedEquality(e.L) || ContainsSatisfiedEquality(e.R)
	case Compare:
		if e.Op == "==" && e.Left.String() == e.Right.String() {
			return true
		}
		return ContainsSatisfiedEquality(e.Left) || ContainsSatisfiedEquality(e.Right)
	default:
		return false
	}
}
