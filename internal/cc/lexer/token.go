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

package lexer

import "strings"

type TokenType int

const (
	// Special token type indicating the end of the input stream (or default
	// value when an error is returned).
	TokenType_EOF TokenType = iota

	// Every complete token that is not one of the other types.
	//
	// This is a fallback type. Lexer covers only a subset of the syntax found
	// in build-configuration inputs. Every token without its dedicated
	// TokenType is classified as Word.
	TokenType_Word

	// Operators and punctuation: comparison and logical operators, braces,
	// brackets, parentheses, commas, semicolons and colons.
	TokenType_Symbol

	// String literal, either double-quoted with backslash escapes ("a.c") or
	// single-quoted without escapes ('Debug|Win32'). Quotes are part of the
	// token content.
	TokenType_StringLiteral

	// One or more whitespace characters, other than newlines.
	TokenType_Whitespace

	// Single newline character '\n'.
	TokenType_Newline
)

type Token struct {
	Type     TokenType
	Location Cursor
	Content  string
}

var TokenEOF = Token{Type: TokenType_EOF}

// Unquoted returns the token content with surrounding quote characters removed
// for string literals, and the content unchanged for every other token type.
// Escape sequences inside double-quoted literals are preserved verbatim.
func (t Token) Unquoted() string {
	if t.Type != TokenType_StringLiteral || len(t.Content) < 2 {
		return t.Content
	}
	if strings.HasPrefix(t.Content, `"`) || strings.HasPrefix(t.Content, "'") {
		return t.Content[1 : len(t.Content)-1]
	}
	return t.Content
}
