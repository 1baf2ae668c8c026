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

// Package parser implements a lightweight expression parser for build-configuration
// condition strings, such as the Condition attributes found in Visual Studio project
// files. It recognises quoted string operands, comparison operators and boolean
// connectives, and converts them into an Expr AST declared in the same package.
//
// The parser is not a complete condition-language front-end - it only understands
// enough of the grammar to let callers scan the resulting tree for satisfied
// equality comparisons, and deliberately skips tokens it cannot interpret.
package parser

import (
	"errors"
	"fmt"

	"github.com/srcinspect/srcinspect/internal/cc/lexer"
	"github.com/srcinspect/srcinspect/internal/collections"
)

func isRelevantTokenType(token lexer.Token) bool {
	switch token.Type {
	case lexer.TokenType_Word, lexer.TokenType_Symbol, lexer.TokenType_StringLiteral:
		return true
	default:
		return false
	}
}

type (
	parseRule struct {
		precedence   precedence
		prefixParser prefixParseFn
		infixParser  infixParserFn
	}
	prefixParseFn func(p *parser, token string) (Expr, error)
	infixParserFn func(p *parser, token string, left Expr) (Expr, error)
	precedence    int
)

const (
	precedenceLowest  precedence = iota
	precedenceOr                 // ||
	precedenceAnd                // &&
	precedenceCompare            // ==, !=, <, <=, >, >=
	precedenceBang               // ! (prefix)
	precedenceParens             // (
)

// exprKeywordsPrecedence maps operator tokens to their precedence and parser functions.
// This is initialized in init() to avoid cyclic reference errors at package init time.
var exprKeywordsPrecedence map[string]parseRule

func init() {
	exprKeywordsPrecedence = map[string]parseRule{
		"!":  {precedence: precedenceBang, prefixParser: parseUnaryBangOperator},
		"(":  {precedence: precedenceParens, prefixParser: parseUnaryOpenParenthesis},
		"||": {precedence: precedenceOr, infixParser: parseBinaryLogicOrOperator},
		"&&": {precedence: precedenceAnd, infixParser: parseBinaryLogicAndOperator},
		"==": {precedence: precedenceCompare, infixParser: parseBinaryCompareOperator},
		"!=": {precedence: precedenceCompare, infixParser: parseBinaryCompareOperator},
		">":  {precedence: precedenceCompare, infixParser: parseBinaryCompareOperator},
		">=": {precedence: precedenceCompare, infixParser: parseBinaryCompareOperator},
		"<":  {precedence: precedenceCompare, infixParser: parseBinaryCompareOperator},
		"<=": {precedence: precedenceCompare, infixParser: parseBinaryCompareOperator},
	}
}

// ParseExpression parses a condition string into a single expression tree.
// Returns an error for empty input, for input that does not start a parsable
// expression and for trailing tokens left after the first expression.
func ParseExpression(input string) (Expr, error) {
	tokens := relevantTokens(input)
	if len(tokens) == 0 {
		return nil, errors.New("empty expression")
	}
	p := &parser{tokensLeft: tokens}
	expr, err := p.parseExprPrecedence(precedenceLowest)
	if err != nil {
		return nil, err
	}
	if leftover := p.peek(); leftover != lexer.TokenEOF {
		return nil, fmt.Errorf("unexpected trailing token %q", leftover.Content)
	}
	return expr, nil
}

// ParseExpressions parses a condition string into a sequence of expression
// trees. Tokens that do not start a parsable expression are dropped one at a
// time and parsing restarts after them, so a partially understood condition
// still yields every comparison subtree that could be recovered. An empty or
// entirely unparsable input yields an empty sequence.
func ParseExpressions(input string) []Expr {
	p := &parser{tokensLeft: relevantTokens(input)}

	var result []Expr
	for p.peek() != lexer.TokenEOF {
		backtrack := p.tokensLeft
		expr, err := p.parseExprPrecedence(precedenceLowest)
		if err != nil {
			// Skip a single token past the failed parse position and retry.
			p.tokensLeft = backtrack
			p.drop(1)
			continue
		}
		result = append(result, expr)
	}
	return result
}

func relevantTokens(input string) []lexer.Token {
	allTokens := lexer.NewLexer([]byte(input)).Tokenize()
	return collections.FilterSlice(allTokens, isRelevantTokenType)
}

// getPrefixParseFn returns a prefix parser for a token, or a default parser for operands.
func getPrefixParseFn(token lexer.Token) prefixParseFn {
	if rule, exists := exprKeywordsPrecedence[token.Content]; exists && rule.prefixParser != nil {
		return rule.prefixParser
	}
	if token.Type == lexer.TokenType_StringLiteral {
		return func(p *parser, token string) (Expr, error) {
			return StringLit(token), nil
		}
	}
	// Fallback: treat as identifier or literal word.
	return func(p *parser, token string) (Expr, error) {
		return parseValue(token)
	}
}

// parseExprPrecedence implements Pratt parsing for condition expressions.
// minPrecedence controls operator binding (precedence climbing).
func (p *parser) parseExprPrecedence(minPrecedence precedence) (Expr, error) {
	token := p.next()
	if token == lexer.TokenEOF {
		return nil, errors.New("expected expression, found end of input")
	}

	parsePrefix := getPrefixParseFn(token)
	result, err := parsePrefix(p, token.Content)
	if err != nil {
		return nil, err
	}

	for {
		token := p.peek()
		if token == lexer.TokenEOF {
			return result, nil // end of input
		}

		rule, exists := exprKeywordsPrecedence[token.Content]
		if !exists || rule.infixParser == nil || rule.precedence < minPrecedence {
			return result, nil // current operator binds less - stop and return
		}
		p.next()
		result, err = rule.infixParser(p, token.Content, result)
		if err != nil {
			return nil, err
		}
	}
}

func parseBinaryLogicOrOperator(p *parser, token string, lhs Expr) (Expr, error) {
	rhs, err := p.parseExprPrecedence(precedenceOr + 1)
	if err != nil {
		return nil, err
	}
	return Or{lhs, rhs}, nil
}

func parseBinaryLogicAndOperator(p *parser, token string, lhs Expr) (Expr, error) {
	rhs, err := p.parseExprPrecedence(precedenceAnd + 1)
	if err != nil {
		return nil, err
	}
	return And{lhs, rhs}, nil
}

func parseBinaryCompareOperator(p *parser, op string, lhs Expr) (Expr, error) {
	switch op {
	case "==", "!=", ">", ">=", "<", "<=":
		rhs, err := p.parseExprPrecedence(precedenceCompare + 1)
		if err != nil {
			return nil, err
		}
		return Compare{lhs, op, rhs}, nil
	default:
		panic(fmt.Sprintf("unknown binary compare operator %q", op))
	}
}

func parseUnaryBangOperator(p *parser, _ string) (Expr, error) {
	inner, err := p.parseExprPrecedence(precedenceBang + 1)
	if err != nil {
		return nil, err
	}
	return Not{inner}, nil
}

func parseUnaryOpenParenthesis(p *parser, tok string) (Expr, error) {
	expr, err := p.parseExprPrecedence(precedenceLowest + 1)
	if err != nil {
		return nil, err
	}
	if err := p.expectNext(")"); err != nil {
		return nil, err
	}
	return expr, nil
}

type parser struct {
	tokensLeft []lexer.Token // Tokens yet to be processed
}

// Drop n tokens from the front of the input stream (or all if number of tokens < n).
func (p *parser) drop(n int) {
	p.tokensLeft = p.tokensLeft[min(n, len(p.tokensLeft)):]
}

// Return the next token without consuming it, or TokenEOF if no tokens are left.
func (p *parser) peek() lexer.Token {
	if len(p.tokensLeft) == 0 {
		return lexer.TokenEOF
	}
	return p.tokensLeft[0]
}

// Return the next token and consume it, or TokenEOF if no tokens are left.
func (p *parser) next() lexer.Token {
	token := p.peek()
	p.drop(1)
	return token
}

// Check if the next token matches the expected content, returning error otherwise.
func (p *parser) expectNext(expected string) error {
	token := p.next()
	if token == lexer.TokenEOF {
		return fmt.Errorf("expected %q but reached end of input", expected)
	}
	if token.Content != expected {
		return fmt.Errorf("expected %q but found %q", expected, token.Content)
	}
	return nil
}

// parseValue parses a word token as an identifier operand. Operator symbols and
// punctuation are rejected so they are not silently absorbed as operands.
func parseValue(token string) (Expr, error) {
	if _, isOperator := exprKeywordsPrecedence[token]; isOperator {
		return nil, fmt.Errorf("expected operand, found operator %q", token)
	}
	switch token {
	case ")", ",", ";", "{", "}", "[", "]", "|", "&", "=":
		return nil, fmt.Errorf("expected operand, found symbol %q", token)
	}
	return Ident(token), nil
}
