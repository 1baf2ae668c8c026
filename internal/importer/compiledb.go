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

package importer

import (
	"io"

	"github.com/srcinspect/srcinspect/internal/cc/lexer"
	"github.com/srcinspect/srcinspect/internal/collections"
	"github.com/srcinspect/srcinspect/internal/fspath"
	"github.com/srcinspect/srcinspect/internal/settings"
)

// importCompileCommands walks a compile command database as a token stream
// rather than parsing it as JSON. Any well-formed sequence of
// "key" : "value" pairs grouped by braces is accepted. Whenever a closing
// brace is reached and both a file and a command were captured, one
// FileSettings record is emitted; incomplete objects are dropped silently.
func importCompileCommands(s *settings.Settings, input io.Reader) error {
	content, err := io.ReadAll(input)
	if err != nil {
		return err
	}

	tokens := collections.FilterSlice(lexer.NewLexer(content).Tokenize(), func(token lexer.Token) bool {
		return token.Type != lexer.TokenType_Whitespace && token.Type != lexer.TokenType_Newline
	})

	values := map[string]string{}
	for i, token := range tokens {
		switch {
		// "key" : "value" followed by ',' or '}'
		case token.Type == lexer.TokenType_StringLiteral &&
			i+3 < len(tokens) &&
			tokens[i+1].Content == ":" &&
			tokens[i+2].Type == lexer.TokenType_StringLiteral &&
			(tokens[i+3].Content == "," || tokens[i+3].Content == "}"):
			values[token.Unquoted()] = tokens[i+2].Unquoted()

		case token.Content == "}":
			if values["file"] != "" && values["command"] != "" {
				fs := fileSettingsFromCommand(values["file"], values["command"])
				fs.Platform = s.Platform.Type
				if keepFile(s, fs.Filename) {
					s.FileSettings = append(s.FileSettings, fs)
				}
			}
			clear(values)
		}
	}
	return nil
}

// fileSettingsFromCommand extracts -D, -U and -I flags from a compiler command
// line. The scan is deliberately simplistic: a flag is any space-preceded
// token starting with '-' or '/', its value runs to the next space. Quoting,
// "-D FOO" with a separating space and "--define=FOO" forms are not
// recognized. Consumers rely on exactly this acceptance, so it must not be
// replaced by proper shell-word splitting.
func fileSettingsFromCommand(file, command string) settings.FileSettings {
	fs := settings.FileSettings{
		Filename: fspath.FromNativeSeparators(file),
		Undefs:   collections.Set[string]{},
	}

	for pos := 0; pos < len(command); pos++ {
		if command[pos] != ' ' {
			continue
		}
		pos++
		if pos >= len(command) || (command[pos] != '/' && command[pos] != '-') {
			pos--
			continue
		}
		pos++
		if pos >= len(command) {
			break
		}
		flag := command[pos]
		pos++
		valueBegin := pos
		for pos < len(command) && command[pos] != ' ' {
			pos++
		}
		value := command[valueBegin:pos]
		pos--

		switch flag {
		case 'D':
			fs.Defines += value + ";"
		case 'U':
			fs.Undefs.Add(value)
		case 'I':
			fs.IncludePaths = append(fs.IncludePaths, value)
		}
	}
	return fs
}
