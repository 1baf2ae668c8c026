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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/srcinspect/srcinspect/internal/settings"
)

func TestImportCompileCommandsSingleRecord(t *testing.T) {
	s := settings.New()
	input := `[{"file":"a.c","command":"gcc -DFOO -Iinc a.c"}]`
	require.NoError(t, importCompileCommands(s, strings.NewReader(input)))

	require.Len(t, s.FileSettings, 1)
	fs := s.FileSettings[0]
	assert.Equal(t, "a.c", fs.Filename)
	assert.Equal(t, "FOO;", fs.Defines)
	assert.Equal(t, []string{"inc"}, fs.IncludePaths)
	assert.Empty(t, fs.Undefs)
	assert.Equal(t, s.Platform.Type, fs.Platform)
}

func TestImportCompileCommandsIncompleteRecords(t *testing.T) {
	s := settings.New()
	input := `[
	{"directory":"/build","file":"nocommand.c"},
	{"directory":"/build","command":"gcc orphan.c"},
	{}
]`
	require.NoError(t, importCompileCommands(s, strings.NewReader(input)))
	assert.Empty(t, s.FileSettings)
}

func TestImportCompileCommandsFlagExtraction(t *testing.T) {
	testCases := []struct {
		name             string
		command          string
		expectedDefines  string
		expectedUndefs   []string
		expectedIncludes []string
	}{
		{
			name:            "multiple defines keep order and separators",
			command:         "gcc -DA=1 -DB a.c",
			expectedDefines: "A=1;B;",
		},
		{
			name:           "undefine flags",
			command:        "cl /UDEBUG /UNDEBUG a.c",
			expectedUndefs: []string{"DEBUG", "NDEBUG"},
		},
		{
			name:             "include flags keep order",
			command:          "gcc -Ifirst -Isecond a.c",
			expectedIncludes: []string{"first", "second"},
		},
		{
			name:            "value separated by a space is not recognized",
			command:         "gcc -D FOO a.c",
			expectedDefines: ";",
		},
		{
			name:            "unknown flags are ignored",
			command:         "gcc -Wall -O2 -fPIC -DX a.c",
			expectedDefines: "X;",
		},
		{
			name:            "windows style slash flags",
			command:         `cl /DWIN32 /Ic:\inc main.cpp`,
			expectedDefines: "WIN32;",
			expectedIncludes: []string{
				`c:\inc`,
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			fs := fileSettingsFromCommand("a.c", testCase.command)
			assert.Equal(t, testCase.expectedDefines, fs.Defines)
			assert.ElementsMatch(t, testCase.expectedUndefs, fs.Undefs.Values())
			assert.Equal(t, testCase.expectedIncludes, fs.IncludePaths)
		})
	}
}

func TestImportCompileCommandsNormalizesFilename(t *testing.T) {
	fs := fileSettingsFromCommand(`src\main.cpp`, "cl main.cpp")
	assert.Equal(t, "src/main.cpp", fs.Filename)
}

func TestImportProjectCompileCommands(t *testing.T) {
	dir := t.TempDir()
	content := `[{"file":"b.c","command":"gcc -DBAR b.c"}]`

	t.Run("plain", func(t *testing.T) {
		filename := filepath.Join(dir, "compile_commands.json")
		require.NoError(t, os.WriteFile(filename, []byte(content), 0o600))

		s := settings.New()
		require.NoError(t, ImportProject(s, filename))
		require.Len(t, s.FileSettings, 1)
		assert.Equal(t, "BAR;", s.FileSettings[0].Defines)
	})

	t.Run("xz compressed", func(t *testing.T) {
		filename := filepath.Join(dir, "compile_commands.json.xz")
		file, err := os.Create(filename)
		require.NoError(t, err)
		compressor, err := xz.NewWriter(file)
		require.NoError(t, err)
		_, err = compressor.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, compressor.Close())
		require.NoError(t, file.Close())

		s := settings.New()
		require.NoError(t, ImportProject(s, filename))
		require.Len(t, s.FileSettings, 1)
		assert.Equal(t, "b.c", s.FileSettings[0].Filename)
	})
}

func TestImportProjectFailures(t *testing.T) {
	s := settings.New()
	assert.Error(t, ImportProject(s, filepath.Join(t.TempDir(), "compile_commands.json")))
	assert.ErrorIs(t, ImportProject(s, "Makefile"), ErrUnsupportedFormat)
	assert.Empty(t, s.FileSettings)
}

func TestImportCompileCommandsFileFilters(t *testing.T) {
	input := `[
	{"file":"src/a.c","command":"gcc src/a.c"},
	{"file":"vendor/b.c","command":"gcc vendor/b.c"}
]`

	s := settings.New()
	s.FileFilters = []string{"src/**"}
	require.NoError(t, importCompileCommands(s, strings.NewReader(input)))
	require.Len(t, s.FileSettings, 1)
	assert.Equal(t, "src/a.c", s.FileSettings[0].Filename)
}
