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

// Package importer translates build-system project descriptions into the
// normalized per-file compilation settings of the settings package.
//
// Two input formats are understood: clang compile command databases
// (compile_commands.json, optionally xz-compressed) and Visual Studio project
// files (.vcxproj). Both append their results to the FileSettings collection
// of the Settings object passed in; repeated imports accumulate.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ulikunitz/xz"

	"github.com/srcinspect/srcinspect/internal/fspath"
	"github.com/srcinspect/srcinspect/internal/settings"
)

var ErrUnsupportedFormat = errors.New("unsupported project file format")

// ImportProject inspects the filename and routes it to the matching importer.
// Appended FileSettings records survive even when the import fails half way;
// there is no rollback, the caller decides whether to keep or discard them.
func ImportProject(s *settings.Settings, filename string) error {
	base := path.Base(fspath.FromNativeSeparators(filename))
	switch {
	case base == "compile_commands.json" || base == "compile_commands.json.xz":
		file, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer file.Close()

		var input io.Reader = file
		if strings.HasSuffix(base, ".xz") {
			if input, err = xz.NewReader(file); err != nil {
				return err
			}
		}
		return importCompileCommands(s, input)
	case strings.Contains(base, ".vcxproj"):
		return importVcxproj(s, filename)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// keepFile applies the configured file filters to a normalized path. With no
// filters configured every file is kept.
func keepFile(s *settings.Settings, filename string) bool {
	if len(s.FileFilters) == 0 {
		return true
	}
	return slices.ContainsFunc(s.FileFilters, func(pattern string) bool {
		return doublestar.MatchUnvalidated(pattern, filename)
	})
}
