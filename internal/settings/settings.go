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

// Package settings holds the analyzer configuration object: the selected
// target-platform ABI, the set of enabled check categories and the ordered
// collection of per-file compilation settings filled in by the importer
// package.
package settings

import (
	"cmp"

	"github.com/srcinspect/srcinspect/internal/collections"
	"github.com/srcinspect/srcinspect/internal/platform"
)

// FileSettings describes one normalized compilation unit: where the source
// file lives and which preprocessor configuration applies to it. Records are
// append-only; once added to a Settings object they are never mutated.
type FileSettings struct {
	// Slash-separated path of the source file.
	Filename string
	// Accumulated preprocessor defines, each followed by a ';' separator.
	Defines string
	// Names of macros explicitly undefined for this file.
	Undefs collections.Set[string]
	// Include search paths, in the order the build tool would apply them.
	IncludePaths []string
	// Effective target platform of this compilation unit.
	Platform platform.Profile
}

// Settings is the configuration object shared by the host tool and the
// importers. It is not safe for concurrent mutation; callers must not run
// importers against the same Settings object from multiple goroutines.
type Settings struct {
	// ABI of the platform the analyzed code targets.
	Platform platform.ABI

	// Glob patterns limiting which imported files are kept. Empty means keep
	// everything.
	FileFilters []string

	// One record per (file, effective configuration) pair discovered by the
	// importers, in discovery order.
	FileSettings []FileSettings

	enabled collections.Set[string]
}

// New returns a Settings object targeting the build host platform, with no
// optional checks enabled.
func New() *Settings {
	abi, _ := platform.Lookup(platform.Native)
	return &Settings{
		Platform: abi,
		enabled:  collections.Set[string]{},
	}
}

// SetPlatform switches the target platform to the given profile, overwriting
// every ABI field. Returns false and leaves the previous platform in place for
// a profile outside the known enumeration.
func (s *Settings) SetPlatform(profile platform.Profile) bool {
	abi, known := platform.Lookup(profile)
	if !known {
		return false
	}
	s.Platform = abi
	return true
}

// LoadPlatformFile patches the current ABI from an XML platform descriptor.
// Fields the descriptor does not mention keep their current values.
func (s *Settings) LoadPlatformFile(filename string) error {
	return platform.LoadDescriptor(filename, &s.Platform)
}

// IsEnabled reports whether the given check category has been enabled.
func (s *Settings) IsEnabled(category string) bool {
	return s.enabled.Contains(category)
}

// Enabled returns the enabled check categories in lexical order.
func (s *Settings) Enabled() []string {
	return s.enabled.SortedValues(cmp.Compare)
}
