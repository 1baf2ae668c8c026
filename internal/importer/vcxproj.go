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
	"encoding/xml"
	"os"
	"strings"

	"github.com/srcinspect/srcinspect/internal/cc/parser"
	"github.com/srcinspect/srcinspect/internal/collections"
	"github.com/srcinspect/srcinspect/internal/fspath"
	"github.com/srcinspect/srcinspect/internal/platform"
	"github.com/srcinspect/srcinspect/internal/settings"
)

// Visual Studio project schema, reduced to the elements this importer reads.
// Unexpected elements and attributes are skipped by the decoder.
type vcxprojProject struct {
	XMLName              xml.Name              `xml:"Project"`
	ItemGroups           []itemGroup           `xml:"ItemGroup"`
	ItemDefinitionGroups []itemDefinitionGroup `xml:"ItemDefinitionGroup"`
}

type itemGroup struct {
	Label                 string                 `xml:"Label,attr"`
	ProjectConfigurations []projectConfiguration `xml:"ProjectConfiguration"`
	ClCompiles            []clCompileItem        `xml:"ClCompile"`
}

// projectConfiguration is one (configuration, platform) pair from the
// ProjectConfigurations item group, e.g. Debug/Win32. It exists only during
// the import; FileSettings keep just the mapped platform profile.
type projectConfiguration struct {
	Configuration string `xml:"Configuration"`
	Platform      string `xml:"Platform"`
}

type clCompileItem struct {
	Include string `xml:"Include,attr"`
}

// itemDefinitionGroup carries compiler options that apply only to the
// configurations its Condition selects.
type itemDefinitionGroup struct {
	Condition string           `xml:"Condition,attr"`
	ClCompile clCompileOptions `xml:"ClCompile"`
}

type clCompileOptions struct {
	PreprocessorDefinitions      string `xml:"PreprocessorDefinitions"`
	AdditionalIncludeDirectories string `xml:"AdditionalIncludeDirectories"`
}

// conditionIsTrue decides whether an option group applies to the given
// configuration. The $(Configuration) and $(Platform) placeholders are
// substituted, the result is parsed into expression trees, and the condition
// holds when any tree contains a satisfied == comparison. This coarse check
// intentionally ignores boolean algebra around the comparisons; see
// parser.ContainsSatisfiedEquality.
//
// A group without a condition applies to every configuration.
func conditionIsTrue(group itemDefinitionGroup, config projectConfiguration) bool {
	condition := group.Condition
	if strings.TrimSpace(condition) == "" {
		return true
	}
	condition = strings.ReplaceAll(condition, "$(Configuration)", config.Configuration)
	condition = strings.ReplaceAll(condition, "$(Platform)", config.Platform)

	for _, expr := range parser.ParseExpressions(condition) {
		if parser.ContainsSatisfiedEquality(expr) {
			return true
		}
	}
	return false
}

// importVcxproj collects the project's configurations, source files and
// conditional option groups, then emits one FileSettings record for every
// (file, configuration, matching group) triple.
func importVcxproj(s *settings.Settings, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	var project vcxprojProject
	if err := xml.Unmarshal(content, &project); err != nil {
		return err
	}

	var configurations []projectConfiguration
	var compileList []string
	for _, group := range project.ItemGroups {
		if group.Label == "ProjectConfigurations" {
			configurations = append(configurations, group.ProjectConfigurations...)
			continue
		}
		items := collections.FilterSlice(group.ClCompiles, func(item clCompileItem) bool {
			return item.Include != ""
		})
		compileList = append(compileList, collections.MapSlice(items, func(item clCompileItem) string {
			return item.Include
		})...)
	}

	projectDir := fspath.GetPathFromFilename(fspath.FromNativeSeparators(filename))
	for _, include := range compileList {
		for _, config := range configurations {
			for _, group := range project.ItemDefinitionGroups {
				if !conditionIsTrue(group, config) {
					continue
				}
				fs := settings.FileSettings{
					Filename:     fspath.SimplifyPath(projectDir + fspath.FromNativeSeparators(include)),
					Defines:      group.ClCompile.PreprocessorDefinitions,
					Undefs:       collections.Set[string]{},
					IncludePaths: splitIncludePaths(group.ClCompile.AdditionalIncludeDirectories),
					Platform:     s.Platform.Type,
				}
				// Unrecognized platform names fall through to the current default.
				switch config.Platform {
				case "Win32":
					fs.Platform = platform.Win32W
				case "x64":
					fs.Platform = platform.Win64
				}
				if keepFile(s, fs.Filename) {
					s.FileSettings = append(s.FileSettings, fs)
				}
			}
		}
	}
	return nil
}

// splitIncludePaths splits a semicolon-joined include directory list. A
// trailing empty segment, the usual result of MSBuild's
// "...;%(AdditionalIncludeDirectories)" tail being stripped or of a plain
// trailing semicolon, is dropped; interior empty segments are kept.
func splitIncludePaths(paths string) []string {
	if paths == "" {
		return nil
	}
	parts := strings.Split(paths, ";")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
