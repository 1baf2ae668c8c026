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
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcinspect/srcinspect/internal/platform"
	"github.com/srcinspect/srcinspect/internal/settings"
)

const vcxprojTemplate = `<?xml version="1.0" encoding="utf-8"?>
<Project DefaultTargets="Build" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <ItemGroup Label="ProjectConfigurations">
    <ProjectConfiguration Include="Debug|Win32">
      <Configuration>Debug</Configuration>
      <Platform>Win32</Platform>
    </ProjectConfiguration>
    <ProjectConfiguration Include="Release|x64">
      <Configuration>Release</Configuration>
      <Platform>x64</Platform>
    </ProjectConfiguration>
  </ItemGroup>
  <ItemGroup>
    <ClCompile Include="src\main.cpp" />
  </ItemGroup>
  %s
</Project>`

func writeVcxproj(t *testing.T, definitionGroups string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "app.vcxproj")
	content := fmt.Sprintf(vcxprojTemplate, definitionGroups)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o600))
	return filename
}

func TestImportVcxprojConditionalGroup(t *testing.T) {
	filename := writeVcxproj(t, `
  <ItemDefinitionGroup Condition="'$(Configuration)|$(Platform)'=='Debug|Win32'">
    <ClCompile>
      <PreprocessorDefinitions>WIN32;_DEBUG;%(PreprocessorDefinitions)</PreprocessorDefinitions>
      <AdditionalIncludeDirectories>..\inc;..\lib;</AdditionalIncludeDirectories>
    </ClCompile>
  </ItemDefinitionGroup>`)

	s := settings.New()
	require.NoError(t, ImportProject(s, filename))

	require.Len(t, s.FileSettings, 1)
	fs := s.FileSettings[0]
	assert.Equal(t, filepath.ToSlash(filepath.Dir(filename))+"/src/main.cpp", fs.Filename)
	assert.Equal(t, "WIN32;_DEBUG;%(PreprocessorDefinitions)", fs.Defines)
	assert.Equal(t, []string{`..\inc`, `..\lib`}, fs.IncludePaths)
	assert.Equal(t, platform.Win32W, fs.Platform)
}

func TestImportVcxprojUnconditionalGroup(t *testing.T) {
	filename := writeVcxproj(t, `
  <ItemDefinitionGroup>
    <ClCompile>
      <PreprocessorDefinitions>COMMON</PreprocessorDefinitions>
    </ClCompile>
  </ItemDefinitionGroup>`)

	s := settings.New()
	require.NoError(t, ImportProject(s, filename))

	// The group applies to both configurations, one record each.
	require.Len(t, s.FileSettings, 2)
	platforms := []platform.Profile{s.FileSettings[0].Platform, s.FileSettings[1].Platform}
	assert.ElementsMatch(t, []platform.Profile{platform.Win32W, platform.Win64}, platforms)
	for _, fs := range s.FileSettings {
		assert.Equal(t, "COMMON", fs.Defines)
	}
}

func TestImportVcxprojUnknownPlatformKeepsDefault(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "arm.vcxproj")
	content := `<?xml version="1.0" encoding="utf-8"?>
<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <ItemGroup Label="ProjectConfigurations">
    <ProjectConfiguration Include="Debug|ARM64">
      <Configuration>Debug</Configuration>
      <Platform>ARM64</Platform>
    </ProjectConfiguration>
  </ItemGroup>
  <ItemGroup>
    <ClCompile Include="a.cpp" />
  </ItemGroup>
  <ItemDefinitionGroup>
    <ClCompile/>
  </ItemDefinitionGroup>
</Project>`
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o600))

	s := settings.New()
	require.NoError(t, ImportProject(s, filename))

	require.Len(t, s.FileSettings, 1)
	assert.Equal(t, s.Platform.Type, s.FileSettings[0].Platform)
}

func TestImportVcxprojFileFilters(t *testing.T) {
	filename := writeVcxproj(t, `
  <ItemDefinitionGroup>
    <ClCompile/>
  </ItemDefinitionGroup>`)

	s := settings.New()
	s.FileFilters = []string{"**/other/*.cpp"}
	require.NoError(t, ImportProject(s, filename))
	assert.Empty(t, s.FileSettings)

	s = settings.New()
	s.FileFilters = []string{"**/src/*.cpp"}
	require.NoError(t, ImportProject(s, filename))
	assert.Len(t, s.FileSettings, 2)
}

func TestImportVcxprojMalformed(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "broken.vcxproj")
	require.NoError(t, os.WriteFile(filename, []byte("<Project><ItemGroup></Project>"), 0o600))

	s := settings.New()
	assert.Error(t, ImportProject(s, filename))
	assert.Error(t, ImportProject(s, filepath.Join(t.TempDir(), "missing.vcxproj")))
}

func TestConditionIsTrue(t *testing.T) {
	config := projectConfiguration{Configuration: "Debug", Platform: "Win32"}

	testCases := []struct {
		condition string
		expected  bool
	}{
		{"", true},
		{"   ", true},
		{"'$(Configuration)|$(Platform)'=='Debug|Win32'", true},
		{"'$(Configuration)|$(Platform)'=='Release|Win32'", false},
		{"'$(Configuration)'=='Debug' And '$(Platform)'=='Win32'", true},
		{"'$(Configuration)'=='Release' And '$(Platform)'=='Win32'", true},
		{"'$(Configuration)'=='Release' And '$(Platform)'=='x64'", false},
		{"'$(Configuration)'!='Debug'", false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.condition, func(t *testing.T) {
			group := itemDefinitionGroup{Condition: testCase.condition}
			assert.Equal(t, testCase.expected, conditionIsTrue(group, config))
		})
	}
}
