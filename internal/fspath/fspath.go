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

// Package fspath normalizes file paths found in build-configuration inputs.
//
// Paths coming from compile-command databases and IDE project files mix native
// and forward-slash separators, relative segments and quotation marks. The
// helpers here convert them into a canonical slash-separated form used by the
// rest of the module. All functions are purely lexical: nothing touches the
// file system.
package fspath

import (
	"strings"
)

// FromNativeSeparators converts all backslash separators in path to forward
// slashes.
func FromNativeSeparators(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// GetPathFromFilename returns the directory part of filename including the
// trailing separator, or an empty string when filename contains no separator.
func GetPathFromFilename(filename string) string {
	pos := strings.LastIndexAny(filename, "\\/")
	if pos < 0 {
		return ""
	}
	return filename[:pos+1]
}

// RemoveQuotationMarks strips every double-quote character from path. Build
// logs quote paths containing spaces either whole or per component; removing
// the quotes is correct in both cases.
func RemoveQuotationMarks(path string) string {
	return strings.ReplaceAll(path, `"`, "")
}

// SimplifyPath lexically simplifies a slash-separated path: leading "./" and
// interior "." segments are removed and "dir/.." pairs are collapsed. Leading
// ".." segments and a ".." in the final position are preserved, as are a root
// slash and a trailing slash.
func SimplifyPath(originalPath string) string {
	path := originalPath
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}

	rooted := strings.HasPrefix(path, "/")
	trailingSlash := strings.HasSuffix(path, "/")

	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" && segment != "." {
			segments = append(segments, segment)
		}
	}

	var simplified []string
	for i, segment := range segments {
		isFinal := i == len(segments)-1 && !trailingSlash
		if segment == ".." && !isFinal && len(simplified) > 0 && simplified[len(simplified)-1] != ".." {
			simplified = simplified[:len(simplified)-1]
		} else {
			simplified = append(simplified, segment)
		}
	}

	result := strings.Join(simplified, "/")
	if rooted {
		result = "/" + result
	}
	if trailingSlash && !strings.HasSuffix(result, "/") {
		result += "/"
	}
	if result == "" {
		result = "."
	}
	return result
}

// Source-file extension tables. In unix ".C" is considered C++, so the C check
// is case sensitive while the C++ check is not.
var (
	cppExtensions = []string{".cpp", ".cxx", ".cc", ".c++", ".tpp", ".txx"}
)

func extensionOf(path string) string {
	dot := strings.LastIndex(path, ".")
	if dot < 0 {
		return ""
	}
	return path[dot:]
}

// IsC reports whether path names a C source file.
func IsC(path string) bool {
	return extensionOf(path) == ".c"
}

// IsCPP reports whether path names a C++ source file.
func IsCPP(path string) bool {
	ext := extensionOf(path)
	if ext == ".C" {
		return true
	}
	lowered := strings.ToLower(ext)
	for _, known := range cppExtensions {
		if lowered == known {
			return true
		}
	}
	return false
}

// AcceptFile reports whether path names a source file the analyzer can check.
func AcceptFile(path string) bool {
	return IsC(path) || IsCPP(path)
}
