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

// srcinspect-import normalizes build-system project descriptions into per-file
// compilation settings and prints them, one block per compilation unit. It is
// the import front end of the srcinspect analyzer; the analysis itself happens
// elsewhere.
package main

import (
	"cmp"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/srcinspect/srcinspect/internal/fspath"
	"github.com/srcinspect/srcinspect/internal/importer"
	"github.com/srcinspect/srcinspect/internal/platform"
	"github.com/srcinspect/srcinspect/internal/settings"
)

func main() {
	var enables, fileFilters stringList
	platformArg := flag.String("platform", "", "Target platform: one of unspecified, native, win32A, win32W, win64, unix32, unix64, or a path to an XML platform descriptor")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Var(&enables, "enable", "Repeated or comma-separated check categories to enable, e.g. style,performance or all")
	flag.Var(&fileFilters, "file-filter", "Repeated glob patterns; only imported files matching one of them are kept")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("Program requires at least 1 argument - a compile_commands.json or .vcxproj file. Flags need to be defined before arguments")
	}

	s := settings.New()
	s.FileFilters = fileFilters.values

	if *platformArg != "" {
		if platform.IsKnown(platform.Profile(*platformArg)) {
			s.SetPlatform(platform.Profile(*platformArg))
		} else if err := s.LoadPlatformFile(*platformArg); err != nil {
			log.Fatalf("Unrecognized platform %q: not a known profile, loading as descriptor failed: %v", *platformArg, err)
		}
	}

	for _, enable := range enables.values {
		if err := s.AddEnabled(enable); err != nil {
			log.Fatal(err)
		}
	}

	for _, project := range flag.Args() {
		if err := importer.ImportProject(s, project); err != nil {
			log.Printf("Failed to import %s: %v, it would be skipped", project, err)
		}
	}

	if *verbose {
		log.Printf("Platform: %s, enabled checks: %s", s.Platform.Type, strings.Join(s.Enabled(), ","))
	}

	for _, fs := range s.FileSettings {
		if *verbose && !fspath.AcceptFile(fs.Filename) {
			log.Printf("%s is not a recognized C/C++ source file", fs.Filename)
		}
		fmt.Printf("file: %s\n", fs.Filename)
		fmt.Printf("  platform: %s\n", fs.Platform)
		if fs.Defines != "" {
			fmt.Printf("  defines: %s\n", fs.Defines)
		}
		for _, undef := range fs.Undefs.SortedValues(cmp.Compare) {
			fmt.Printf("  undef: %s\n", undef)
		}
		for _, includePath := range fs.IncludePaths {
			fmt.Printf("  include: %s\n", includePath)
		}
	}
}

// stringList implements flag.Value for flags that may be repeated.
type stringList struct {
	values []string
}

func (s *stringList) String() string {
	return strings.Join(s.values, ",")
}

func (s *stringList) Set(value string) error {
	s.values = append(s.values, value)
	return nil
}
