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

package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/srcinspect/srcinspect/internal/collections"
)

// Closed vocabulary of check categories accepted by AddEnabled. The "internal"
// category is appended only when building with the internal_checks tag; see
// enabled_internal.go.
var checkCategories = collections.SetOf(
	"warning",
	"style",
	"performance",
	"portability",
	"information",
	"missingInclude",
	"unusedFunction",
)

// Self checks of the analyzer itself. Never enabled through "all", only by
// naming it explicitly in an internal_checks build.
const internalCategory = "internal"

var errEmptyEnabled = errors.New("srcinspect: --enable parameter is empty")

// AddEnabled enables the check categories named in str, a single category name
// or a comma-separated list of them. "all" expands to every category except
// internal, and "information" additionally enables "missingInclude". The
// enabled set only ever grows; categories enabled by earlier calls stay
// enabled. A nil return means every token was accepted.
func (s *Settings) AddEnabled(str string) error {
	// Enable parameters may be comma separated...
	if comma := strings.IndexByte(str, ','); comma >= 0 {
		if comma == 0 {
			return errEmptyEnabled
		}
		if err := s.AddEnabled(str[:comma]); err != nil {
			return err
		}
		if comma+1 >= len(str) {
			return errEmptyEnabled
		}
		return s.AddEnabled(str[comma+1:])
	}

	switch {
	case str == "all":
		for category := range checkCategories.All() {
			if category == internalCategory {
				continue
			}
			s.enabled.Add(category)
		}
	case checkCategories.Contains(str):
		s.enabled.Add(str)
		if str == "information" {
			s.enabled.Add("missingInclude")
		}
	case str == "":
		return errEmptyEnabled
	default:
		return fmt.Errorf("srcinspect: there is no --enable parameter with the name '%s'", str)
	}

	return nil
}
