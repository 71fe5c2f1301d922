// Copyright 2026 Dolthub, Inc.
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

package idnlib

import (
	"strconv"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/src-d/go-errors.v1"
)

// RequiredUnicodeVersion is the oldest Unicode table version the conversions are written against.
const RequiredUnicodeVersion = "11.0.0"

var ErrVersionMismatch = errors.NewKind("IDN library version mismatch: requires Unicode %s, IDNA tables are %s and normalization tables are %s")

// Version returns the Unicode version of the IDNA tables in use.
func Version() string {
	return idna.UnicodeVersion
}

// CheckVersion fails unless the IDNA and the normalization tables carry the same Unicode version and
// that version is at least |required|.
func CheckVersion(required string) error {
	return checkVersions(required, idna.UnicodeVersion, norm.Version)
}

func checkVersions(required, idnaVersion, normVersion string) error {
	if compareVersions(idnaVersion, normVersion) != 0 || compareVersions(idnaVersion, required) < 0 {
		return ErrVersionMismatch.New(required, idnaVersion, normVersion)
	}
	return nil
}

// compareVersions compares dotted numeric versions. Missing or malformed components count as zero.
func compareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < max(len(as), len(bs)); i++ {
		av, bv := versionPart(as, i), versionPart(bs, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

func versionPart(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}
	return v
}
