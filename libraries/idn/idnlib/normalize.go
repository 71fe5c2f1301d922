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
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NFKCNormalize returns the NFKC normal form of the UTF-8 string |in|.
func NFKCNormalize(in []byte) ([]byte, error) {
	if !utf8.Valid(in) {
		return nil, newError(FamilyStringprep, StringprepNFKCFailed, nil)
	}
	return norm.NFKC.Bytes(in), nil
}

// PR29Check reports whether |in| is free of the problem sequences described in Unicode Public Review
// Issue #29: a starter X, one or more non-starters, then a starter Y where X and Y compose to a
// primary composite. Normalization of such sequences was not stable across Unicode versions. A string
// holding a problem sequence yields false and no error.
func PR29Check(in []byte) (bool, error) {
	if !utf8.Valid(in) {
		return false, newError(FamilyPR29, PR29StringprepError, nil)
	}

	rs := []rune(string(in))
	for i := 0; i < len(rs); i++ {
		if combiningClass(rs[i]) != 0 {
			continue
		}

		j := i + 1
		for j < len(rs) && combiningClass(rs[j]) != 0 {
			j++
		}
		if j == i+1 || j == len(rs) {
			continue
		}
		if composes(rs[i], rs[j]) {
			return false, nil
		}
		i = j - 1
	}
	return true, nil
}

func combiningClass(r rune) uint8 {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return norm.NFC.Properties(buf[:n]).CCC()
}

func composes(x, y rune) bool {
	pair := string([]rune{x, y})
	composed := norm.NFC.String(pair)
	return utf8.RuneCountInString(composed) == 1
}
