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
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

const (
	acePrefix      = "xn--"
	maxLabelLength = 63
)

// idna2003Profile maps the IDNA2003 flag bits onto the UTS #46 transitional profile, which is the
// compatibility mode UTS #46 defines for IDNA2003 behavior.
func idna2003Profile(flags int) *idna.Profile {
	return idna.New(
		idna.MapForLookup(),
		idna.Transitional(true),
		idna.StrictDomainName(flags&IDNAUseSTD3ASCIIRules != 0),
		idna.ValidateLabels(flags&IDNAAllowUnassigned == 0),
	)
}

// IDNAToASCII converts the UTF-8 domain name |in| to its ASCII compatible encoding.
func IDNAToASCII(in []byte, flags int) ([]byte, error) {
	if !utf8.Valid(in) {
		return nil, newError(FamilyIDNA, IDNAIconvError, nil)
	}

	out, err := idna2003Profile(flags).ToASCII(string(in))
	if err != nil {
		return nil, newError(FamilyIDNA, IDNAStringprepError, err)
	}
	if labelTooLong(out) {
		return nil, newError(FamilyIDNA, IDNAInvalidLength, nil)
	}
	return []byte(out), nil
}

// IDNAToUnicode converts the domain name |in| to Unicode, decoding every ACE label.
func IDNAToUnicode(in []byte, flags int) ([]byte, error) {
	if !utf8.Valid(in) {
		return nil, newError(FamilyIDNA, IDNAIconvError, nil)
	}

	out, err := idna2003Profile(flags).ToUnicode(string(in))
	if err != nil {
		return nil, newError(FamilyIDNA, IDNAPunycodeError, err)
	}
	return []byte(out), nil
}

func labelTooLong(domain string) bool {
	for _, label := range strings.Split(domain, ".") {
		if len(label) > maxLabelLength {
			return true
		}
	}
	return false
}
