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
	"golang.org/x/text/unicode/norm"

	"github.com/dolthub/idn/libraries/idn/punycode"
)

const maxDomainLength = 255

func lookupProfile2008(flags int) (*idna.Profile, error) {
	transitional := flags&IDN2Transitional != 0
	nontransitional := flags&IDN2Nontransitional != 0
	if transitional && nontransitional {
		return nil, newError(FamilyIDN2, IDN2InvalidFlags, nil)
	}
	std3 := flags&IDN2UseSTD3ASCIIRules != 0

	if flags&IDN2NoTR46 != 0 {
		if transitional || nontransitional {
			return nil, newError(FamilyIDN2, IDN2InvalidFlags, nil)
		}
		return idna.New(
			idna.ValidateLabels(true),
			idna.BidiRule(),
			idna.StrictDomainName(std3),
		), nil
	}

	return idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.Transitional(transitional),
		idna.StrictDomainName(std3),
	), nil
}

// IDN2Lookup converts the UTF-8 domain name |in| for lookup as described in section 5 of RFC 5891.
// UTS #46 non-transitional mapping is applied unless |flags| select otherwise.
func IDN2Lookup(in []byte, flags int) ([]byte, error) {
	if !utf8.Valid(in) {
		return nil, newError(FamilyIDN2, IDN2EncodingError, nil)
	}

	p, err := lookupProfile2008(flags)
	if err != nil {
		return nil, err
	}

	src := string(in)
	if flags&IDN2NFCInput != 0 {
		src = norm.NFC.String(src)
	} else if flags&IDN2NoTR46 != 0 && !norm.NFC.IsNormalString(src) {
		return nil, newError(FamilyIDN2, IDN2NotNFC, nil)
	}

	out, err := p.ToASCII(src)
	if err != nil {
		return nil, newError(FamilyIDN2, IDN2Disallowed, err)
	}
	if err := checkDomainLength(out); err != nil {
		return nil, err
	}

	if flags&IDN2ALabelRoundtrip != 0 {
		u, err := p.ToUnicode(out)
		if err != nil {
			return nil, newError(FamilyIDN2, IDN2ALabelRoundtripFailed, err)
		}
		back, err := p.ToASCII(u)
		if err != nil || back != out {
			return nil, newError(FamilyIDN2, IDN2ALabelRoundtripFailed, err)
		}
	}

	return []byte(out), nil
}

func checkDomainLength(domain string) error {
	if len(strings.TrimSuffix(domain, ".")) > maxDomainLength {
		return newError(FamilyIDN2, IDN2TooBigDomain, nil)
	}
	if labelTooLong(domain) {
		return newError(FamilyIDN2, IDN2TooBigLabel, nil)
	}
	return nil
}

// IDN2Register converts a label for registration as described in section 4 of RFC 5891. Either
// |ulabel| or |alabel| may be nil, but not both. When both are given they must encode the same label.
// The result is the A-label in lower case, or the U-label itself when it is plain ASCII.
func IDN2Register(ulabel, alabel []byte, flags int) ([]byte, error) {
	if ulabel == nil && alabel == nil {
		return nil, newError(FamilyIDN2, IDN2InvalidALabel, nil)
	}

	var fromU string
	if ulabel != nil {
		var err error
		fromU, err = registerULabel(ulabel, flags)
		if err != nil {
			return nil, err
		}
	}

	if alabel == nil {
		return []byte(fromU), nil
	}

	fromA, err := verifyALabel(alabel)
	if err != nil {
		return nil, err
	}
	if ulabel != nil && fromU != fromA {
		return nil, newError(FamilyIDN2, IDN2UALabelMismatch, nil)
	}
	return []byte(fromA), nil
}

func registerULabel(ulabel []byte, flags int) (string, error) {
	if !utf8.Valid(ulabel) {
		return "", newError(FamilyIDN2, IDN2EncodingError, nil)
	}

	src := string(ulabel)
	if flags&IDN2NFCInput != 0 {
		src = norm.NFC.String(src)
	} else if !norm.NFC.IsNormalString(src) {
		return "", newError(FamilyIDN2, IDN2NotNFC, nil)
	}
	if strings.ContainsRune(src, '.') {
		return "", newError(FamilyIDN2, IDN2DotInLabel, nil)
	}

	out, err := idna.Registration.ToASCII(src)
	if err != nil {
		return "", newError(FamilyIDN2, IDN2Disallowed, err)
	}
	if len(out) > maxLabelLength {
		return "", newError(FamilyIDN2, IDN2TooBigLabel, nil)
	}
	return out, nil
}

// verifyALabel checks that |alabel| decodes to a label that registers back to the same A-label.
func verifyALabel(alabel []byte) (string, error) {
	lowered := strings.ToLower(string(alabel))
	if len(lowered) > maxLabelLength {
		return "", newError(FamilyIDN2, IDN2TooBigLabel, nil)
	}
	if !strings.HasPrefix(lowered, acePrefix) {
		return "", newError(FamilyIDN2, IDN2InvalidALabel, nil)
	}

	decoded, err := punycode.Decode(lowered[len(acePrefix):])
	if err != nil {
		return "", newError(FamilyIDN2, IDN2PunycodeBadInput, err)
	}

	again, err := idna.Registration.ToASCII(string(decoded))
	if err != nil {
		return "", newError(FamilyIDN2, IDN2InvalidALabel, err)
	}
	if again != lowered {
		return "", newError(FamilyIDN2, IDN2ALabelRoundtripFailed, nil)
	}
	return lowered, nil
}
