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
	"errors"
	"fmt"
)

// Family identifies the group of routines that reported an Error. Each family has its own code space.
type Family int

const (
	FamilyStringprep Family = iota + 1
	FamilyIDNA
	FamilyIDN2
	FamilyPunycode
	FamilyPR29
)

func (f Family) String() string {
	switch f {
	case FamilyStringprep:
		return "stringprep"
	case FamilyIDNA:
		return "idna"
	case FamilyIDN2:
		return "idn2"
	case FamilyPunycode:
		return "punycode"
	case FamilyPR29:
		return "pr29"
	default:
		return "unknown"
	}
}

// Code is a status code within a Family.
type Code int

const (
	StringprepContainsUnassigned     Code = 1
	StringprepContainsProhibited     Code = 2
	StringprepBidiBothLAndRAL        Code = 3
	StringprepBidiLeadTrailNotRAL    Code = 4
	StringprepBidiContainsProhibited Code = 5
	StringprepTooSmallBuffer         Code = 100
	StringprepProfileError           Code = 101
	StringprepFlagError              Code = 102
	StringprepUnknownProfile         Code = 103
	StringprepIconvError             Code = 104
	StringprepNFKCFailed             Code = 200
)

const (
	IDNAStringprepError      Code = 1
	IDNAPunycodeError        Code = 2
	IDNAContainsNonLDH       Code = 3
	IDNAContainsMinus        Code = 4
	IDNAInvalidLength        Code = 5
	IDNANoACEPrefix          Code = 6
	IDNARoundtripVerifyError Code = 7
	IDNAContainsACEPrefix    Code = 8
	IDNAIconvError           Code = 9
)

const (
	IDN2EncodingError         Code = -200
	IDN2NFC                   Code = -201
	IDN2PunycodeBadInput      Code = -202
	IDN2PunycodeBigOutput     Code = -203
	IDN2PunycodeOverflow      Code = -204
	IDN2TooBigDomain          Code = -205
	IDN2TooBigLabel           Code = -206
	IDN2InvalidALabel         Code = -207
	IDN2UALabelMismatch       Code = -208
	IDN2InvalidFlags          Code = -209
	IDN2NotNFC                Code = -300
	IDN2TwoHyphen             Code = -301
	IDN2HyphenStartEnd        Code = -302
	IDN2LeadingCombining      Code = -303
	IDN2Disallowed            Code = -304
	IDN2Unassigned            Code = -309
	IDN2Bidi                  Code = -310
	IDN2DotInLabel            Code = -311
	IDN2ALabelRoundtripFailed Code = -314
)

const (
	PunycodeBadInput  Code = 1
	PunycodeBigOutput Code = 2
	PunycodeOverflow  Code = 3
)

const (
	PR29Problem         Code = 1
	PR29StringprepError Code = 2
)

var descriptions = map[Family]map[Code]string{
	FamilyStringprep: {
		StringprepContainsUnassigned:     "Forbidden unassigned code points in input",
		StringprepContainsProhibited:     "Forbidden code points in input",
		StringprepBidiBothLAndRAL:        "Conflicting bidirectional properties in input",
		StringprepBidiLeadTrailNotRAL:    "Malformed bidirectional string",
		StringprepBidiContainsProhibited: "Prohibited bidirectional code points in input",
		StringprepTooSmallBuffer:         "Output would exceed the buffer space provided",
		StringprepProfileError:           "Error in stringprep profile definition",
		StringprepFlagError:              "Flag conflict with profile",
		StringprepUnknownProfile:         "Unknown profile",
		StringprepIconvError:             "Could not convert string in locale encoding",
		StringprepNFKCFailed:             "Unicode normalization failed (internal error)",
	},
	FamilyIDNA: {
		IDNAStringprepError:      "String preparation failed",
		IDNAPunycodeError:        "Punycode failed",
		IDNAContainsNonLDH:       "Non-digit/letter/hyphen in input",
		IDNAContainsMinus:        "Forbidden leading or trailing minus sign (`-')",
		IDNAInvalidLength:        "Output would be too large or too small",
		IDNANoACEPrefix:          "Input does not start with ACE prefix (`xn--')",
		IDNARoundtripVerifyError: "String not idempotent under ToASCII",
		IDNAContainsACEPrefix:    "Input already contain ACE prefix (`xn--')",
		IDNAIconvError:           "Could not convert string in locale encoding",
	},
	FamilyIDN2: {
		IDN2EncodingError:         "string encoding error",
		IDN2NFC:                   "string could not be NFC normalized",
		IDN2PunycodeBadInput:      "string contains invalid punycode data",
		IDN2PunycodeBigOutput:     "punycode encoded data will be too large",
		IDN2PunycodeOverflow:      "punycode conversion resulted in overflow",
		IDN2TooBigDomain:          "domain name longer than 255 characters",
		IDN2TooBigLabel:           "domain label longer than 63 characters",
		IDN2InvalidALabel:         "input A-label is not valid",
		IDN2UALabelMismatch:       "input A-label and U-label does not match",
		IDN2InvalidFlags:          "invalid combination of flags",
		IDN2NotNFC:                "string is not in Unicode NFC format",
		IDN2TwoHyphen:             "string contains forbidden two hyphens pattern",
		IDN2HyphenStartEnd:        "string start/ends with forbidden hyphen",
		IDN2LeadingCombining:      "string contains a forbidden leading combining character",
		IDN2Disallowed:            "string contains a disallowed character",
		IDN2Unassigned:            "string contains unassigned code point",
		IDN2Bidi:                  "string has forbidden bi-directional properties",
		IDN2DotInLabel:            "domain label has forbidden dot (TR46)",
		IDN2ALabelRoundtripFailed: "A-label roundtrip failed",
	},
	FamilyPunycode: {
		PunycodeBadInput:  "Invalid input",
		PunycodeBigOutput: "Output would exceed the buffer space provided",
		PunycodeOverflow:  "String size limit exceeded",
	},
	FamilyPR29: {
		PR29Problem:         "A problem sequence was encountered",
		PR29StringprepError: "The stringprep backend failed",
	},
}

// Strerror returns the description of |code| within |family|.
func Strerror(family Family, code Code) string {
	if code == 0 {
		return "Success"
	}
	if desc, ok := descriptions[family][code]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown %s error %d", family, code)
}

// Error is a failure reported by one of the conversion routines. These are failures on the input data,
// so callers usually report them and carry on rather than aborting.
type Error struct {
	Family Family
	Code   Code
	Cause  error
}

func newError(family Family, code Code, cause error) *Error {
	return &Error{Family: family, Code: code, Cause: cause}
}

// Error returns the library description for the code.
func (e *Error) Error() string {
	return Strerror(e.Family, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode returns whether |err| is an *Error carrying |family| and |code|.
func IsCode(err error, family Family, code Code) bool {
	var libErr *Error
	if !errors.As(err, &libErr) {
		return false
	}
	return libErr.Family == family && libErr.Code == code
}
