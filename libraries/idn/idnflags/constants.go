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

package idnflags

import "github.com/dolthub/idn/libraries/idn/idnlib"

// Scope groups the flag constants accepted by one family of conversions.
type Scope int

const (
	ScopeStringprep Scope = iota + 1
	ScopeIDNA
	ScopeIDNA2
	// ScopePunycode is reserved; punycode conversions take no flags.
	ScopePunycode
)

func (s Scope) String() string {
	switch s {
	case ScopeStringprep:
		return "stringprep"
	case ScopeIDNA:
		return "idna"
	case ScopeIDNA2:
		return "idna2"
	case ScopePunycode:
		return "punycode"
	default:
		return "unknown"
	}
}

// Constant is a symbolic flag name and the bit value it stands for.
type Constant struct {
	Scope       Scope
	Name        string
	Value       int
	Description string
}

const noFlagsDescription = "A value representing no flags supplied."

var builtinConstants = []Constant{
	{
		Scope:       ScopeStringprep,
		Name:        "STRINGPREP_FLAG_NONE",
		Value:       0,
		Description: noFlagsDescription,
	},
	{
		Scope: ScopeStringprep,
		Name:  "STRINGPREP_FLAG_NO_NFKC",
		Value: idnlib.StringprepNoNFKC,
		Description: "Disable the NFKC normalization, as well as selecting the non-NFKC case folding tables. " +
			"Usually the profile specifies BIDI and NFKC settings, and applications should not override it " +
			"unless in special situations.",
	},
	{
		Scope: ScopeStringprep,
		Name:  "STRINGPREP_FLAG_NO_BIDI",
		Value: idnlib.StringprepNoBidi,
		Description: "Disable the BIDI step. Usually the profile specifies BIDI and NFKC settings, and " +
			"applications should not override it unless in special situations.",
	},
	{
		Scope:       ScopeStringprep,
		Name:        "STRINGPREP_FLAG_NO_UNASSIGNED",
		Value:       idnlib.StringprepNoUnassigned,
		Description: "Make the library return with an error if string contains unassigned characters according to profile.",
	},
	{
		Scope:       ScopeIDNA,
		Name:        "IDNA_FLAG_NONE",
		Value:       0,
		Description: noFlagsDescription,
	},
	{
		Scope:       ScopeIDNA,
		Name:        "IDNA_FLAG_ALLOW_UNASSIGNED",
		Value:       idnlib.IDNAAllowUnassigned,
		Description: "Allow unassigned Unicode code points.",
	},
	{
		Scope:       ScopeIDNA,
		Name:        "IDNA_FLAG_USE_STD3_ASCII_RULES",
		Value:       idnlib.IDNAUseSTD3ASCIIRules,
		Description: "Check output to make sure it is a STD3 conforming host name.",
	},
	{
		Scope:       ScopeIDNA2,
		Name:        "IDN2_FLAG_NONE",
		Value:       0,
		Description: noFlagsDescription,
	},
	{
		Scope:       ScopeIDNA2,
		Name:        "IDN2_FLAG_NFC_INPUT",
		Value:       idnlib.IDN2NFCInput,
		Description: "Apply NFC normalization on input.",
	},
	{
		Scope:       ScopeIDNA2,
		Name:        "IDN2_FLAG_ALABEL_ROUNDTRIP",
		Value:       idnlib.IDN2ALabelRoundtrip,
		Description: "Apply additional round-trip conversion of A-label inputs.",
	},
	{
		Scope:       ScopeIDNA2,
		Name:        "IDN2_FLAG_TRANSITIONAL",
		Value:       idnlib.IDN2Transitional,
		Description: "Perform Unicode TR46 transitional processing.",
	},
	{
		Scope:       ScopeIDNA2,
		Name:        "IDN2_FLAG_NONTRANSITIONAL",
		Value:       idnlib.IDN2Nontransitional,
		Description: "Perform Unicode TR46 non-transitional processing.",
	},
	{
		Scope:       ScopeIDNA2,
		Name:        "IDN2_FLAG_USE_STD3_ASCII_RULES",
		Value:       idnlib.IDN2UseSTD3ASCIIRules,
		Description: "Use STD3 ASCII rules when mapping.",
	},
	{
		Scope:       ScopeIDNA2,
		Name:        "IDN2_FLAG_NO_TR46",
		Value:       idnlib.IDN2NoTR46,
		Description: "Disable Unicode TR46 processing.",
	},
}
