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

// Stringprep flag bits.
const (
	StringprepNoNFKC       = 1
	StringprepNoBidi       = 2
	StringprepNoUnassigned = 4
)

// IDNA2003 flag bits.
const (
	IDNAAllowUnassigned   = 1
	IDNAUseSTD3ASCIIRules = 2
)

// IDNA2008 flag bits.
const (
	IDN2NFCInput          = 1
	IDN2ALabelRoundtrip   = 2
	IDN2Transitional      = 4
	IDN2Nontransitional   = 8
	IDN2UseSTD3ASCIIRules = 32
	IDN2NoTR46            = 64
)
