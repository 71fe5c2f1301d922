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
	"github.com/dolthub/idn/libraries/idn/punycode"
)

// PunycodeEncode appends the punycode form of |in| to |dst|.
func PunycodeEncode(dst []byte, in []rune) ([]byte, error) {
	out, err := punycode.AppendEncode(dst, in)
	if err != nil {
		return nil, punycodeError(err)
	}
	return out, nil
}

// PunycodeDecode decodes the punycode string |in| into code points.
func PunycodeDecode(in string) ([]rune, error) {
	out, err := punycode.Decode(in)
	if err != nil {
		return nil, punycodeError(err)
	}
	return out, nil
}

func punycodeError(err error) error {
	if err == punycode.ErrOverflow {
		return newError(FamilyPunycode, PunycodeOverflow, err)
	}
	return newError(FamilyPunycode, PunycodeBadInput, err)
}
