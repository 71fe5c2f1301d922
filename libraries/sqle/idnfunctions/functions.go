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

package idnfunctions

import (
	"github.com/dolthub/go-mysql-server/sql"

	"github.com/dolthub/idn/libraries/idn/idnconv"
)

type newFunc func(conv *idnconv.Converter, args ...sql.Expression) (sql.Expression, error)

var constructors = []struct {
	name string
	fn   newFunc
}{
	{StringprepFuncName, NewStringprep},
	{PunycodeEncodeFuncName, NewPunycodeEncode},
	{PunycodeDecodeFuncName, NewPunycodeDecode},
	{NFKCNormalizeFuncName, NewNFKCNormalize},
	{IDNAEncodeFuncName, NewIDNAEncode},
	{IDNADecodeFuncName, NewIDNADecode},
	{PR29CheckFuncName, NewPR29Check},
	{IDN2LookupFuncName, NewIDN2Lookup},
	{IDN2RegisterFuncName, NewIDN2Register},
}

// Functions returns the IDN functions bound to |conv|, ready to register with an engine catalog.
func Functions(conv *idnconv.Converter) []sql.Function {
	fns := make([]sql.Function, len(constructors))
	for i, c := range constructors {
		fn := c.fn
		fns[i] = sql.FunctionN{
			Name: c.name,
			Fn: func(args ...sql.Expression) (sql.Expression, error) {
				return fn(conv, args...)
			},
		}
	}
	return fns
}
