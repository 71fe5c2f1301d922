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
	"github.com/dolthub/go-mysql-server/sql/types"

	"github.com/dolthub/idn/libraries/idn/idnconv"
)

const StringprepFuncName = "libidn_stringprep"

type Stringprep struct {
	idnFunction
}

var _ sql.FunctionExpression = (*Stringprep)(nil)

// NewStringprep creates a new Stringprep expression. It takes the input, the profile name and an
// optional flag mask.
func NewStringprep(conv *idnconv.Converter, args ...sql.Expression) (sql.Expression, error) {
	if err := checkArity(StringprepFuncName, len(args), 2, 3); err != nil {
		return nil, err
	}
	return &Stringprep{idnFunction{name: StringprepFuncName, args: args, conv: conv}}, nil
}

// Eval implements the Expression interface.
func (f *Stringprep) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	src, err := f.evalText(ctx, row, 0)
	if err != nil {
		return nil, err
	}
	profile, err := f.evalText(ctx, row, 1)
	if err != nil {
		return nil, err
	}
	flags, err := f.evalFlags(ctx, row, 2)
	if err != nil {
		return nil, err
	}

	res, err := f.converter(ctx).Stringprep(src, profile, flags)
	return f.textResult(ctx, res, err)
}

// Description implements the FunctionExpression interface
func (f *Stringprep) Description() string {
	return "prepares a string with the named stringprep profile"
}

// Type implements the Expression interface.
func (f *Stringprep) Type() sql.Type {
	return types.LongText
}

// WithChildren implements the Expression interface.
func (f *Stringprep) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewStringprep(f.conv, children...)
}
