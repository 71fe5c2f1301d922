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

const (
	IDN2LookupFuncName   = "libidn2_lookup"
	IDN2RegisterFuncName = "libidn2_register"
)

type IDN2Lookup struct {
	idnFunction
}

var _ sql.FunctionExpression = (*IDN2Lookup)(nil)

// NewIDN2Lookup creates a new IDN2Lookup expression. It takes the domain name and an optional flag mask.
func NewIDN2Lookup(conv *idnconv.Converter, args ...sql.Expression) (sql.Expression, error) {
	if err := checkArity(IDN2LookupFuncName, len(args), 1, 2); err != nil {
		return nil, err
	}
	return &IDN2Lookup{idnFunction{name: IDN2LookupFuncName, args: args, conv: conv}}, nil
}

// Eval implements the Expression interface.
func (f *IDN2Lookup) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	src, err := f.evalText(ctx, row, 0)
	if err != nil {
		return nil, err
	}
	flags, err := f.evalFlags(ctx, row, 1)
	if err != nil {
		return nil, err
	}
	res, err := f.converter(ctx).IDN2Lookup(src, flags)
	return f.textResult(ctx, res, err)
}

// Description implements the FunctionExpression interface
func (f *IDN2Lookup) Description() string {
	return "converts a domain name for lookup as described in section 5 of RFC 5891"
}

// Type implements the Expression interface.
func (f *IDN2Lookup) Type() sql.Type {
	return types.LongText
}

// WithChildren implements the Expression interface.
func (f *IDN2Lookup) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewIDN2Lookup(f.conv, children...)
}

type IDN2Register struct {
	idnFunction
}

var _ sql.FunctionExpression = (*IDN2Register)(nil)

// NewIDN2Register creates a new IDN2Register expression. It takes the U-label, the A-label and a flag
// mask, any of which may be NULL.
func NewIDN2Register(conv *idnconv.Converter, args ...sql.Expression) (sql.Expression, error) {
	if err := checkArity(IDN2RegisterFuncName, len(args), 3); err != nil {
		return nil, err
	}
	return &IDN2Register{idnFunction{name: IDN2RegisterFuncName, args: args, conv: conv}}, nil
}

// Eval implements the Expression interface.
func (f *IDN2Register) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	ulabel, err := f.evalText(ctx, row, 0)
	if err != nil {
		return nil, err
	}
	alabel, err := f.evalText(ctx, row, 1)
	if err != nil {
		return nil, err
	}
	flags, err := f.evalFlags(ctx, row, 2)
	if err != nil {
		return nil, err
	}
	res, err := f.converter(ctx).IDN2Register(ulabel, alabel, flags)
	return f.textResult(ctx, res, err)
}

// Description implements the FunctionExpression interface
func (f *IDN2Register) Description() string {
	return "converts a label for registration as described in section 4 of RFC 5891"
}

// Type implements the Expression interface.
func (f *IDN2Register) Type() sql.Type {
	return types.LongText
}

// WithChildren implements the Expression interface.
func (f *IDN2Register) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewIDN2Register(f.conv, children...)
}
