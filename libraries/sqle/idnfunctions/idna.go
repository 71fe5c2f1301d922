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
	IDNAEncodeFuncName = "idn_idna_encode"
	IDNADecodeFuncName = "idn_idna_decode"
)

type IDNAEncode struct {
	idnFunction
}

var _ sql.FunctionExpression = (*IDNAEncode)(nil)

// NewIDNAEncode creates a new IDNAEncode expression. It takes the domain name and an optional flag mask.
func NewIDNAEncode(conv *idnconv.Converter, args ...sql.Expression) (sql.Expression, error) {
	if err := checkArity(IDNAEncodeFuncName, len(args), 1, 2); err != nil {
		return nil, err
	}
	return &IDNAEncode{idnFunction{name: IDNAEncodeFuncName, args: args, conv: conv}}, nil
}

// Eval implements the Expression interface.
func (f *IDNAEncode) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	src, err := f.evalText(ctx, row, 0)
	if err != nil {
		return nil, err
	}
	flags, err := f.evalFlags(ctx, row, 1)
	if err != nil {
		return nil, err
	}
	res, err := f.converter(ctx).IDNAEncode(src, flags)
	return f.textResult(ctx, res, err)
}

// Description implements the FunctionExpression interface
func (f *IDNAEncode) Description() string {
	return "converts a domain name to its IDNA2003 ASCII form"
}

// Type implements the Expression interface.
func (f *IDNAEncode) Type() sql.Type {
	return types.LongText
}

// WithChildren implements the Expression interface.
func (f *IDNAEncode) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewIDNAEncode(f.conv, children...)
}

type IDNADecode struct {
	idnFunction
}

var _ sql.FunctionExpression = (*IDNADecode)(nil)

// NewIDNADecode creates a new IDNADecode expression. It takes the domain name and an optional flag mask.
func NewIDNADecode(conv *idnconv.Converter, args ...sql.Expression) (sql.Expression, error) {
	if err := checkArity(IDNADecodeFuncName, len(args), 1, 2); err != nil {
		return nil, err
	}
	return &IDNADecode{idnFunction{name: IDNADecodeFuncName, args: args, conv: conv}}, nil
}

// Eval implements the Expression interface.
func (f *IDNADecode) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	src, err := f.evalText(ctx, row, 0)
	if err != nil {
		return nil, err
	}
	flags, err := f.evalFlags(ctx, row, 1)
	if err != nil {
		return nil, err
	}
	res, err := f.converter(ctx).IDNADecode(src, flags)
	return f.textResult(ctx, res, err)
}

// Description implements the FunctionExpression interface
func (f *IDNADecode) Description() string {
	return "converts an IDNA2003 ASCII domain name to Unicode"
}

// Type implements the Expression interface.
func (f *IDNADecode) Type() sql.Type {
	return types.LongText
}

// WithChildren implements the Expression interface.
func (f *IDNADecode) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewIDNADecode(f.conv, children...)
}
