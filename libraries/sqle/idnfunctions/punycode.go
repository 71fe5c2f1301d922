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
	PunycodeEncodeFuncName = "idn_punycode_encode"
	PunycodeDecodeFuncName = "idn_punycode_decode"
)

type PunycodeEncode struct {
	idnFunction
}

var _ sql.FunctionExpression = (*PunycodeEncode)(nil)

// NewPunycodeEncode creates a new PunycodeEncode expression.
func NewPunycodeEncode(conv *idnconv.Converter, args ...sql.Expression) (sql.Expression, error) {
	if err := checkArity(PunycodeEncodeFuncName, len(args), 1); err != nil {
		return nil, err
	}
	return &PunycodeEncode{idnFunction{name: PunycodeEncodeFuncName, args: args, conv: conv}}, nil
}

// Eval implements the Expression interface.
func (f *PunycodeEncode) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	src, err := f.evalText(ctx, row, 0)
	if err != nil {
		return nil, err
	}
	res, err := f.converter(ctx).PunycodeEncode(src)
	return f.textResult(ctx, res, err)
}

// Description implements the FunctionExpression interface
func (f *PunycodeEncode) Description() string {
	return "encodes a string with punycode, without an ACE prefix"
}

// Type implements the Expression interface.
func (f *PunycodeEncode) Type() sql.Type {
	return types.LongText
}

// WithChildren implements the Expression interface.
func (f *PunycodeEncode) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), 1)
	}
	return NewPunycodeEncode(f.conv, children...)
}

type PunycodeDecode struct {
	idnFunction
}

var _ sql.FunctionExpression = (*PunycodeDecode)(nil)

// NewPunycodeDecode creates a new PunycodeDecode expression.
func NewPunycodeDecode(conv *idnconv.Converter, args ...sql.Expression) (sql.Expression, error) {
	if err := checkArity(PunycodeDecodeFuncName, len(args), 1); err != nil {
		return nil, err
	}
	return &PunycodeDecode{idnFunction{name: PunycodeDecodeFuncName, args: args, conv: conv}}, nil
}

// Eval implements the Expression interface.
func (f *PunycodeDecode) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	src, err := f.evalText(ctx, row, 0)
	if err != nil {
		return nil, err
	}
	res, err := f.converter(ctx).PunycodeDecode(src)
	return f.textResult(ctx, res, err)
}

// Description implements the FunctionExpression interface
func (f *PunycodeDecode) Description() string {
	return "decodes a punycode string"
}

// Type implements the Expression interface.
func (f *PunycodeDecode) Type() sql.Type {
	return types.LongText
}

// WithChildren implements the Expression interface.
func (f *PunycodeDecode) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), 1)
	}
	return NewPunycodeDecode(f.conv, children...)
}
