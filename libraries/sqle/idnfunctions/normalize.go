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
	NFKCNormalizeFuncName = "idn_utf8_nfkc_normalize"
	PR29CheckFuncName     = "idn_pr29_check"
)

type NFKCNormalize struct {
	idnFunction
}

var _ sql.FunctionExpression = (*NFKCNormalize)(nil)

// NewNFKCNormalize creates a new NFKCNormalize expression.
func NewNFKCNormalize(conv *idnconv.Converter, args ...sql.Expression) (sql.Expression, error) {
	if err := checkArity(NFKCNormalizeFuncName, len(args), 1); err != nil {
		return nil, err
	}
	return &NFKCNormalize{idnFunction{name: NFKCNormalizeFuncName, args: args, conv: conv}}, nil
}

// Eval implements the Expression interface.
func (f *NFKCNormalize) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	src, err := f.evalText(ctx, row, 0)
	if err != nil {
		return nil, err
	}
	res, err := f.converter(ctx).NFKCNormalize(src)
	return f.textResult(ctx, res, err)
}

// Description implements the FunctionExpression interface
func (f *NFKCNormalize) Description() string {
	return "returns the NFKC normal form of a string"
}

// Type implements the Expression interface.
func (f *NFKCNormalize) Type() sql.Type {
	return types.LongText
}

// WithChildren implements the Expression interface.
func (f *NFKCNormalize) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), 1)
	}
	return NewNFKCNormalize(f.conv, children...)
}

type PR29Check struct {
	idnFunction
}

var _ sql.FunctionExpression = (*PR29Check)(nil)

// NewPR29Check creates a new PR29Check expression.
func NewPR29Check(conv *idnconv.Converter, args ...sql.Expression) (sql.Expression, error) {
	if err := checkArity(PR29CheckFuncName, len(args), 1); err != nil {
		return nil, err
	}
	return &PR29Check{idnFunction{name: PR29CheckFuncName, args: args, conv: conv}}, nil
}

// Eval implements the Expression interface.
func (f *PR29Check) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	src, err := f.evalText(ctx, row, 0)
	if err != nil {
		return nil, err
	}

	res, err := f.converter(ctx).PR29Check(src)
	if err != nil {
		return nil, err
	}
	warn(ctx, res.Warning)
	if !res.Valid {
		return nil, nil
	}
	return res.Value, nil
}

// Description implements the FunctionExpression interface
func (f *PR29Check) Description() string {
	return "returns false if a string holds a sequence whose normalization changed under Unicode PRI #29"
}

// Type implements the Expression interface.
func (f *PR29Check) Type() sql.Type {
	return types.Boolean
}

// WithChildren implements the Expression interface.
func (f *PR29Check) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), 1)
	}
	return NewPR29Check(f.conv, children...)
}
