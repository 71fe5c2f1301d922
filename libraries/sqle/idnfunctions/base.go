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
	"fmt"
	"strconv"
	"strings"

	"github.com/dolthub/go-mysql-server/sql"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/idn/libraries/idn/encbridge"
	"github.com/dolthub/idn/libraries/idn/idnconv"
)

var ErrNonTextArgument = errors.NewKind("function '%s' expected a text argument but got %T")

// WarningCode is the code attached to session warnings raised for soft conversion failures.
const WarningCode = 1105

// idnFunction holds what every IDN function has in common: its name, its arguments and the converter
// doing the work.
type idnFunction struct {
	name string
	args []sql.Expression
	conv *idnconv.Converter
}

// Children implements the Expression interface.
func (f *idnFunction) Children() []sql.Expression {
	return f.args
}

// Resolved implements the Expression interface.
func (f *idnFunction) Resolved() bool {
	for _, arg := range f.args {
		if !arg.Resolved() {
			return false
		}
	}
	return true
}

// IsNullable implements the Expression interface.
func (f *idnFunction) IsNullable() bool {
	return true
}

// FunctionName implements the FunctionExpression interface
func (f *idnFunction) FunctionName() string {
	return f.name
}

// String implements the Stringer interface.
func (f *idnFunction) String() string {
	args := make([]string, len(f.args))
	for i, arg := range f.args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", strings.ToUpper(f.name), strings.Join(args, ", "))
}

func (f *idnFunction) converter(ctx *sql.Context) *idnconv.Converter {
	return f.conv.WithLogger(ctx.GetLogger())
}

// evalValue evaluates argument |i| as text exactly as the engine holds it. A NULL argument, or one
// past the end of the argument list, yields nil.
func (f *idnFunction) evalValue(ctx *sql.Context, row sql.Row, i int) ([]byte, bool, error) {
	if i >= len(f.args) {
		return nil, false, nil
	}

	val, err := f.args[i].Eval(ctx, row)
	if err != nil {
		return nil, false, err
	}

	switch v := val.(type) {
	case nil:
		return nil, false, nil
	case string:
		return []byte(v), true, nil
	case []byte:
		return v, false, nil
	default:
		return nil, false, ErrNonTextArgument.New(f.name, val)
	}
}

// sessionBridge returns the bridge between the engine's UTF-8 strings and the database encoding of the
// converter, or nil when strings can be handed over unchanged.
func (f *idnFunction) sessionBridge() *encbridge.Bridge {
	enc := f.conv.Encoding()
	if enc.IsCanonical() || enc.IsRaw() {
		return nil
	}
	return encbridge.NewBridge(enc)
}

// evalText evaluates argument |i| as text in the database encoding. Strings arrive from the engine as
// UTF-8 and are converted; binary values are taken to be in the database encoding already.
func (f *idnFunction) evalText(ctx *sql.Context, row sql.Row, i int) ([]byte, error) {
	b, isString, err := f.evalValue(ctx, row, i)
	if err != nil || !isString {
		return b, err
	}

	bridge := f.sessionBridge()
	if bridge == nil {
		return b, nil
	}

	buf, err := bridge.FromCanonical(encbridge.NewBuffer(b, encbridge.UTF8))
	if err != nil {
		return nil, err
	}
	defer buf.Release()
	return append([]byte{}, buf.Bytes()...), nil
}

// evalFlags evaluates argument |i| as a flag mask string. A NULL or absent argument means no flags.
func (f *idnFunction) evalFlags(ctx *sql.Context, row sql.Row, i int) (string, error) {
	b, _, err := f.evalValue(ctx, row, i)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// textResult turns a conversion result into the UTF-8 value returned to the engine, raising a session
// warning for soft failures.
func (f *idnFunction) textResult(ctx *sql.Context, res idnconv.Result[string], err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	warn(ctx, res.Warning)
	if !res.Valid {
		return nil, nil
	}

	bridge := f.sessionBridge()
	if bridge == nil {
		return res.Value, nil
	}

	buf, err := bridge.ToCanonical(bridge.Wrap([]byte(res.Value)), 0)
	if err != nil {
		return nil, err
	}
	defer buf.Release()
	return buf.String(), nil
}

func warn(ctx *sql.Context, err error) {
	if err != nil {
		ctx.Warn(WarningCode, "%s", err.Error())
	}
}

// checkArity validates an argument count against the counts a function accepts.
func checkArity(name string, n int, accepted ...int) error {
	for _, a := range accepted {
		if n == a {
			return nil
		}
	}

	counts := make([]string, len(accepted))
	for i, a := range accepted {
		counts[i] = strconv.Itoa(a)
	}
	return sql.ErrInvalidArgumentNumber.New(name, strings.Join(counts, " or "), n)
}
