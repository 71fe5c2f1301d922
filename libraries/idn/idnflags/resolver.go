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

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"gopkg.in/src-d/go-errors.v1"
)

var ErrUnknownConstant = errors.NewKind("Unknown constant name: %s")

// Separator splits the names in a flag mask string.
const Separator = "|"

// Row is the externally visible form of a Constant.
type Row struct {
	Name        string
	Value       int
	Description string
}

// Resolver answers flag name lookups against a table of constants sorted by scope and then by
// case-insensitive name. A Resolver is never modified after NewResolver returns, so any number of
// goroutines may use it concurrently.
type Resolver struct {
	constants []Constant
}

// NewResolver returns a Resolver over a sorted copy of |constants|.
func NewResolver(constants []Constant) *Resolver {
	sorted := slices.Clone(constants)
	slices.SortStableFunc(sorted, compareConstants)
	return &Resolver{constants: sorted}
}

// Default returns the Resolver for the built-in constants. It is built on first use.
var Default = sync.OnceValue(func() *Resolver {
	return NewResolver(builtinConstants)
})

func compareConstants(a, b Constant) int {
	if c := cmp.Compare(a.Scope, b.Scope); c != 0 {
		return c
	}
	return compareFold(a.Name, b.Name)
}

// compareFold compares two strings byte-wise after ASCII lower-casing.
func compareFold(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := lower(a[i]), lower(b[i])
		if ca != cb {
			return cmp.Compare(ca, cb)
		}
	}
	return cmp.Compare(len(a), len(b))
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Lookup returns the value of the constant |name| in |scope|. Names are matched ignoring ASCII case.
func (r *Resolver) Lookup(scope Scope, name string) (int, bool) {
	key := Constant{Scope: scope, Name: name}
	i, found := slices.BinarySearchFunc(r.constants, key, compareConstants)
	if !found {
		return 0, false
	}
	return r.constants[i].Value, true
}

// ParseMask ORs together the values of the |-separated constant names in |s|. Empty names are
// skipped, so the empty string yields 0. Names are not trimmed. The first name that does not resolve
// fails the whole parse with ErrUnknownConstant.
func (r *Resolver) ParseMask(scope Scope, s string) (int, error) {
	mask := 0
	for _, name := range strings.Split(s, Separator) {
		if name == "" {
			continue
		}

		v, ok := r.Lookup(scope, name)
		if !ok {
			return 0, ErrUnknownConstant.New(name)
		}
		mask |= v
	}
	return mask, nil
}

// Constants returns the table in sorted order.
func (r *Resolver) Constants() []Constant {
	return slices.Clone(r.constants)
}

// Rows returns the name, value and description of every constant, in sorted order.
func (r *Resolver) Rows() []Row {
	rows := make([]Row, len(r.constants))
	for i, c := range r.constants {
		rows[i] = Row{Name: c.Name, Value: c.Value, Description: c.Description}
	}
	return rows
}
