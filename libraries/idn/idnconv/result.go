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

package idnconv

// Result is the outcome of a conversion that did not fail hard. When Valid is false the result is
// absent (SQL NULL), and Warning holds the soft error that caused it, if any.
type Result[T any] struct {
	Value   T
	Valid   bool
	Warning error
}

func valid[T any](v T) Result[T] {
	return Result[T]{Value: v, Valid: true}
}

func null[T any]() Result[T] {
	return Result[T]{}
}

func warned[T any](err error) Result[T] {
	return Result[T]{Warning: err}
}
