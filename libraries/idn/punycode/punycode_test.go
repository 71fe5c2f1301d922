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

package punycode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samples = []struct {
	decoded string
	encoded string
}{
	{"", ""},
	{"abc", "abc-"},
	{"bücher", "bcher-kva"},
	{"münchen", "mnchen-3ya"},
	{"日本語", "wgv71a119e"},
	{"3年B組金八先生", "3B-ww4c5e180e575a65lsy2b"},
	{"-> $1.00 <-", "-> $1.00 <--"},
}

func TestEncode(t *testing.T) {
	for _, s := range samples {
		t.Run(s.decoded, func(t *testing.T) {
			out, err := encode([]rune(s.decoded))
			require.NoError(t, err)
			assert.Equal(t, s.encoded, out)
		})
	}
}

func TestDecode(t *testing.T) {
	for _, s := range samples {
		t.Run(s.encoded, func(t *testing.T) {
			out, err := Decode(s.encoded)
			require.NoError(t, err)
			assert.Equal(t, s.decoded, string(out))
		})
	}
}

func TestDecodeUpperCaseDigits(t *testing.T) {
	out, err := Decode("BCHER-KVA")
	require.NoError(t, err)
	assert.Equal(t, "BüCHER", string(out))
}

func TestAppendEncodeKeepsPrefix(t *testing.T) {
	dst := make([]byte, 0, 32)
	dst = append(dst, "xn--"...)
	out, err := AppendEncode(dst, []rune("bücher"))
	require.NoError(t, err)
	assert.Equal(t, "xn--bcher-kva", string(out))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		in       string
		expected error
	}{
		{"ü-kva", ErrBadInput},
		{"abc-9", ErrBadInput},
		{"abc-!", ErrBadInput},
		{"9999999999999", ErrOverflow},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			_, err := Decode(test.in)
			assert.Equal(t, test.expected, err)
		})
	}
}

func TestEncodeRejectsInvalidRune(t *testing.T) {
	_, err := encode([]rune{'a', 0x110000})
	assert.Equal(t, ErrBadInput, err)
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"παράδειγμα",
		"пример",
		"مثال",
		"उदाहरण",
		"例え",
		"a-b-c-ü",
		"😀",
	}
	for _, in := range inputs {
		enc, err := encode([]rune(in))
		require.NoError(t, err)
		dec, err := Decode(enc)
		require.NoError(t, err)
		assert.Equal(t, in, string(dec), enc)
	}
}
