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

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/idn/libraries/idn/encbridge"
	"github.com/dolthub/idn/libraries/idn/idnflags"
	"github.com/dolthub/idn/libraries/idn/idnlib"
)

func newTestConverter(enc encbridge.Encoding) (*Converter, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return NewConverter(enc).WithLogger(logger), hook
}

func requireValid(t *testing.T, res Result[string], err error, expected string) {
	t.Helper()
	require.NoError(t, err)
	require.True(t, res.Valid, "warning: %v", res.Warning)
	assert.NoError(t, res.Warning)
	assert.Equal(t, expected, res.Value)
}

func requireWarned(t *testing.T, hook *test.Hook, res Result[string], err error) {
	t.Helper()
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.Error(t, res.Warning)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, res.Warning.Error())
}

func TestStringprep(t *testing.T) {
	conv, hook := newTestConverter(encbridge.UTF8)

	res, err := conv.Stringprep([]byte("Example"), []byte("Nameprep"), "")
	requireValid(t, res, err, "example")

	res, err = conv.Stringprep([]byte("\uff21\uff22\uff23"), []byte("Nameprep"), "STRINGPREP_FLAG_NO_NFKC|STRINGPREP_FLAG_NO_BIDI")
	requireValid(t, res, err, "\uff41\uff42\uff43")

	res, err = conv.Stringprep([]byte("abc"), []byte("NoSuchProfile"), "")
	requireWarned(t, hook, res, err)
	assert.Equal(t, "Error encountered performing stringprep: Unknown profile", hook.LastEntry().Message)
}

func TestNullInputs(t *testing.T) {
	conv, hook := newTestConverter(encbridge.UTF8)

	results := []func() (Result[string], error){
		func() (Result[string], error) { return conv.Stringprep(nil, []byte("Nameprep"), "") },
		func() (Result[string], error) { return conv.Stringprep([]byte("abc"), nil, "") },
		func() (Result[string], error) { return conv.PunycodeEncode(nil) },
		func() (Result[string], error) { return conv.PunycodeDecode(nil) },
		func() (Result[string], error) { return conv.NFKCNormalize(nil) },
		func() (Result[string], error) { return conv.IDNAEncode(nil, "") },
		func() (Result[string], error) { return conv.IDNADecode(nil, "") },
		func() (Result[string], error) { return conv.IDN2Lookup(nil, "") },
	}
	for _, f := range results {
		res, err := f()
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.NoError(t, res.Warning)
	}

	pr29, err := conv.PR29Check(nil)
	require.NoError(t, err)
	assert.False(t, pr29.Valid)

	assert.Empty(t, hook.AllEntries())
}

func TestUnknownFlagIsHard(t *testing.T) {
	conv, _ := newTestConverter(encbridge.UTF8)

	_, err := conv.Stringprep(nil, nil, "NOT_A_FLAG")
	require.Error(t, err)
	assert.True(t, idnflags.ErrUnknownConstant.Is(err))

	_, err = conv.IDNAEncode([]byte("example.com"), "IDNA_FLAG_ALLOW_UNASSIGNED|IDN2_FLAG_NFC_INPUT")
	require.Error(t, err)
	assert.True(t, idnflags.ErrUnknownConstant.Is(err))

	_, err = conv.IDN2Register([]byte("bücher"), nil, "IDNA_FLAG_NONE")
	require.Error(t, err)
	assert.True(t, idnflags.ErrUnknownConstant.Is(err))
}

func TestVersionMismatchIsHard(t *testing.T) {
	conv, _ := newTestConverter(encbridge.UTF8)
	conv = conv.WithRequiredVersion("999.0.0")

	_, err := conv.PunycodeEncode([]byte("abc"))
	require.Error(t, err)
	assert.True(t, idnlib.ErrVersionMismatch.Is(err))

	_, err = conv.PR29Check([]byte("abc"))
	assert.True(t, idnlib.ErrVersionMismatch.Is(err))

	_, err = conv.IDN2Register(nil, nil, "")
	assert.True(t, idnlib.ErrVersionMismatch.Is(err))
}

func TestPunycode(t *testing.T) {
	conv, hook := newTestConverter(encbridge.UTF8)

	res, err := conv.PunycodeEncode([]byte("bücher"))
	requireValid(t, res, err, "bcher-kva")

	res, err = conv.PunycodeEncode([]byte("abc"))
	requireValid(t, res, err, "abc-")

	res, err = conv.PunycodeDecode([]byte("bcher-kva"))
	requireValid(t, res, err, "bücher")

	res, err = conv.PunycodeDecode([]byte("bücher"))
	requireWarned(t, hook, res, err)
	assert.Equal(t, errNonASCII, res.Warning)

	res, err = conv.PunycodeDecode([]byte("abc-!"))
	requireWarned(t, hook, res, err)
	assert.True(t, idnlib.IsCode(res.Warning, idnlib.FamilyPunycode, idnlib.PunycodeBadInput))
	assert.Equal(t, "Error encountered performing punycode decode: Invalid input", hook.LastEntry().Message)
	assert.Equal(t, "punycode decode", hook.LastEntry().Data["operation"])
}

func TestPunycodeEncodeInvalidUTF8(t *testing.T) {
	conv, hook := newTestConverter(encbridge.SQLASCII)
	res, err := conv.PunycodeEncode([]byte{'a', 0xff})
	requireWarned(t, hook, res, err)
	assert.Equal(t, errUCS4Conversion, res.Warning)
}

func TestLatin1Database(t *testing.T) {
	conv, _ := newTestConverter(encbridge.MustParseEncoding("LATIN1"))
	latin1Bucher := []byte{'b', 0xfc, 'c', 'h', 'e', 'r'}

	res, err := conv.PunycodeEncode(latin1Bucher)
	requireValid(t, res, err, "bcher-kva")

	res, err = conv.PunycodeDecode([]byte("bcher-kva"))
	requireValid(t, res, err, string(latin1Bucher))

	res, err = conv.IDNAEncode(append(latin1Bucher, ".example"...), "")
	requireValid(t, res, err, "xn--bcher-kva.example")

	res, err = conv.IDNADecode([]byte("xn--bcher-kva.example"), "")
	requireValid(t, res, err, string(append(latin1Bucher, ".example"...)))

	_, err = conv.PunycodeDecode([]byte("wgv71a119e"))
	require.Error(t, err)
	assert.True(t, encbridge.ErrEncodingConversion.Is(err))
}

func TestNFKCNormalize(t *testing.T) {
	conv, _ := newTestConverter(encbridge.UTF8)
	res, err := conv.NFKCNormalize([]byte("\ufb01\u2460"))
	requireValid(t, res, err, "fi1")
}

func TestIDNA(t *testing.T) {
	conv, hook := newTestConverter(encbridge.UTF8)

	res, err := conv.IDNAEncode([]byte("bücher.example"), "")
	requireValid(t, res, err, "xn--bcher-kva.example")

	res, err = conv.IDNADecode([]byte("xn--bcher-kva.example"), "IDNA_FLAG_NONE")
	requireValid(t, res, err, "bücher.example")

	res, err = conv.IDNAEncode([]byte("a_b.example"), "IDNA_FLAG_USE_STD3_ASCII_RULES")
	requireWarned(t, hook, res, err)
}

func TestPR29Check(t *testing.T) {
	conv, hook := newTestConverter(encbridge.UTF8)

	res, err := conv.PR29Check([]byte("example"))
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.True(t, res.Value)

	res, err = conv.PR29Check([]byte("\u0b47\u0300\u0b3e"))
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.False(t, res.Value)
	assert.NoError(t, res.Warning)
	assert.Empty(t, hook.AllEntries())

	raw, rawHook := newTestConverter(encbridge.SQLASCII)
	res, err = raw.PR29Check([]byte{0xff})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.False(t, res.Value)
	assert.Error(t, res.Warning)
	require.NotNil(t, rawHook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, rawHook.LastEntry().Level)
}

func TestIDN2Lookup(t *testing.T) {
	conv, hook := newTestConverter(encbridge.UTF8)

	res, err := conv.IDN2Lookup([]byte("bücher.example"), "")
	requireValid(t, res, err, "xn--bcher-kva.example")

	res, err = conv.IDN2Lookup([]byte("faß.de"), "IDN2_FLAG_TRANSITIONAL")
	requireValid(t, res, err, "fass.de")

	res, err = conv.IDN2Lookup([]byte("faß.de"), "IDN2_FLAG_TRANSITIONAL|IDN2_FLAG_NONTRANSITIONAL")
	requireWarned(t, hook, res, err)
	assert.True(t, idnlib.IsCode(res.Warning, idnlib.FamilyIDN2, idnlib.IDN2InvalidFlags))
}

func TestIDN2Register(t *testing.T) {
	conv, hook := newTestConverter(encbridge.UTF8)

	res, err := conv.IDN2Register([]byte("bücher"), nil, "")
	requireValid(t, res, err, "xn--bcher-kva")

	res, err = conv.IDN2Register(nil, []byte("xn--bcher-kva"), "")
	requireValid(t, res, err, "xn--bcher-kva")

	res, err = conv.IDN2Register([]byte("bücher"), []byte("xn--bcher-kva"), "IDN2_FLAG_NFC_INPUT")
	requireValid(t, res, err, "xn--bcher-kva")

	res, err = conv.IDN2Register([]byte("bücher"), []byte("xn--mnchen-3ya"), "")
	requireWarned(t, hook, res, err)
	assert.True(t, idnlib.IsCode(res.Warning, idnlib.FamilyIDN2, idnlib.IDN2UALabelMismatch))

	res, err = conv.IDN2Register(nil, []byte("xn--bücher"), "")
	requireWarned(t, hook, res, err)
	assert.Equal(t, errNonASCII, res.Warning)

	_, err = conv.IDN2Register(nil, nil, "")
	require.Error(t, err)
	assert.True(t, ErrLabelsMissing.Is(err))
	assert.Equal(t, "Only one of ulabel, alabel may be NULL.", err.Error())

	res, err = conv.IDN2Register(nil, []byte("xn--bücher"), "NOT_A_FLAG")
	requireWarned(t, hook, res, err)
	assert.Equal(t, errNonASCII, res.Warning)

	_, err = conv.IDN2Register(nil, nil, "NOT_A_FLAG")
	require.Error(t, err)
	assert.True(t, ErrLabelsMissing.Is(err))
}

func TestConstants(t *testing.T) {
	conv, _ := newTestConverter(encbridge.UTF8)
	rows := conv.Constants()
	assert.Len(t, rows, len(idnflags.Default().Rows()))
	assert.Equal(t, encbridge.UTF8, conv.Encoding())

	custom := conv.WithResolver(idnflags.NewResolver([]idnflags.Constant{
		{Scope: idnflags.ScopeIDNA, Name: "ONLY", Value: idnlib.IDNAUseSTD3ASCIIRules},
	}))
	require.Len(t, custom.Constants(), 1)

	res, err := custom.IDNAEncode([]byte("example.com"), "only")
	requireValid(t, res, err, "example.com")
}
