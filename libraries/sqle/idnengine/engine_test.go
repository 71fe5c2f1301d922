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

package idnengine

import (
	"context"
	"testing"

	"github.com/dolthub/go-mysql-server/sql"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/idn/libraries/idn/encbridge"
	"github.com/dolthub/idn/libraries/idn/idnconv"
	"github.com/dolthub/idn/libraries/idn/idnflags"
)

func newTestEngine(t *testing.T) (*SqlEngine, *sql.Context) {
	t.Helper()
	return newTestEngineWithEncoding(t, encbridge.UTF8)
}

func newTestEngineWithEncoding(t *testing.T, enc encbridge.Encoding) (*SqlEngine, *sql.Context) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.ErrorLevel)

	se, err := NewSqlEngine(context.Background(), idnconv.NewConverter(enc), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, se.Close())
	})
	return se, se.NewContext(context.Background())
}

func TestFunctionQueries(t *testing.T) {
	se, ctx := newTestEngine(t)

	tests := []struct {
		query    string
		expected string
	}{
		{"SELECT idn_punycode_encode('bücher')", "bcher-kva"},
		{"SELECT idn_punycode_decode('bcher-kva')", "bücher"},
		{"SELECT idn_idna_encode('bücher.example')", "xn--bcher-kva.example"},
		{"SELECT idn_idna_decode('xn--bcher-kva.example', 'IDNA_FLAG_NONE')", "bücher.example"},
		{"SELECT libidn2_lookup('faß.de')", "xn--fa-hia.de"},
		{"SELECT libidn2_lookup('faß.de', 'IDN2_FLAG_TRANSITIONAL')", "fass.de"},
		{"SELECT libidn2_register('bücher', NULL, NULL)", "xn--bcher-kva"},
		{"SELECT libidn_stringprep('Example', 'Nameprep')", "example"},
		{"SELECT idn_utf8_nfkc_normalize('\uff21')", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, rows, err := se.Query(ctx, tt.query)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.expected, rows[0][0])
		})
	}
}

func TestNullResults(t *testing.T) {
	se, ctx := newTestEngine(t)

	_, rows, err := se.Query(ctx, "SELECT idn_punycode_encode(NULL)")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0][0])
	assert.Empty(t, se.Warnings(ctx))

	_, rows, err = se.Query(ctx, "SELECT idn_punycode_decode('bücher')")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0][0])

	warnings := se.Warnings(ctx)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Non-ASCII data sent to idn_punycode_decode.", warnings[0].Message)
}

func TestQueryErrors(t *testing.T) {
	se, ctx := newTestEngine(t)

	_, _, err := se.Query(ctx, "SELECT idn_idna_encode('example.com', 'NOT_A_FLAG')")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_A_FLAG")

	_, _, err = se.Query(ctx, "SELECT libidn2_register(NULL, NULL, NULL)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only one of ulabel, alabel may be NULL.")

	_, _, err = se.Query(ctx, "SELECT idn_punycode_encode()")
	require.Error(t, err)
}

func TestConstantsTable(t *testing.T) {
	se, ctx := newTestEngine(t)

	cols, rows, err := se.Query(ctx, "SELECT name, value, description FROM idn_constants ORDER BY name")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "value", "description"}, cols)
	assert.Len(t, rows, len(idnflags.Default().Rows()))

	_, rows, err = se.Query(ctx, "SELECT value FROM idn_constants WHERE name = 'IDN2_FLAG_TRANSITIONAL'")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(4), rows[0][0])
}

func TestFunctionsOverTable(t *testing.T) {
	se, ctx := newTestEngine(t)

	_, rows, err := se.Query(ctx, "SELECT libidn2_lookup('faß.de', name) FROM idn_constants WHERE name IN ('IDN2_FLAG_TRANSITIONAL', 'IDN2_FLAG_NONTRANSITIONAL') ORDER BY name")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "xn--fa-hia.de", rows[0][0])
	assert.Equal(t, "fass.de", rows[1][0])
}

func TestLatin1Queries(t *testing.T) {
	se, ctx := newTestEngineWithEncoding(t, encbridge.MustParseEncoding("LATIN1"))

	tests := []struct {
		query    string
		expected string
	}{
		{"SELECT idn_punycode_encode('bücher')", "bcher-kva"},
		{"SELECT idn_punycode_decode('bcher-kva')", "bücher"},
		{"SELECT libidn2_lookup('bücher.de')", "xn--bcher-kva.de"},
		{"SELECT idn_idna_decode('xn--bcher-kva.example')", "bücher.example"},
		{"SELECT idn_utf8_nfkc_normalize('bücher')", "bücher"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, rows, err := se.Query(ctx, tt.query)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.expected, rows[0][0])
			assert.Empty(t, se.Warnings(ctx))
		})
	}

	_, _, err := se.Query(ctx, "SELECT idn_punycode_encode('日本語')")
	require.Error(t, err)
}
