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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runIdn(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCommands(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{"punycode-encode", "bücher"}, "bcher-kva"},
		{[]string{"punycode-decode", "bcher-kva"}, "bücher"},
		{[]string{"nfkc", "\ufb01"}, "fi"},
		{[]string{"idna-encode", "bücher.example"}, "xn--bcher-kva.example"},
		{[]string{"idna-decode", "xn--bcher-kva.example"}, "bücher.example"},
		{[]string{"lookup", "faß.de"}, "xn--fa-hia.de"},
		{[]string{"lookup", "-f", "IDN2_FLAG_TRANSITIONAL", "faß.de"}, "fass.de"},
		{[]string{"stringprep", "Example", "Nameprep"}, "example"},
		{[]string{"stringprep", "--flags", "STRINGPREP_FLAG_NO_BIDI", "Example", "Nameprep"}, "example"},
		{[]string{"pr29", "example"}, "true"},
		{[]string{"pr29", "\u0b47\u0300\u0b3e"}, "false"},
		{[]string{"register", "--ulabel", "bücher"}, "xn--bcher-kva"},
		{[]string{"register", "--alabel", "xn--bcher-kva"}, "xn--bcher-kva"},
		{[]string{"--encoding", "LATIN1", "punycode-encode", "bücher"}, "bcher-kva"},
	}

	for _, test := range tests {
		t.Run(strings.Join(test.args, " "), func(t *testing.T) {
			code, stdout, stderr := runIdn(t, test.args...)
			require.Equal(t, 0, code, stderr)
			assert.Equal(t, test.expected+"\n", stdout)
		})
	}
}

func TestSoftErrorPrintsNull(t *testing.T) {
	code, stdout, stderr := runIdn(t, "punycode-decode", "bücher")
	assert.Equal(t, 0, code)
	assert.Equal(t, "NULL\n", stdout)
	assert.Contains(t, stderr, "Non-ASCII data sent to idn_punycode_decode.")

	code, stdout, stderr = runIdn(t, "--log-level", "error", "punycode-decode", "bücher")
	assert.Equal(t, 0, code)
	assert.Equal(t, "NULL\n", stdout)
	assert.Empty(t, stderr)
}

func TestHardErrors(t *testing.T) {
	code, stdout, stderr := runIdn(t, "idna-encode", "-f", "NOT_A_FLAG", "example.com")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "NOT_A_FLAG")

	code, _, stderr = runIdn(t, "register")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Only one of ulabel, alabel may be NULL.")

	code, _, stderr = runIdn(t, "--encoding", "LATIN1", "punycode-encode", "日本語")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "cannot be stored as")

	code, _, stderr = runIdn(t, "--encoding", "NOPE", "nfkc", "a")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid configuration")

	code, _, stderr = runIdn(t, "-v", "--encoding", "NOPE", "nfkc", "a")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "cause:")
}

func TestUsageErrors(t *testing.T) {
	code, _, stderr := runIdn(t)
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr)

	code, _, _ = runIdn(t, "punycode-encode")
	assert.Equal(t, 1, code)

	code, _, _ = runIdn(t, "not-a-command")
	assert.Equal(t, 1, code)

	code, stdout, _ := runIdn(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "punycode-encode")
}

func TestConstants(t *testing.T) {
	code, stdout, _ := runIdn(t, "constants", "IDN2_")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "IDN2_FLAG_TRANSITIONAL")
	assert.NotContains(t, stdout, "IDNA_FLAG_NONE")
	assert.True(t, strings.HasPrefix(stdout, "+"))
}

func TestSql(t *testing.T) {
	code, stdout, stderr := runIdn(t, "sql", "-q", "SELECT idn_punycode_encode('bücher') AS encoded, idn_punycode_decode('bücher') AS decoded")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "| encoded   | decoded |")
	assert.Contains(t, stdout, "| bcher-kva | NULL    |")
	assert.Contains(t, stderr, "Warning (Code 1105): Non-ASCII data sent to idn_punycode_decode.")

	code, _, stderr = runIdn(t, "sql", "-q", "SELECT nope(")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "query failed")
}

func TestSqlLatin1(t *testing.T) {
	code, stdout, stderr := runIdn(t, "--encoding", "LATIN1", "sql", "-q", "SELECT idn_punycode_encode('bücher') AS encoded, idn_punycode_decode('bcher-kva') AS decoded")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "| bcher-kva | bücher  |")

	code, _, stderr = runIdn(t, "--encoding", "LATIN1", "sql", "-q", "SELECT idn_punycode_encode('日本語')")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "query failed")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idn.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: error\ndatabase_encoding: LATIN1\n"), 0644))

	code, stdout, stderr := runIdn(t, "--config", path, "punycode-decode", "bücher")
	assert.Equal(t, 0, code)
	assert.Equal(t, "NULL\n", stdout)
	assert.Empty(t, stderr)

	code, _, stderr = runIdn(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "nfkc", "a")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to load configuration")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runIdn(t, "version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "unicode "))
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, stringWidth("hello"))
	assert.Equal(t, 6, stringWidth("日本語"))
	assert.Equal(t, 1, stringWidth("é"))
	assert.Equal(t, 3, stringWidth("ab\nabc"))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, []string{"a", "bb"}, [][]string{{"日本", "x"}})
	expected := "+------+----+\n" +
		"| a    | bb |\n" +
		"+------+----+\n" +
		"| 日本 | x  |\n" +
		"+------+----+\n"
	assert.Equal(t, expected, buf.String())
}
