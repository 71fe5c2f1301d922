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

package idncfg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/idn/libraries/idn/encbridge"
)

func TestDefaults(t *testing.T) {
	for _, cfg := range []*YAMLConfig{DefaultConfig(), mustParse(t, "")} {
		assert.Equal(t, DefaultLogLevel, cfg.LogLevelStr)
		assert.Equal(t, string(DefaultLogFormat), cfg.LogFormatStr)
		assert.Equal(t, DefaultDatabaseEncoding, cfg.DatabaseEncoding)
		assert.Empty(t, cfg.UnicodeVersion)

		enc, err := cfg.Encoding()
		require.NoError(t, err)
		assert.True(t, enc.Equals(encbridge.UTF8))
	}
}

func TestNewYamlConfig(t *testing.T) {
	t.Setenv("IDN_TEST_ENCODING", "LATIN1")

	cfg := mustParse(t, `
log_level: DEBUG
log_format: json
database_encoding: ${IDN_TEST_ENCODING}
required_unicode_version: 9.0.0
`)
	assert.Equal(t, "debug", cfg.LogLevelStr)
	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)

	format, err := cfg.LogFormat()
	require.NoError(t, err)
	assert.Equal(t, LogFormat_JSON, format)

	enc, err := cfg.Encoding()
	require.NoError(t, err)
	assert.True(t, enc.Equals(encbridge.MustParseEncoding("LATIN1")))
	assert.Equal(t, "9.0.0", cfg.UnicodeVersion)
}

func TestNewYamlConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown field", "not_a_field: 1"},
		{"bad level", "log_level: loud"},
		{"bad format", "log_format: xml"},
		{"bad encoding", "database_encoding: NOPE"},
		{"unset env", "log_level: ${IDN_TEST_DEFINITELY_UNSET}"},
		{"bad yaml", "log_level: [1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewYamlConfig([]byte(test.data))
			assert.Error(t, err)
		})
	}
}

func TestYamlConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "idn.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0644))

	cfg, err := YamlConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevelStr)

	_, err = YamlConfigFromFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read file")

	require.NoError(t, os.WriteFile(path, []byte("log_format: xml\n"), 0644))
	_, err = YamlConfigFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to parse yaml file")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := mustParse(t, "log_format: json\nlog_level: warn\n")

	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestNewConverter(t *testing.T) {
	cfg := mustParse(t, "database_encoding: LATIN1\n")
	logger := logrus.New()

	conv, err := cfg.NewConverter(logger)
	require.NoError(t, err)
	assert.True(t, conv.Encoding().Equals(encbridge.MustParseEncoding("LATIN1")))

	cfg.UnicodeVersion = "99.0.0"
	conv, err = cfg.NewConverter(logger)
	require.NoError(t, err)
	_, err = conv.PunycodeEncode([]byte("abc"))
	assert.Error(t, err)
}

func mustParse(t *testing.T, data string) *YAMLConfig {
	t.Helper()
	cfg, err := NewYamlConfig([]byte(data))
	require.NoError(t, err)
	return cfg
}
