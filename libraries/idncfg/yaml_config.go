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
	"io"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/dolthub/idn/libraries/idn/encbridge"
	"github.com/dolthub/idn/libraries/idn/idnconv"
)

type LogFormat string

const (
	LogFormat_Text LogFormat = "text"
	LogFormat_JSON LogFormat = "json"
)

const (
	DefaultLogLevel         = "info"
	DefaultLogFormat        = LogFormat_Text
	DefaultDatabaseEncoding = "UTF8"
)

// YAMLConfig is the configuration read from an idn yaml file. Fields left out of the file take their
// default tag values.
type YAMLConfig struct {
	LogLevelStr      string `yaml:"log_level,omitempty" default:"info"`
	LogFormatStr     string `yaml:"log_format,omitempty" default:"text"`
	DatabaseEncoding string `yaml:"database_encoding,omitempty" default:"UTF8"`
	// UnicodeVersion is the minimum Unicode version the IDNA and normalization tables must support.
	// Empty means the built-in requirement.
	UnicodeVersion string `yaml:"required_unicode_version,omitempty"`
}

// NewYamlConfig parses |configFileData|, expands environment placeholders in its values and fills in
// defaults for whatever is still empty.
func NewYamlConfig(configFileData []byte) (*YAMLConfig, error) {
	var cfg YAMLConfig
	if err := yaml.UnmarshalStrict(configFileData, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.expandEnv(); err != nil {
		return nil, err
	}
	if err := defaults.Set(&cfg); err != nil {
		return nil, err
	}

	cfg.LogLevelStr = strings.ToLower(cfg.LogLevelStr)
	cfg.LogFormatStr = strings.ToLower(cfg.LogFormatStr)
	return &cfg, cfg.Validate()
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *YAMLConfig {
	cfg := &YAMLConfig{}
	_ = defaults.Set(cfg)
	return cfg
}

// YamlConfigFromFile reads and parses the yaml file at |path|.
func YamlConfigFromFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read file '%s'", path)
	}

	cfg, err := NewYamlConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse yaml file '%s'", path)
	}

	return cfg, nil
}

// Validate checks that every value names something this program understands.
func (cfg *YAMLConfig) Validate() error {
	if _, err := cfg.LogLevel(); err != nil {
		return err
	}
	if _, err := cfg.LogFormat(); err != nil {
		return err
	}
	if _, err := cfg.Encoding(); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the parsed log level.
func (cfg *YAMLConfig) LogLevel() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(cfg.LogLevelStr)
	if err != nil {
		return 0, errors.Wrap(err, "invalid log_level")
	}
	return lvl, nil
}

// LogFormat returns the log output format.
func (cfg *YAMLConfig) LogFormat() (LogFormat, error) {
	switch f := LogFormat(cfg.LogFormatStr); f {
	case LogFormat_Text, LogFormat_JSON:
		return f, nil
	default:
		return "", errors.Errorf("invalid log_format '%s': must be '%s' or '%s'", cfg.LogFormatStr, LogFormat_Text, LogFormat_JSON)
	}
}

// Encoding returns the configured database encoding.
func (cfg *YAMLConfig) Encoding() (encbridge.Encoding, error) {
	return encbridge.ParseEncoding(cfg.DatabaseEncoding)
}

// NewLogger returns a logger writing to |w| at the configured level and format.
func (cfg *YAMLConfig) NewLogger(w io.Writer) (*logrus.Logger, error) {
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	format, err := cfg.LogFormat()
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	if format == LogFormat_JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}

// NewConverter returns a Converter for the configured encoding that logs to |logger|.
func (cfg *YAMLConfig) NewConverter(logger logrus.FieldLogger) (*idnconv.Converter, error) {
	enc, err := cfg.Encoding()
	if err != nil {
		return nil, err
	}

	conv := idnconv.NewConverter(enc).WithLogger(logger)
	if cfg.UnicodeVersion != "" {
		conv = conv.WithRequiredVersion(cfg.UnicodeVersion)
	}
	return conv, nil
}
