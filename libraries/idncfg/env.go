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
	"os"
	"strings"

	"github.com/pkg/errors"
)

// configValue names a string setting that may hold environment placeholders.
type configValue struct {
	key string
	val *string
}

func (cfg *YAMLConfig) values() []configValue {
	return []configValue{
		{"log_level", &cfg.LogLevelStr},
		{"log_format", &cfg.LogFormatStr},
		{"database_encoding", &cfg.DatabaseEncoding},
		{"required_unicode_version", &cfg.UnicodeVersion},
	}
}

// expandEnv replaces the placeholders in every setting. A setting that expands to nothing is left
// empty, so it takes its default afterwards.
func (cfg *YAMLConfig) expandEnv() error {
	for _, v := range cfg.values() {
		expanded, err := expandValue(*v.val)
		if err != nil {
			return errors.Wrapf(err, "invalid value for %s", v.key)
		}
		*v.val = expanded
	}
	return nil
}

// expandValue expands one setting. ${NAME} is the value of the environment variable NAME, which must
// be set. ${NAME:-fallback} is the variable's value when it is set and non-empty and the literal
// fallback otherwise. $$ is a single '$'. Any other '$' is kept.
func expandValue(s string) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}

	var sb strings.Builder
	for rest := s; rest != ""; {
		idx := strings.IndexByte(rest, '$')
		if idx < 0 {
			sb.WriteString(rest)
			break
		}
		sb.WriteString(rest[:idx])
		rest = rest[idx:]

		switch {
		case strings.HasPrefix(rest, "$$"):
			sb.WriteByte('$')
			rest = rest[2:]
		case strings.HasPrefix(rest, "${"):
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				return "", errors.Errorf("unterminated placeholder in '%s'", s)
			}
			val, err := lookupPlaceholder(rest[2:end])
			if err != nil {
				return "", err
			}
			sb.WriteString(val)
			rest = rest[end+1:]
		default:
			sb.WriteByte('$')
			rest = rest[1:]
		}
	}
	return sb.String(), nil
}

func lookupPlaceholder(expr string) (string, error) {
	name, fallback, hasFallback := strings.Cut(expr, ":-")
	if !validVarName(name) {
		return "", errors.Errorf("invalid environment variable name '%s'", name)
	}

	if val := os.Getenv(name); val != "" {
		return val, nil
	}
	if hasFallback {
		return fallback, nil
	}
	return "", errors.Errorf("environment variable %s is not set", name)
}

func validVarName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
