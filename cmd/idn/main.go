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
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/attic-labs/kingpin"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/idn/libraries/errhand"
	"github.com/dolthub/idn/libraries/idn/encbridge"
	"github.com/dolthub/idn/libraries/idn/idnconv"
	"github.com/dolthub/idn/libraries/idn/idnlib"
	"github.com/dolthub/idn/libraries/idncfg"
)

const usage = `idn converts internationalized domain names and strings with the same routines the IDN SQL
functions use. Text arguments are treated as values stored in the configured database encoding.`

// cliEnv is everything a command handler needs once the global flags are applied.
type cliEnv struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *idncfg.YAMLConfig
	logger *logrus.Logger
	conv   *idnconv.Converter
	bridge *encbridge.Bridge
}

type handler func(ctx context.Context, env *cliEnv) errhand.VerboseError

type kingpinCommand func(app *kingpin.Application) (*kingpin.CmdClause, handler)

var kingpinCommands = []kingpinCommand{
	stringprepCmd,
	punycodeEncodeCmd,
	punycodeDecodeCmd,
	nfkcCmd,
	idnaEncodeCmd,
	idnaDecodeCmd,
	pr29Cmd,
	lookupCmd,
	registerCmd,
	constantsCmd,
	sqlCmd,
	versionCmd,
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	applyColor(stdout)

	exited, exitCode := false, 0
	app := kingpin.New("idn", usage)
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(func(code int) {
		exited, exitCode = true, code
	})
	app.HelpFlag.Short('h')

	// global flags
	configPath := app.Flag("config", "yaml configuration file").Short('c').String()
	encodingName := app.Flag("encoding", "database encoding, overriding the configuration").String()
	logLevel := app.Flag("log-level", "log level, overriding the configuration").String()
	verbose := app.Flag("verbose", "print error details and causes").Short('v').Bool()

	handlers := make(map[string]handler, len(kingpinCommands))
	for _, cmdFunction := range kingpinCommands {
		command, h := cmdFunction(app)
		handlers[command.FullCommand()] = h
	}

	input, err := app.Parse(args)
	if exited {
		return exitCode
	}
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("idn: error: %s, try --help", err.Error()))
		return 1
	}

	env, verr := newCliEnv(*configPath, *encodingName, *logLevel, stdout, stderr)
	if verr == nil {
		h := handlers[strings.Split(input, " ")[0]]
		verr = errhand.PanicToVError("idn: unexpected failure", func() errhand.VerboseError {
			return h(ctx, env)
		})
	}

	if verr != nil {
		if *verbose {
			fmt.Fprintln(stderr, verr.Verbose())
		} else {
			fmt.Fprintln(stderr, verr.Error())
		}
		return 1
	}
	return 0
}

func applyColor(w io.Writer) {
	f, ok := w.(*os.File)
	color.NoColor = !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func newCliEnv(configPath, encodingName, logLevel string, stdout, stderr io.Writer) (*cliEnv, errhand.VerboseError) {
	cfg := idncfg.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = idncfg.YamlConfigFromFile(configPath)
		if err != nil {
			return nil, errhand.BuildDError("error: failed to load configuration").AddCause(err).Build()
		}
	}

	if encodingName != "" {
		cfg.DatabaseEncoding = encodingName
	}
	if logLevel != "" {
		cfg.LogLevelStr = strings.ToLower(logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errhand.BuildDError("error: invalid configuration").AddCause(err).Build()
	}

	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		return nil, errhand.BuildDError("error: invalid configuration").AddCause(err).Build()
	}
	conv, err := cfg.NewConverter(logger)
	if err != nil {
		return nil, errhand.BuildDError("error: invalid configuration").AddCause(err).Build()
	}

	return &cliEnv{
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		logger: logger,
		conv:   conv,
		bridge: encbridge.NewBridge(conv.Encoding()),
	}, nil
}

// toDatabase converts a command line argument to the bytes the database would hold for it.
func (env *cliEnv) toDatabase(arg string) ([]byte, errhand.VerboseError) {
	buf, err := env.bridge.FromCanonical(encbridge.NewBuffer([]byte(arg), encbridge.UTF8))
	if err != nil {
		return nil, errhand.BuildDError("error: '%s' cannot be stored as %s", arg, env.bridge.DatabaseEncoding()).AddCause(err).Build()
	}
	defer buf.Release()
	return append([]byte{}, buf.Bytes()...), nil
}

// fromDatabase converts a value in the database encoding to UTF-8 for display.
func (env *cliEnv) fromDatabase(s string) (string, errhand.VerboseError) {
	buf, err := env.bridge.ToCanonical(env.bridge.Wrap([]byte(s)), 0)
	if err != nil {
		return "", errhand.BuildDError("error: result cannot be displayed").AddCause(err).Build()
	}
	defer buf.Release()
	return buf.String(), nil
}

// required returns the minimum Unicode version the conversion tables must support.
func (env *cliEnv) required() string {
	if env.cfg.UnicodeVersion != "" {
		return env.cfg.UnicodeVersion
	}
	return idnlib.RequiredUnicodeVersion
}
