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
	"strings"

	"github.com/attic-labs/kingpin"
	"github.com/fatih/color"

	"github.com/dolthub/idn/libraries/errhand"
	"github.com/dolthub/idn/libraries/idn/idnconv"
	"github.com/dolthub/idn/libraries/idn/idnlib"
	"github.com/dolthub/idn/libraries/sqle/idnengine"
)

// optionalString is a flag value that remembers whether it was given, so an absent flag can stand
// for NULL.
type optionalString struct {
	value string
	set   bool
}

var _ kingpin.Value = (*optionalString)(nil)

func (o *optionalString) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

func (o *optionalString) String() string {
	return o.value
}

// bytes returns nil when the flag was not given.
func (o *optionalString) bytes(env *cliEnv) ([]byte, errhand.VerboseError) {
	if !o.set {
		return nil, nil
	}
	return env.toDatabase(o.value)
}

func addFlagsFlag(cmd *kingpin.CmdClause, example string) *string {
	return cmd.Flag("flags", fmt.Sprintf("'|' separated flag names, e.g. %s", example)).Short('f').String()
}

func hardError(err error) errhand.VerboseError {
	return errhand.BuildDError("error: %s", err.Error()).Build()
}

func printText(env *cliEnv, res idnconv.Result[string], err error) errhand.VerboseError {
	if err != nil {
		return hardError(err)
	}
	if !res.Valid {
		fmt.Fprintln(env.stdout, "NULL")
		return nil
	}

	out, verr := env.fromDatabase(res.Value)
	if verr != nil {
		return verr
	}
	fmt.Fprintln(env.stdout, out)
	return nil
}

// textCommand builds a command taking one text argument and an optional flag mask.
func textCommand(app *kingpin.Application, name, help, flagExample string, fn func(conv *idnconv.Converter, src []byte, flags string) (idnconv.Result[string], error)) (*kingpin.CmdClause, handler) {
	cmd := app.Command(name, help)
	input := cmd.Arg("input", "text to convert").Required().String()
	var flags *string
	if flagExample != "" {
		flags = addFlagsFlag(cmd, flagExample)
	}

	return cmd, func(ctx context.Context, env *cliEnv) errhand.VerboseError {
		src, verr := env.toDatabase(*input)
		if verr != nil {
			return verr
		}
		mask := ""
		if flags != nil {
			mask = *flags
		}
		res, err := fn(env.conv, src, mask)
		return printText(env, res, err)
	}
}

func stringprepCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("stringprep", "prepares a string with a stringprep profile")
	input := cmd.Arg("input", "text to prepare").Required().String()
	profile := cmd.Arg("profile", "profile name: "+strings.Join(idnlib.Profiles(), ", ")).Required().String()
	flags := addFlagsFlag(cmd, "STRINGPREP_FLAG_NO_BIDI|STRINGPREP_FLAG_NO_NFKC")

	return cmd, func(ctx context.Context, env *cliEnv) errhand.VerboseError {
		src, verr := env.toDatabase(*input)
		if verr != nil {
			return verr
		}
		prof, verr := env.toDatabase(*profile)
		if verr != nil {
			return verr
		}
		res, err := env.conv.Stringprep(src, prof, *flags)
		return printText(env, res, err)
	}
}

func punycodeEncodeCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return textCommand(app, "punycode-encode", "encodes a string with punycode, without an ACE prefix", "",
		func(conv *idnconv.Converter, src []byte, _ string) (idnconv.Result[string], error) {
			return conv.PunycodeEncode(src)
		})
}

func punycodeDecodeCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return textCommand(app, "punycode-decode", "decodes a punycode string", "",
		func(conv *idnconv.Converter, src []byte, _ string) (idnconv.Result[string], error) {
			return conv.PunycodeDecode(src)
		})
}

func nfkcCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return textCommand(app, "nfkc", "returns the NFKC normal form of a string", "",
		func(conv *idnconv.Converter, src []byte, _ string) (idnconv.Result[string], error) {
			return conv.NFKCNormalize(src)
		})
}

func idnaEncodeCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return textCommand(app, "idna-encode", "converts a domain name to its IDNA2003 ASCII form", "IDNA_FLAG_USE_STD3_ASCII_RULES",
		(*idnconv.Converter).IDNAEncode)
}

func idnaDecodeCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return textCommand(app, "idna-decode", "converts an IDNA2003 ASCII domain name to Unicode", "IDNA_FLAG_ALLOW_UNASSIGNED",
		(*idnconv.Converter).IDNADecode)
}

func lookupCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return textCommand(app, "lookup", "converts a domain name for lookup (IDNA2008)", "IDN2_FLAG_NFC_INPUT|IDN2_FLAG_TRANSITIONAL",
		(*idnconv.Converter).IDN2Lookup)
}

func pr29Cmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("pr29", "checks a string for sequences whose normalization is unstable under PRI #29")
	input := cmd.Arg("input", "text to check").Required().String()

	return cmd, func(ctx context.Context, env *cliEnv) errhand.VerboseError {
		src, verr := env.toDatabase(*input)
		if verr != nil {
			return verr
		}
		res, err := env.conv.PR29Check(src)
		if err != nil {
			return hardError(err)
		}
		if !res.Valid {
			fmt.Fprintln(env.stdout, "NULL")
		} else {
			fmt.Fprintln(env.stdout, res.Value)
		}
		return nil
	}
}

func registerCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("register", "converts a label for registration (IDNA2008); an omitted label is NULL")
	ulabel := &optionalString{}
	alabel := &optionalString{}
	cmd.Flag("ulabel", "the Unicode form of the label").Short('u').SetValue(ulabel)
	cmd.Flag("alabel", "the ACE form of the label").Short('a').SetValue(alabel)
	flags := addFlagsFlag(cmd, "IDN2_FLAG_NFC_INPUT")

	return cmd, func(ctx context.Context, env *cliEnv) errhand.VerboseError {
		u, verr := ulabel.bytes(env)
		if verr != nil {
			return verr
		}
		a, verr := alabel.bytes(env)
		if verr != nil {
			return verr
		}
		res, err := env.conv.IDN2Register(u, a, *flags)
		return printText(env, res, err)
	}
}

func constantsCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("constants", "lists the flag constants")
	prefix := cmd.Arg("prefix", "only list constants whose name starts with this prefix").String()

	return cmd, func(ctx context.Context, env *cliEnv) errhand.VerboseError {
		var rows [][]string
		for _, c := range env.conv.Constants() {
			if !strings.HasPrefix(strings.ToUpper(c.Name), strings.ToUpper(*prefix)) {
				continue
			}
			rows = append(rows, []string{c.Name, fmt.Sprint(c.Value), c.Description})
		}
		writeTable(env.stdout, []string{"name", "value", "description"}, rows)
		return nil
	}
}

func sqlCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("sql", "runs a query with the IDN functions available")
	query := cmd.Flag("query", "the query to run").Short('q').Required().String()

	return cmd, func(ctx context.Context, env *cliEnv) errhand.VerboseError {
		se, err := idnengine.NewSqlEngine(ctx, env.conv, env.logger)
		if verr := errhand.BuildIf(err, "error: failed to start the sql engine").Build(); verr != nil {
			return verr
		}
		defer se.Close()

		sqlCtx := se.NewContext(ctx)
		cols, rows, err := se.Query(sqlCtx, *query)
		if verr := errhand.BuildIf(err, "error: query failed").AddDetails(*query).Build(); verr != nil {
			return verr
		}

		cells := make([][]string, len(rows))
		for i, row := range rows {
			cells[i] = make([]string, len(row))
			for j, v := range row {
				cells[i][j] = formatValue(v)
			}
		}
		writeTable(env.stdout, cols, cells)

		for _, w := range se.Warnings(sqlCtx) {
			fmt.Fprintln(env.stderr, color.YellowString("Warning (Code %d): %s", w.Code, w.Message))
		}
		return nil
	}
}

func versionCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("version", "prints the Unicode version of the conversion tables")

	return cmd, func(ctx context.Context, env *cliEnv) errhand.VerboseError {
		fmt.Fprintf(env.stdout, "unicode %s\n", idnlib.Version())
		if err := idnlib.CheckVersion(env.required()); err != nil {
			return errhand.BuildDError("error: Unicode tables are too old").AddCause(err).Build()
		}
		return nil
	}
}
