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

// Package idnconv implements the IDN conversion entry points. Every operation brings its input to UTF-8
// through the encoding bridge, runs one idnlib routine, and brings the output back to the database
// encoding. Hard errors are returned as errors. Failures the library reports on the input data are
// logged as warnings and produce an absent result.
package idnconv

import (
	"errors"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/idn/libraries/idn/encbridge"
	"github.com/dolthub/idn/libraries/idn/idnflags"
	"github.com/dolthub/idn/libraries/idn/idnlib"
)

var ErrLabelsMissing = goerrors.NewKind("Only one of ulabel, alabel may be NULL.")

var (
	errNonASCII       = errors.New("Non-ASCII data sent to idn_punycode_decode.")
	errUCS4Conversion = errors.New("Error converting to from UTF-8 to UCS4.")
	errUTF8Conversion = errors.New("Unknown error converting from UCS4 to UTF-8.")
)

// punycodeExpansion sizes the initial punycode output buffer as a multiple of the UTF-8 input length.
// The buffer grows when this is not enough.
const punycodeExpansion = 3

// Converter runs the IDN conversion entry points against one database encoding. A Converter is
// immutable and safe for concurrent use.
type Converter struct {
	bridge          *encbridge.Bridge
	resolver        *idnflags.Resolver
	logger          logrus.FieldLogger
	requiredVersion string
}

// NewConverter returns a Converter for a database using |enc|, resolving flags with the default table.
func NewConverter(enc encbridge.Encoding) *Converter {
	return &Converter{
		bridge:          encbridge.NewBridge(enc),
		resolver:        idnflags.Default(),
		logger:          logrus.StandardLogger(),
		requiredVersion: idnlib.RequiredUnicodeVersion,
	}
}

// WithLogger returns a copy of the Converter that logs warnings to |logger|.
func (c *Converter) WithLogger(logger logrus.FieldLogger) *Converter {
	nc := *c
	nc.logger = logger
	return &nc
}

// WithResolver returns a copy of the Converter that resolves flag names with |resolver|.
func (c *Converter) WithResolver(resolver *idnflags.Resolver) *Converter {
	nc := *c
	nc.resolver = resolver
	return &nc
}

// WithRequiredVersion returns a copy of the Converter that requires Unicode tables of at least |version|.
func (c *Converter) WithRequiredVersion(version string) *Converter {
	nc := *c
	nc.requiredVersion = version
	return &nc
}

// Encoding returns the database encoding.
func (c *Converter) Encoding() encbridge.Encoding {
	return c.bridge.DatabaseEncoding()
}

// Constants returns the rows of the flag constant table.
func (c *Converter) Constants() []idnflags.Row {
	return c.resolver.Rows()
}

func (c *Converter) prepare(scope idnflags.Scope, flags string) (int, error) {
	if err := idnlib.CheckVersion(c.requiredVersion); err != nil {
		return 0, err
	}
	if scope == 0 {
		return 0, nil
	}
	return c.resolver.ParseMask(scope, flags)
}

func (c *Converter) warn(operation string, err error) {
	entry := c.logger.WithField("operation", operation)
	var libErr *idnlib.Error
	if errors.As(err, &libErr) && libErr.Cause != nil {
		entry = entry.WithField("cause", libErr.Cause.Error())
	}
	entry.Warnf("Error encountered performing %s: %s", operation, err.Error())
}

func softFail[T any](c *Converter, operation string, err error) Result[T] {
	c.warn(operation, err)
	return warned[T](err)
}

// toDatabase converts the UTF-8 library output |out| back to the database encoding.
func (c *Converter) toDatabase(out []byte) (Result[string], error) {
	buf, err := c.bridge.FromCanonical(encbridge.NewBuffer(out, encbridge.UTF8))
	if err != nil {
		return null[string](), err
	}
	defer buf.Release()
	return valid(buf.String()), nil
}

type utf8Routine func(in []byte) ([]byte, error)

// convert runs |fn| over |src| in the canonical encoding and converts its output back.
func (c *Converter) convert(operation string, src []byte, mode encbridge.CopyMode, fn utf8Routine) (Result[string], error) {
	in, err := c.bridge.ToCanonical(c.bridge.Wrap(src), mode)
	if err != nil {
		return null[string](), err
	}
	defer in.Release()

	out, err := fn(in.Bytes())
	if err != nil {
		return softFail[string](c, operation, err), nil
	}
	return c.toDatabase(out)
}

// Stringprep prepares |src| with the named stringprep profile. A nil |src| or |profile| yields an
// absent result.
func (c *Converter) Stringprep(src, profile []byte, flags string) (Result[string], error) {
	mask, err := c.prepare(idnflags.ScopeStringprep, flags)
	if err != nil {
		return null[string](), err
	}
	if src == nil || profile == nil {
		return null[string](), nil
	}

	name := string(profile)
	return c.convert("stringprep", src, encbridge.Terminate|encbridge.ForceCopy, func(in []byte) ([]byte, error) {
		return idnlib.Stringprep(in, name, mask)
	})
}

// PunycodeEncode encodes the whole of |src| with punycode, without an ACE prefix.
func (c *Converter) PunycodeEncode(src []byte) (Result[string], error) {
	if _, err := c.prepare(0, ""); err != nil {
		return null[string](), err
	}
	if src == nil {
		return null[string](), nil
	}

	in, err := c.bridge.ToCanonical(c.bridge.Wrap(src), 0)
	if err != nil {
		return null[string](), err
	}
	defer in.Release()

	if !utf8.Valid(in.Bytes()) {
		return softFail[string](c, "punycode encode", errUCS4Conversion), nil
	}

	dst := make([]byte, 0, in.Len()*punycodeExpansion)
	out, err := idnlib.PunycodeEncode(dst, []rune(in.String()))
	if err != nil {
		return softFail[string](c, "punycode encode", err), nil
	}
	return c.toDatabase(out)
}

// PunycodeDecode decodes the punycode string |src|. Input holding anything other than printable ASCII
// is rejected with a warning.
func (c *Converter) PunycodeDecode(src []byte) (Result[string], error) {
	if _, err := c.prepare(0, ""); err != nil {
		return null[string](), err
	}
	if src == nil {
		return null[string](), nil
	}

	if !encbridge.IsPrintableASCII(src) {
		return softFail[string](c, "punycode decode", errNonASCII), nil
	}

	rs, err := idnlib.PunycodeDecode(string(src))
	if err != nil {
		return softFail[string](c, "punycode decode", err), nil
	}

	out := make([]byte, 0, len(rs))
	for _, r := range rs {
		if !utf8.ValidRune(r) {
			return softFail[string](c, "punycode decode", errUTF8Conversion), nil
		}
		out = utf8.AppendRune(out, r)
	}
	return c.toDatabase(out)
}

// NFKCNormalize returns the NFKC normal form of |src|.
func (c *Converter) NFKCNormalize(src []byte) (Result[string], error) {
	if _, err := c.prepare(0, ""); err != nil {
		return null[string](), err
	}
	if src == nil {
		return null[string](), nil
	}
	return c.convert("NFKC normalization", src, encbridge.Terminate, idnlib.NFKCNormalize)
}

// IDNAEncode converts the domain name |src| to ASCII with IDNA2003 semantics.
func (c *Converter) IDNAEncode(src []byte, flags string) (Result[string], error) {
	mask, err := c.prepare(idnflags.ScopeIDNA, flags)
	if err != nil {
		return null[string](), err
	}
	if src == nil {
		return null[string](), nil
	}
	return c.convert("idna to ascii", src, encbridge.Terminate, func(in []byte) ([]byte, error) {
		return idnlib.IDNAToASCII(in, mask)
	})
}

// IDNADecode converts the domain name |src| to Unicode with IDNA2003 semantics.
func (c *Converter) IDNADecode(src []byte, flags string) (Result[string], error) {
	mask, err := c.prepare(idnflags.ScopeIDNA, flags)
	if err != nil {
		return null[string](), err
	}
	if src == nil {
		return null[string](), nil
	}
	return c.convert("idna to unicode", src, encbridge.Terminate, func(in []byte) ([]byte, error) {
		return idnlib.IDNAToUnicode(in, mask)
	})
}

// PR29Check reports whether |src| is free of PR29 problem sequences. A library failure is logged and
// reported as false.
func (c *Converter) PR29Check(src []byte) (Result[bool], error) {
	if _, err := c.prepare(0, ""); err != nil {
		return null[bool](), err
	}
	if src == nil {
		return null[bool](), nil
	}

	in, err := c.bridge.ToCanonical(c.bridge.Wrap(src), encbridge.Terminate)
	if err != nil {
		return null[bool](), err
	}
	defer in.Release()

	ok, err := idnlib.PR29Check(in.Bytes())
	if err != nil {
		c.warn("PR29 check", err)
		return Result[bool]{Value: false, Valid: true, Warning: err}, nil
	}
	return valid(ok), nil
}

// IDN2Lookup converts the domain name |src| for lookup with IDNA2008 semantics.
func (c *Converter) IDN2Lookup(src []byte, flags string) (Result[string], error) {
	mask, err := c.prepare(idnflags.ScopeIDNA2, flags)
	if err != nil {
		return null[string](), err
	}
	if src == nil {
		return null[string](), nil
	}
	return c.convert("idn2 lookup", src, encbridge.Terminate, func(in []byte) ([]byte, error) {
		return idnlib.IDN2Lookup(in, mask)
	})
}

// IDN2Register converts a label for registration with IDNA2008 semantics. Either label may be nil,
// but not both. |alabel| must be printable ASCII. Unlike the other operations, the labels are checked
// before |flags| is parsed.
func (c *Converter) IDN2Register(ulabel, alabel []byte, flags string) (Result[string], error) {
	if _, err := c.prepare(0, ""); err != nil {
		return null[string](), err
	}

	var u []byte
	if ulabel != nil {
		in, err := c.bridge.ToCanonical(c.bridge.Wrap(ulabel), encbridge.Terminate)
		if err != nil {
			return null[string](), err
		}
		defer in.Release()
		u = in.Bytes()
		if u == nil {
			u = []byte{}
		}
	}

	if alabel != nil && !encbridge.IsPrintableASCII(alabel) {
		return softFail[string](c, "idn2 register", errNonASCII), nil
	}
	if ulabel == nil && alabel == nil {
		return null[string](), ErrLabelsMissing.New()
	}

	mask, err := c.resolver.ParseMask(idnflags.ScopeIDNA2, flags)
	if err != nil {
		return null[string](), err
	}

	out, err := idnlib.IDN2Register(u, alabel, mask)
	if err != nil {
		return softFail[string](c, "idn2 register", err), nil
	}
	return c.toDatabase(out)
}
