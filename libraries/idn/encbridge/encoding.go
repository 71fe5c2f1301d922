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

package encbridge

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"gopkg.in/src-d/go-errors.v1"
)

var ErrUnknownEncoding = errors.NewKind("unknown database encoding: %s")

type encodingKind uint8

const (
	kindConverted encodingKind = iota
	kindUTF8
	kindRaw
)

// Encoding identifies the character encoding a database stores its text values in.
type Encoding struct {
	name  string
	kind  encodingKind
	codec encoding.Encoding
}

var (
	// UTF8 is the canonical interchange encoding.
	UTF8 = Encoding{name: "UTF8", kind: kindUTF8}
	// SQLASCII is the undeclared, raw byte encoding. Bytes are passed through untouched in both directions.
	SQLASCII = Encoding{name: "SQL_ASCII", kind: kindRaw}
)

func converted(name string, codec encoding.Encoding) Encoding {
	return Encoding{name: name, kind: kindConverted, codec: codec}
}

var serverEncodings = []Encoding{
	UTF8,
	SQLASCII,
	converted("LATIN1", charmap.ISO8859_1),
	converted("LATIN2", charmap.ISO8859_2),
	converted("LATIN3", charmap.ISO8859_3),
	converted("LATIN4", charmap.ISO8859_4),
	converted("LATIN5", charmap.ISO8859_9),
	converted("LATIN6", charmap.ISO8859_10),
	converted("LATIN7", charmap.ISO8859_13),
	converted("LATIN8", charmap.ISO8859_14),
	converted("LATIN9", charmap.ISO8859_15),
	converted("LATIN10", charmap.ISO8859_16),
	converted("ISO_8859_5", charmap.ISO8859_5),
	converted("ISO_8859_6", charmap.ISO8859_6),
	converted("ISO_8859_7", charmap.ISO8859_7),
	converted("ISO_8859_8", charmap.ISO8859_8),
	converted("WIN866", charmap.CodePage866),
	converted("WIN874", charmap.Windows874),
	converted("WIN1250", charmap.Windows1250),
	converted("WIN1251", charmap.Windows1251),
	converted("WIN1252", charmap.Windows1252),
	converted("WIN1253", charmap.Windows1253),
	converted("WIN1254", charmap.Windows1254),
	converted("WIN1255", charmap.Windows1255),
	converted("WIN1256", charmap.Windows1256),
	converted("WIN1257", charmap.Windows1257),
	converted("WIN1258", charmap.Windows1258),
	converted("KOI8R", charmap.KOI8R),
	converted("KOI8U", charmap.KOI8U),
	converted("EUC_JP", japanese.EUCJP),
	converted("SJIS", japanese.ShiftJIS),
	converted("EUC_KR", korean.EUCKR),
	converted("UHC", korean.EUCKR),
	converted("EUC_CN", simplifiedchinese.GBK),
	converted("GBK", simplifiedchinese.GBK),
	converted("GB18030", simplifiedchinese.GB18030),
	converted("BIG5", traditionalchinese.Big5),
}

// aliases maps cleaned alternative spellings onto server encoding names.
var aliases = map[string]string{
	"unicode":     "UTF8",
	"iso88591":    "LATIN1",
	"iso88592":    "LATIN2",
	"iso88593":    "LATIN3",
	"iso88594":    "LATIN4",
	"iso88599":    "LATIN5",
	"iso885910":   "LATIN6",
	"iso885913":   "LATIN7",
	"iso885914":   "LATIN8",
	"iso885915":   "LATIN9",
	"iso885916":   "LATIN10",
	"alt":         "WIN866",
	"win":         "WIN1251",
	"windows1250": "WIN1250",
	"windows1251": "WIN1251",
	"windows1252": "WIN1252",
	"windows1253": "WIN1253",
	"windows1254": "WIN1254",
	"windows1255": "WIN1255",
	"windows1256": "WIN1256",
	"windows1257": "WIN1257",
	"windows1258": "WIN1258",
	"abc":         "WIN1258",
	"tcvn":        "WIN1258",
	"koi8":        "KOI8R",
	"mskanji":     "SJIS",
	"shiftjis":    "SJIS",
}

var byCleanName = func() map[string]Encoding {
	m := make(map[string]Encoding, len(serverEncodings)+len(aliases))
	for _, e := range serverEncodings {
		m[cleanName(e.name)] = e
	}
	for alias, name := range aliases {
		m[alias] = m[cleanName(name)]
	}
	return m
}()

// cleanName lower-cases |name| and drops everything that is not a letter or a digit, so that
// "ISO-8859-1", "iso_8859_1" and "ISO88591" are all spelled the same.
func cleanName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := lower(name[i])
		if ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// ParseEncoding resolves an encoding name. Server encoding names and their aliases are tried first,
// then the IANA character set registry.
func ParseEncoding(name string) (Encoding, error) {
	if e, ok := byCleanName[cleanName(name)]; ok {
		return e, nil
	}

	codec, err := ianaindex.IANA.Encoding(name)
	if err != nil || codec == nil {
		return Encoding{}, ErrUnknownEncoding.New(name)
	}
	if codec == unicode.UTF8 {
		return UTF8, nil
	}

	canonical, err := ianaindex.IANA.Name(codec)
	if err != nil {
		canonical = strings.ToUpper(name)
	}
	return converted(canonical, codec), nil
}

// MustParseEncoding is ParseEncoding for names known to be valid.
func MustParseEncoding(name string) Encoding {
	e, err := ParseEncoding(name)
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the canonical name of the encoding.
func (e Encoding) Name() string {
	return e.name
}

func (e Encoding) String() string {
	return e.name
}

// IsCanonical returns whether text in this encoding is already UTF-8.
func (e Encoding) IsCanonical() bool {
	return e.kind == kindUTF8
}

// IsRaw returns whether this is the undeclared byte encoding.
func (e Encoding) IsRaw() bool {
	return e.kind == kindRaw
}

// Equals returns whether two encodings are the same.
func (e Encoding) Equals(other Encoding) bool {
	return e.name == other.name
}

// passthrough encodings never need transcoding to or from UTF-8.
func (e Encoding) passthrough() bool {
	return e.kind == kindUTF8 || e.kind == kindRaw
}
