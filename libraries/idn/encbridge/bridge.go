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
	"bytes"
	goerrors "errors"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"gopkg.in/src-d/go-errors.v1"
)

var ErrEncodingConversion = errors.NewKind("could not convert from encoding %s to %s")

var (
	errInvalidUTF8 = goerrors.New("invalid UTF-8 byte sequence")
	errLossy       = goerrors.New("byte sequence has no equivalent in the target encoding")
	errNoCodec     = goerrors.New("encoding has no codec")
)

// minTranscodeCap is the smallest destination buffer tried by transcode.
const minTranscodeCap = 16

// CopyMode controls when ToCanonical copies a buffer that needs no transcoding.
type CopyMode uint8

const (
	// Terminate requires the result to be zero-terminated.
	Terminate CopyMode = 1 << iota
	// ForceCopy requires the result to be owned, even when no conversion is needed.
	ForceCopy
)

// Bridge converts text between a database encoding and UTF-8.
type Bridge struct {
	db Encoding
}

// NewBridge returns a Bridge for a database storing text in |db|.
func NewBridge(db Encoding) *Bridge {
	return &Bridge{db: db}
}

// DatabaseEncoding returns the encoding of the database side of the bridge.
func (b *Bridge) DatabaseEncoding() Encoding {
	return b.db
}

// Wrap tags |data| with the database encoding without copying it.
func (b *Bridge) Wrap(data []byte) *Buffer {
	return NewBuffer(data, b.db)
}

// ToCanonical converts |in| to UTF-8.
//
// When |in| is already UTF-8, or is raw bytes with no declared encoding, no conversion takes place and
// |in| itself is returned, unless |mode| asks for a terminated result and |in| is not terminated, or
// asks for a forced copy. In those cases, and whenever a conversion does happen, the result is a new,
// owned, zero-terminated buffer.
func (b *Bridge) ToCanonical(in *Buffer, mode CopyMode) (*Buffer, error) {
	if in.enc.passthrough() {
		if mode&ForceCopy != 0 || (mode&Terminate != 0 && !in.terminated) {
			return copyBuffer(in.data, UTF8), nil
		}
		return in, nil
	}

	if in.enc.codec == nil {
		return nil, ErrEncodingConversion.Wrap(errNoCodec, in.enc.name, UTF8.name)
	}

	out, err := transcode(in.enc.codec.NewDecoder(), in.data, UTF8, len(in.data)*2)
	if err != nil {
		return nil, ErrEncodingConversion.Wrap(err, in.enc.name, UTF8.name)
	}

	// decoders substitute U+FFFD for undecodable input; a faithful decoding re-encodes to the same bytes.
	reencoded, err := in.enc.codec.NewEncoder().Bytes(out.data)
	if err != nil || !bytes.Equal(reencoded, in.data) {
		out.Release()
		return nil, ErrEncodingConversion.Wrap(errLossy, in.enc.name, UTF8.name)
	}

	return out, nil
}

// FromCanonical converts the UTF-8 buffer |in| to the database encoding. When the database encoding is
// UTF-8 or raw, |in| itself is returned. Otherwise the result is a new owned buffer holding exactly
// the converted bytes.
func (b *Bridge) FromCanonical(in *Buffer) (*Buffer, error) {
	if b.db.passthrough() {
		return in, nil
	}

	if b.db.codec == nil {
		return nil, ErrEncodingConversion.Wrap(errNoCodec, UTF8.name, b.db.name)
	}

	if !utf8.Valid(in.data) {
		return nil, ErrEncodingConversion.Wrap(errInvalidUTF8, UTF8.name, b.db.name)
	}

	out, err := transcode(b.db.codec.NewEncoder(), in.data, b.db, len(in.data))
	if err != nil {
		return nil, ErrEncodingConversion.Wrap(err, UTF8.name, b.db.name)
	}

	return out, nil
}

// transcode runs |t| over all of |src| into a new owned buffer tagged |enc|, growing the destination
// until it fits.
func transcode(t transform.Transformer, src []byte, enc Encoding, sizeHint int) (*Buffer, error) {
	size := sizeHint
	if size < minTranscodeCap {
		size = minTranscodeCap
	}

	for {
		out := newOwnedBuffer(size, enc)
		t.Reset()

		nDst, _, err := t.Transform(out.data, src, true)
		if err == transform.ErrShortDst {
			out.Release()
			size *= 2
			continue
		} else if err != nil {
			out.Release()
			return nil, err
		}

		out.truncate(nDst)
		return out, nil
	}
}
