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

package idnlib

import (
	"errors"
	"maps"
	"slices"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/secure/bidirule"
	"golang.org/x/text/secure/precis"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

type profileClass int

const (
	classFreeform profileClass = iota
	classIdentifier
)

// profileDef describes a stringprep profile in terms of the PRECIS framework.
type profileDef struct {
	class        profileClass
	foldCase     bool
	nfkc         bool
	bidi         bool
	mapToNothing bool
	mapSpaces    bool
	foldWidth    bool
}

var profileDefs = map[string]profileDef{
	"Nameprep":     {foldCase: true, nfkc: true, bidi: true, mapToNothing: true},
	"KRBprep":      {foldCase: true, nfkc: true, bidi: true, mapToNothing: true},
	"Nodeprep":     {class: classIdentifier, foldCase: true, nfkc: true, bidi: true, mapToNothing: true, foldWidth: true},
	"Resourceprep": {nfkc: true, bidi: true, mapToNothing: true},
	"SASLprep":     {nfkc: true, bidi: true, mapToNothing: true, mapSpaces: true},
	"ISCSIprep":    {foldCase: true, nfkc: true, bidi: true, mapToNothing: true},
	"iSCSI":        {foldCase: true, nfkc: true, bidi: true, mapToNothing: true},
	"plain":        {},
	"trace":        {},
}

// Profiles returns the names accepted by Stringprep, sorted.
func Profiles() []string {
	return slices.Sorted(maps.Keys(profileDefs))
}

// mappedToNothing is the set of code points the stringprep profiles delete outright.
var mappedToNothing = runes.Predicate(func(r rune) bool {
	switch {
	case r == 0x00ad, r == 0x034f, r == 0x1806, r == 0x2060, r == 0xfeff:
		return true
	case 0x180b <= r && r <= 0x180d:
		return true
	case 0x200b <= r && r <= 0x200d:
		return true
	case 0xfe00 <= r && r <= 0xfe0f:
		return true
	}
	return false
})

func (d profileDef) build(flags int) *precis.Profile {
	var opts []precis.Option

	var mappings []func() transform.Transformer
	if d.foldWidth {
		mappings = append(mappings, func() transform.Transformer { return width.Fold })
	}
	if d.mapToNothing {
		mappings = append(mappings, func() transform.Transformer { return runes.Remove(mappedToNothing) })
	}
	if d.mapSpaces {
		mappings = append(mappings, func() transform.Transformer {
			return runes.Map(func(r rune) rune {
				if r != ' ' && unicode.Is(unicode.Zs, r) {
					return ' '
				}
				return r
			})
		})
	}
	if len(mappings) > 0 {
		opts = append(opts, precis.AdditionalMapping(mappings...))
	}

	if d.foldCase {
		opts = append(opts, precis.FoldCase())
	}
	if d.nfkc && flags&StringprepNoNFKC == 0 {
		opts = append(opts, precis.Norm(norm.NFKC))
	} else {
		opts = append(opts, precis.Norm(norm.NFC))
	}
	if d.bidi && flags&StringprepNoBidi == 0 {
		opts = append(opts, precis.BidiRule)
	}

	if d.class == classIdentifier {
		return precis.NewIdentifier(opts...)
	}
	return precis.NewFreeform(opts...)
}

type profileKey struct {
	name  string
	flags int
}

// profiles caches built PRECIS profiles by name and the flag bits that affect them.
var profiles sync.Map

func lookupProfile(name string, flags int) (*precis.Profile, bool) {
	def, ok := profileDefs[name]
	if !ok {
		return nil, false
	}

	key := profileKey{name: name, flags: flags & (StringprepNoNFKC | StringprepNoBidi)}
	if p, ok := profiles.Load(key); ok {
		return p.(*precis.Profile), true
	}
	p, _ := profiles.LoadOrStore(key, def.build(key.flags))
	return p.(*precis.Profile), true
}

// Stringprep prepares the UTF-8 string |in| with the named profile. Profile names are case sensitive.
// Unassigned code points are always rejected, so StringprepNoUnassigned changes nothing.
func Stringprep(in []byte, profile string, flags int) ([]byte, error) {
	p, ok := lookupProfile(profile, flags)
	if !ok {
		return nil, newError(FamilyStringprep, StringprepUnknownProfile, nil)
	}
	if !utf8.Valid(in) {
		return nil, newError(FamilyStringprep, StringprepIconvError, nil)
	}

	out, err := p.Bytes(in)
	if err != nil {
		if errors.Is(err, bidirule.ErrInvalid) {
			return nil, newError(FamilyStringprep, StringprepBidiBothLAndRAL, err)
		}
		return nil, newError(FamilyStringprep, StringprepContainsProhibited, err)
	}
	return out, nil
}
