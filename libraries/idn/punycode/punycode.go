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

// Package punycode implements the Bootstring encoding of RFC 3492 over whole strings. Unlike the
// IDNA ToASCII and ToUnicode operations, it neither splits on dots nor adds or strips the "xn--"
// prefix.
package punycode

import (
	"errors"
	"unicode/utf8"
)

const (
	maxInt32    int32 = 2147483647
	base        int32 = 36
	tMin        int32 = 1
	tMax        int32 = 26
	skew        int32 = 38
	damp        int32 = 700
	initialBias int32 = 72
	initialN    int32 = 128
	delimiter         = '-'
)

var (
	ErrBadInput = errors.New("punycode: bad input")
	ErrOverflow = errors.New("punycode: overflow")
)

func adapt(delta, numPoints int32, firstTime bool) int32 {
	if firstTime {
		delta /= damp
	} else {
		delta /= 2
	}
	delta += delta / numPoints

	k := int32(0)
	for delta > ((base-tMin)*tMax)/2 {
		delta /= base - tMin
		k += base
	}
	return k + (base-tMin+1)*delta/(delta+skew)
}

func threshold(k, bias int32) int32 {
	t := k - bias
	if t < tMin {
		return tMin
	} else if t > tMax {
		return tMax
	}
	return t
}

func basicToDigit(b byte) int32 {
	switch {
	case '0' <= b && b <= '9':
		return int32(b-'0') + 26
	case 'A' <= b && b <= 'Z':
		return int32(b - 'A')
	case 'a' <= b && b <= 'z':
		return int32(b - 'a')
	}
	return base
}

func digitToBasic(digit int32) byte {
	if digit < 26 {
		return byte(digit) + 'a'
	}
	return byte(digit-26) + '0'
}

// encode returns the punycode encoding of |input|.
func encode(input []rune) (string, error) {
	out, err := AppendEncode(nil, input)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// AppendEncode appends the punycode encoding of |input| to |dst|. Digits are emitted in lower case.
func AppendEncode(dst []byte, input []rune) ([]byte, error) {
	for _, r := range input {
		if r < 0 || r > utf8.MaxRune {
			return dst, ErrBadInput
		}
		if r < initialN {
			dst = append(dst, byte(r))
		}
	}

	basicLen := int32(0)
	for _, r := range input {
		if r < initialN {
			basicLen++
		}
	}
	if basicLen > 0 {
		dst = append(dst, delimiter)
	}

	n, delta, bias := initialN, int32(0), initialBias
	for h := basicLen; h < int32(len(input)); {
		m := maxInt32
		for _, r := range input {
			if r >= n && r < m {
				m = r
			}
		}

		if m-n > (maxInt32-delta)/(h+1) {
			return dst, ErrOverflow
		}
		delta += (m - n) * (h + 1)
		n = m

		for _, r := range input {
			if r < n {
				delta++
				if delta == maxInt32 {
					return dst, ErrOverflow
				}
			}
			if r != n {
				continue
			}

			q := delta
			for k := base; ; k += base {
				t := threshold(k, bias)
				if q < t {
					break
				}
				dst = append(dst, digitToBasic(t+(q-t)%(base-t)))
				q = (q - t) / (base - t)
			}
			dst = append(dst, digitToBasic(q))

			bias = adapt(delta, h+1, h == basicLen)
			delta = 0
			h++
		}
		delta++
		n++
	}

	return dst, nil
}

// Decode returns the code points encoded by the punycode string |input|.
func Decode(input string) ([]rune, error) {
	basic := 0
	for i := len(input) - 1; i >= 0; i-- {
		if input[i] == delimiter {
			basic = i
			break
		}
	}

	output := make([]rune, 0, len(input))
	for i := 0; i < basic; i++ {
		if input[i] >= 0x80 {
			return nil, ErrBadInput
		}
		output = append(output, rune(input[i]))
	}

	pos := 0
	if basic > 0 {
		pos = basic + 1
	}

	n, i, bias := initialN, int32(0), initialBias
	for pos < len(input) {
		oldi, w := i, int32(1)
		for k := base; ; k += base {
			if pos >= len(input) {
				return nil, ErrBadInput
			}
			digit := basicToDigit(input[pos])
			pos++
			if digit >= base {
				return nil, ErrBadInput
			}
			if digit > (maxInt32-i)/w {
				return nil, ErrOverflow
			}
			i += digit * w

			t := threshold(k, bias)
			if digit < t {
				break
			}
			if w > maxInt32/(base-t) {
				return nil, ErrOverflow
			}
			w *= base - t
		}

		outLen := int32(len(output) + 1)
		bias = adapt(i-oldi, outLen, oldi == 0)
		if i/outLen > maxInt32-n {
			return nil, ErrOverflow
		}
		n += i / outLen
		i %= outLen

		if n > utf8.MaxRune || (0xd800 <= n && n <= 0xdfff) {
			return nil, ErrBadInput
		}

		output = append(output, 0)
		copy(output[i+1:], output[i:])
		output[i] = n
		i++
	}

	return output, nil
}
