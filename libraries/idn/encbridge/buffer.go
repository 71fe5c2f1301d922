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

import "sync"

// maxPooledCap bounds the capacity of byte slices handed back to the pool.
const maxPooledCap = 64 * 1024

var bytePool = &sync.Pool{
	New: func() any {
		b := make([]byte, 0, 256)
		return &b
	},
}

func getBytes(n int) []byte {
	bp := bytePool.Get().(*[]byte)
	b := *bp
	if cap(b) < n {
		b = make([]byte, n)
	}
	return b[:n]
}

func putBytes(b []byte) {
	if cap(b) > maxPooledCap {
		return
	}
	b = b[:0]
	bytePool.Put(&b)
}

// Buffer is a byte sequence tagged with the encoding it is in. A Buffer either borrows its storage
// from the caller, or owns it. Owned storage is recycled by Release; borrowed storage is never touched.
// Every Buffer may be released, so callers defer Release on whatever buffer they were handed
// without tracking where it came from.
type Buffer struct {
	data       []byte
	enc        Encoding
	owned      bool
	terminated bool
}

// NewBuffer wraps |data| without copying it. The result is neither owned nor zero-terminated.
func NewBuffer(data []byte, enc Encoding) *Buffer {
	return &Buffer{data: data, enc: enc}
}

// NewTerminatedBuffer wraps |data| whose backing store guarantees a zero byte just past its end. When
// that guarantee does not hold the buffer is treated as unterminated.
func NewTerminatedBuffer(data []byte, enc Encoding) *Buffer {
	terminated := cap(data) > len(data) && data[:len(data)+1][len(data)] == 0
	return &Buffer{data: data, enc: enc, terminated: terminated}
}

// newOwnedBuffer allocates an owned, zero-terminated buffer with |n| content bytes.
func newOwnedBuffer(n int, enc Encoding) *Buffer {
	data := getBytes(n + 1)
	data[n] = 0
	return &Buffer{data: data[:n], enc: enc, owned: true, terminated: true}
}

// copyBuffer returns an owned, zero-terminated copy of |src| tagged |enc|.
func copyBuffer(src []byte, enc Encoding) *Buffer {
	b := newOwnedBuffer(len(src), enc)
	copy(b.data, src)
	return b
}

// truncate shrinks an owned buffer to |n| content bytes and re-terminates it.
func (b *Buffer) truncate(n int) {
	b.data = b.data[:n+1]
	b.data[n] = 0
	b.data = b.data[:n]
}

// Bytes returns the content of the buffer, without any terminator.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// cString returns the content followed by its zero terminator. It returns nil for unterminated buffers.
func (b *Buffer) cString() []byte {
	if !b.terminated {
		return nil
	}
	return b.data[:len(b.data)+1]
}

// String returns the content as a string.
func (b *Buffer) String() string {
	return string(b.data)
}

// Len returns the number of content bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Encoding returns the encoding the content is in.
func (b *Buffer) Encoding() Encoding {
	return b.enc
}

// Owned returns whether the buffer owns its storage.
func (b *Buffer) Owned() bool {
	return b.owned
}

// Terminated returns whether a zero byte follows the content.
func (b *Buffer) Terminated() bool {
	return b.terminated
}

// Release returns owned storage to the pool. It is a no-op for borrowed buffers and for buffers that
// were already released. The buffer is empty afterwards.
func (b *Buffer) Release() {
	if b == nil || !b.owned {
		return
	}
	putBytes(b.data)
	b.data = nil
	b.owned = false
	b.terminated = false
}
