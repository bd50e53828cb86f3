package internal

import "github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"

// Buffer is a fixed-capacity byte string. Writes past the limit are dropped
// and recorded in Truncated; the backing array never grows.
type Buffer struct {
	data      [constants.MaxCommandLength]byte
	n         int
	limit     int
	truncated bool
}

// NewBuffer returns a Buffer that holds at most limit bytes.
// A limit of zero or one larger than the backing array means the full array.
func NewBuffer(limit int) Buffer {
	if limit <= 0 || limit > constants.MaxCommandLength {
		limit = constants.MaxCommandLength
	}
	return Buffer{limit: limit}
}

func (b *Buffer) capacity() int {
	if b.limit == 0 {
		return len(b.data)
	}
	return b.limit
}

// Reset empties the buffer and clears the truncation flag.
func (b *Buffer) Reset() {
	b.n = 0
	b.truncated = false
}

// Copy replaces the contents with s.
func (b *Buffer) Copy(s string) {
	b.Reset()
	b.Cat(s)
}

// Cat appends s, truncating at the limit.
func (b *Buffer) Cat(s string) {
	room := b.capacity() - b.n
	if len(s) > room {
		s = s[:room]
		b.truncated = true
	}
	b.n += copy(b.data[b.n:], s)
}

// CatByte appends a single byte if there is room.
func (b *Buffer) CatByte(c byte) {
	if b.n >= b.capacity() {
		b.truncated = true
		return
	}
	b.data[b.n] = c
	b.n++
}

func (b *Buffer) Len() int { return b.n }

func (b *Buffer) Truncated() bool { return b.truncated }

// String returns a copy of the contents. The copy stays valid after later writes.
func (b *Buffer) String() string {
	return string(b.data[:b.n])
}
