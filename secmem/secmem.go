// Package secmem provides best-effort hygiene for secret byte buffers:
// explicit wiping and scoped buffers that are wiped when their scope ends.
//
// # Guarantees and Limits
//
// Wiping overwrites the bytes the slice refers to. It cannot reach copies the
// Go runtime may have made: the garbage collector moves nothing today but the
// stack can grow and be copied, slices passed by value share backing until
// they don't, and swapped-out pages are beyond user-space control. Treat
// these helpers as reducing the window secrets stay in memory, not as a
// guarantee of erasure. Callers who need hard guarantees need locked memory
// outside the runtime's management, which this package deliberately does not
// attempt.
package secmem

import "runtime"

// Wipe overwrites b with zeros. The write is kept observable so the compiler
// cannot elide it as a dead store.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

// WithBytes runs fn with an n-byte scratch buffer and wipes the buffer when
// fn returns, panic included. The buffer must not be retained past fn.
func WithBytes(n int, fn func(b []byte) error) error {
	buf := make([]byte, n)
	defer Wipe(buf)
	return fn(buf)
}

// Buffer owns a byte slice intended for secret material. The zero value is
// empty and usable.
type Buffer struct {
	b []byte
}

// New allocates a Buffer of n zero bytes.
func New(n int) *Buffer {
	return &Buffer{b: make([]byte, n)}
}

// NewFrom copies src into a fresh Buffer. The caller remains responsible for
// wiping src.
func NewFrom(src []byte) *Buffer {
	b := make([]byte, len(src))
	copy(b, src)
	return &Buffer{b: b}
}

// Bytes returns the underlying slice. It aliases the Buffer's storage, so it
// becomes zero after Wipe.
func (b *Buffer) Bytes() []byte {
	return b.b
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	return len(b.b)
}

// Wipe zeroes the buffer contents. The Buffer stays usable afterwards.
func (b *Buffer) Wipe() {
	Wipe(b.b)
}
