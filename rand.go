package pqcrypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// ReadRandom fills b from r, falling back to crypto/rand when r is nil.
// Failures are wrapped in ErrRandomSource.
func ReadRandom(r io.Reader, b []byte) error {
	if r == nil {
		r = rand.Reader
	}
	if _, err := io.ReadFull(r, b); err != nil {
		return fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return nil
}

// NewDeterministicRandom returns an io.Reader producing an unbounded,
// reproducible byte stream derived from seed with SHAKE256. Readers built
// from equal seeds produce equal streams.
//
// It exists for tests and offline vector generation. It is only as strong as
// its seed; do not use it for production keys unless the seed itself is
// full-entropy and secret.
func NewDeterministicRandom(seed []byte) io.Reader {
	h := sha3.NewShake256()
	h.Write(seed)
	return h
}
