package pqcrypto

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidParameter is returned when an algorithm parameter is outside
	// its supported range (a module rank other than 2/3/4, a security level
	// other than 2/3/5, a CBD eta other than 2/3).
	ErrInvalidParameter = errors.New("invalid algorithm parameter")

	// ErrInvalidKeySize is returned when key bytes have the wrong length for
	// the parameter set.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidCiphertext is returned when ciphertext bytes have the wrong
	// length for the parameter set.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")

	// ErrInvalidSignature is returned when signature bytes have the wrong
	// length for the parameter set. A well-formed signature that does not
	// verify is reported as false by Verify, not as an error.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrUnsupportedModulus is returned when uniform sampling is requested
	// for a modulus without an NTT-friendly configuration.
	ErrUnsupportedModulus = errors.New("unsupported modulus")

	// ErrInvalidSize is returned when an encoded polynomial buffer has the
	// wrong length.
	ErrInvalidSize = errors.New("invalid size")

	// ErrRandomSource is returned when reading from the caller-supplied
	// randomness source fails.
	ErrRandomSource = errors.New("random source read failed")
)

// SizeError reports a byte buffer whose length does not match the fixed size
// required by a parameter set. It wraps the matching sentinel so that
// errors.Is(err, pqcrypto.ErrInvalidKeySize) and friends work.
type SizeError struct {
	Object string // what was being decoded, e.g. "kyber768 public key"
	Want   int
	Got    int
	Err    error // the sentinel this instance wraps
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: got %d bytes, want %d", e.Object, e.Got, e.Want)
}

// Unwrap returns the wrapped sentinel error.
func (e *SizeError) Unwrap() error {
	return e.Err
}

// NewSizeError builds a SizeError wrapping the given sentinel.
func NewSizeError(sentinel error, object string, want, got int) error {
	return &SizeError{Object: object, Want: want, Got: got, Err: sentinel}
}

// ParameterError reports a request for an unsupported algorithm parameter.
type ParameterError struct {
	Name  string // parameter name, e.g. "module rank k"
	Value int
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("unsupported %s: %d", e.Name, e.Value)
}

// Is implements errors.Is for sentinel error matching.
func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}
