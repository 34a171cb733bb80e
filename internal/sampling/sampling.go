// Package sampling implements the deterministic samplers shared by the two
// lattice schemes: uniform rejection sampling from an XOF stream and
// centered-binomial noise from a PRF stream.
package sampling

import (
	"io"

	"github.com/vaultsandbox/pqcrypto"
)

// Supported NTT-friendly moduli.
const (
	ModKyber     = 3329
	ModDilithium = 8380417
)

// Uniform fills dst with independent coefficients drawn uniformly from
// [0, modulus) by rejection sampling. Each candidate comes from one 3-byte
// little-endian chunk of the stream, masked to 12 bits for the Kyber modulus
// and 23 bits for the Dilithium modulus; chunks at or above the modulus are
// discarded. The stream is unbounded, so sampling reads until dst is full.
//
// A modulus without an NTT configuration fails with ErrUnsupportedModulus.
func Uniform(dst []int32, xof io.Reader, modulus int32) error {
	var mask uint32
	switch modulus {
	case ModKyber:
		mask = 0xFFF
	case ModDilithium:
		mask = 0x7FFFFF
	default:
		return pqcrypto.ErrUnsupportedModulus
	}

	// One SHAKE128 rate of bytes per refill, consumed in 3-byte chunks.
	var buf [168]byte
	filled := 0
	for filled < len(dst) {
		if _, err := io.ReadFull(xof, buf[:]); err != nil {
			return err
		}
		for off := 0; off+3 <= len(buf) && filled < len(dst); off += 3 {
			v := (uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16) & mask
			if int32(v) < modulus {
				dst[filled] = int32(v)
				filled++
			}
		}
	}
	return nil
}

// CBD fills dst with noise from the centered binomial distribution of
// parameter eta, consuming exactly 64*eta bytes from prf. Coefficients land
// in [-eta, eta]. Only eta 2 and 3 are defined; anything else fails with
// ErrInvalidParameter.
func CBD(dst []int16, prf io.Reader, eta int) error {
	switch eta {
	case 2:
		var buf [128]byte
		if _, err := io.ReadFull(prf, buf[:]); err != nil {
			return err
		}
		for i := 0; i < len(dst)/8; i++ {
			t := load32(buf[4*i:])
			d := t & 0x55555555
			d += (t >> 1) & 0x55555555
			for j := 0; j < 8; j++ {
				a := int16((d >> (4*j + 0)) & 0x3)
				b := int16((d >> (4*j + 2)) & 0x3)
				dst[8*i+j] = a - b
			}
		}
	case 3:
		var buf [192]byte
		if _, err := io.ReadFull(prf, buf[:]); err != nil {
			return err
		}
		for i := 0; i < len(dst)/4; i++ {
			t := load24(buf[3*i:])
			d := t & 0x00249249
			d += (t >> 1) & 0x00249249
			d += (t >> 2) & 0x00249249
			for j := 0; j < 4; j++ {
				a := int16((d >> (6*j + 0)) & 0x7)
				b := int16((d >> (6*j + 3)) & 0x7)
				dst[4*i+j] = a - b
			}
		}
	default:
		return &pqcrypto.ParameterError{Name: "cbd eta", Value: eta}
	}
	return nil
}

func load32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func load24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}
