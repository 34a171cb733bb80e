package kyber

import (
	"github.com/vaultsandbox/pqcrypto"
	"github.com/vaultsandbox/pqcrypto/internal/subtle"
)

// compress maps a canonical coefficient to its nearest d-bit
// representative, rounding to round(c * 2^d / q) mod 2^d.
func compress(c int16, d int) uint16 {
	u := uint32(subtle.CaddQ16(c, q))
	return uint16(((u << d) + q/2) / q) & (1<<d - 1)
}

// decompress maps a d-bit representative back to the coefficient
// round(t * q / 2^d).
func decompress(t uint16, d int) int16 {
	return int16((uint32(t)*q + 1<<(d-1)) >> d)
}

// pack12 writes the full 12-bit encoding of p, two coefficients per
// three bytes. Coefficients may arrive centered; they are
// canonicalized on the way out.
func pack12(dst []byte, p *poly) error {
	if len(dst) != polyBytes {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded polynomial", polyBytes, len(dst))
	}
	for i := 0; i < n/2; i++ {
		c0 := uint16(subtle.CaddQ16(p[2*i], q))
		c1 := uint16(subtle.CaddQ16(p[2*i+1], q))
		dst[3*i] = byte(c0)
		dst[3*i+1] = byte(c0>>8) | byte(c1<<4)
		dst[3*i+2] = byte(c1 >> 4)
	}
	return nil
}

// unpack12 reverses pack12. Raw 12-bit values are taken as-is; inputs
// produced by pack12 are always canonical.
func unpack12(p *poly, src []byte) error {
	if len(src) != polyBytes {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded polynomial", polyBytes, len(src))
	}
	for i := 0; i < n/2; i++ {
		p[2*i] = int16(uint16(src[3*i]) | uint16(src[3*i+1]&0x0F)<<8)
		p[2*i+1] = int16(uint16(src[3*i+1]>>4) | uint16(src[3*i+2])<<4)
	}
	return nil
}

func packVec12(dst []byte, v polyVec) error {
	if len(dst) != len(v)*polyBytes {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded polynomial vector", len(v)*polyBytes, len(dst))
	}
	for i := range v {
		if err := pack12(dst[i*polyBytes:(i+1)*polyBytes], &v[i]); err != nil {
			return err
		}
	}
	return nil
}

func unpackVec12(v polyVec, src []byte) error {
	if len(src) != len(v)*polyBytes {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded polynomial vector", len(v)*polyBytes, len(src))
	}
	for i := range v {
		if err := unpack12(&v[i], src[i*polyBytes:(i+1)*polyBytes]); err != nil {
			return err
		}
	}
	return nil
}

// compressPoly writes the d-bit compression of p. The supported widths
// are the ciphertext depths of the three parameter sets.
func compressPoly(dst []byte, p *poly, d int) error {
	if len(dst) != n*d/8 {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "compressed polynomial", n*d/8, len(dst))
	}
	switch d {
	case 4:
		for i := 0; i < n/2; i++ {
			t0 := byte(compress(p[2*i], 4))
			t1 := byte(compress(p[2*i+1], 4))
			dst[i] = t0 | t1<<4
		}
	case 5:
		var t [8]uint16
		for i := 0; i < n/8; i++ {
			for j := range t {
				t[j] = compress(p[8*i+j], 5)
			}
			dst[0] = byte(t[0]) | byte(t[1]<<5)
			dst[1] = byte(t[1]>>3) | byte(t[2]<<2) | byte(t[3]<<7)
			dst[2] = byte(t[3]>>1) | byte(t[4]<<4)
			dst[3] = byte(t[4]>>4) | byte(t[5]<<1) | byte(t[6]<<6)
			dst[4] = byte(t[6]>>2) | byte(t[7]<<3)
			dst = dst[5:]
		}
	case 10:
		var t [4]uint16
		for i := 0; i < n/4; i++ {
			for j := range t {
				t[j] = compress(p[4*i+j], 10)
			}
			dst[0] = byte(t[0])
			dst[1] = byte(t[0]>>8) | byte(t[1]<<2)
			dst[2] = byte(t[1]>>6) | byte(t[2]<<4)
			dst[3] = byte(t[2]>>4) | byte(t[3]<<6)
			dst[4] = byte(t[3] >> 2)
			dst = dst[5:]
		}
	case 11:
		var t [8]uint16
		for i := 0; i < n/8; i++ {
			for j := range t {
				t[j] = compress(p[8*i+j], 11)
			}
			dst[0] = byte(t[0])
			dst[1] = byte(t[0]>>8) | byte(t[1]<<3)
			dst[2] = byte(t[1]>>5) | byte(t[2]<<6)
			dst[3] = byte(t[2] >> 2)
			dst[4] = byte(t[2]>>10) | byte(t[3]<<1)
			dst[5] = byte(t[3]>>7) | byte(t[4]<<4)
			dst[6] = byte(t[4]>>4) | byte(t[5]<<7)
			dst[7] = byte(t[5] >> 1)
			dst[8] = byte(t[5]>>9) | byte(t[6]<<2)
			dst[9] = byte(t[6]>>6) | byte(t[7]<<5)
			dst[10] = byte(t[7] >> 3)
			dst = dst[11:]
		}
	default:
		return &pqcrypto.ParameterError{Name: "compression depth d", Value: d}
	}
	return nil
}

// decompressPoly reverses compressPoly.
func decompressPoly(p *poly, src []byte, d int) error {
	if len(src) != n*d/8 {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "compressed polynomial", n*d/8, len(src))
	}
	switch d {
	case 4:
		for i := 0; i < n/2; i++ {
			p[2*i] = decompress(uint16(src[i]&0x0F), 4)
			p[2*i+1] = decompress(uint16(src[i]>>4), 4)
		}
	case 5:
		var t [8]uint16
		for i := 0; i < n/8; i++ {
			t[0] = uint16(src[0])
			t[1] = uint16(src[0]>>5) | uint16(src[1])<<3
			t[2] = uint16(src[1] >> 2)
			t[3] = uint16(src[1]>>7) | uint16(src[2])<<1
			t[4] = uint16(src[2]>>4) | uint16(src[3])<<4
			t[5] = uint16(src[3] >> 1)
			t[6] = uint16(src[3]>>6) | uint16(src[4])<<2
			t[7] = uint16(src[4] >> 3)
			for j := range t {
				p[8*i+j] = decompress(t[j]&0x1F, 5)
			}
			src = src[5:]
		}
	case 10:
		var t [4]uint16
		for i := 0; i < n/4; i++ {
			t[0] = uint16(src[0]) | uint16(src[1])<<8
			t[1] = uint16(src[1]>>2) | uint16(src[2])<<6
			t[2] = uint16(src[2]>>4) | uint16(src[3])<<4
			t[3] = uint16(src[3]>>6) | uint16(src[4])<<2
			for j := range t {
				p[4*i+j] = decompress(t[j]&0x3FF, 10)
			}
			src = src[5:]
		}
	case 11:
		var t [8]uint16
		for i := 0; i < n/8; i++ {
			t[0] = uint16(src[0]) | uint16(src[1])<<8
			t[1] = uint16(src[1]>>3) | uint16(src[2])<<5
			t[2] = uint16(src[2]>>6) | uint16(src[3])<<2 | uint16(src[4])<<10
			t[3] = uint16(src[4]>>1) | uint16(src[5])<<7
			t[4] = uint16(src[5]>>4) | uint16(src[6])<<4
			t[5] = uint16(src[6]>>7) | uint16(src[7])<<1 | uint16(src[8])<<9
			t[6] = uint16(src[8]>>2) | uint16(src[9])<<6
			t[7] = uint16(src[9]>>5) | uint16(src[10])<<3
			for j := range t {
				p[8*i+j] = decompress(t[j]&0x7FF, 11)
			}
			src = src[11:]
		}
	default:
		return &pqcrypto.ParameterError{Name: "compression depth d", Value: d}
	}
	return nil
}
