package dilithium

import (
	"fmt"

	"github.com/vaultsandbox/pqcrypto"
)

// packT1 writes the 10-bit encoding of a rounded high-part polynomial
// with canonical coefficients in [0, 1023].
func packT1(dst []byte, p *poly) error {
	if len(dst) != polyT1Bytes {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded t1 polynomial", polyT1Bytes, len(dst))
	}
	for i := 0; i < n/4; i++ {
		t0 := uint32(p[4*i])
		t1 := uint32(p[4*i+1])
		t2 := uint32(p[4*i+2])
		t3 := uint32(p[4*i+3])
		dst[5*i+0] = byte(t0)
		dst[5*i+1] = byte(t0>>8) | byte(t1<<2)
		dst[5*i+2] = byte(t1>>6) | byte(t2<<4)
		dst[5*i+3] = byte(t2>>4) | byte(t3<<6)
		dst[5*i+4] = byte(t3 >> 2)
	}
	return nil
}

func unpackT1(p *poly, src []byte) error {
	if len(src) != polyT1Bytes {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded t1 polynomial", polyT1Bytes, len(src))
	}
	for i := 0; i < n/4; i++ {
		p[4*i+0] = int32(uint32(src[5*i+0])|uint32(src[5*i+1])<<8) & 0x3FF
		p[4*i+1] = int32(uint32(src[5*i+1])>>2|uint32(src[5*i+2])<<6) & 0x3FF
		p[4*i+2] = int32(uint32(src[5*i+2])>>4|uint32(src[5*i+3])<<4) & 0x3FF
		p[4*i+3] = int32(uint32(src[5*i+3])>>6|uint32(src[5*i+4])<<2) & 0x3FF
	}
	return nil
}

// packT0 writes the 13-bit encoding of a rounded low-part polynomial
// with coefficients in (-2^12, 2^12], biased to unsigned fields.
func packT0(dst []byte, p *poly) error {
	if len(dst) != polyT0Bytes {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded t0 polynomial", polyT0Bytes, len(dst))
	}
	var t [8]uint32
	for i := 0; i < n/8; i++ {
		for j := range t {
			t[j] = uint32(1<<(dDropped-1) - p[8*i+j])
		}
		dst[13*i+0] = byte(t[0])
		dst[13*i+1] = byte(t[0]>>8) | byte(t[1]<<5)
		dst[13*i+2] = byte(t[1] >> 3)
		dst[13*i+3] = byte(t[1]>>11) | byte(t[2]<<2)
		dst[13*i+4] = byte(t[2]>>6) | byte(t[3]<<7)
		dst[13*i+5] = byte(t[3] >> 1)
		dst[13*i+6] = byte(t[3]>>9) | byte(t[4]<<4)
		dst[13*i+7] = byte(t[4] >> 4)
		dst[13*i+8] = byte(t[4]>>12) | byte(t[5]<<1)
		dst[13*i+9] = byte(t[5]>>7) | byte(t[6]<<6)
		dst[13*i+10] = byte(t[6] >> 2)
		dst[13*i+11] = byte(t[6]>>10) | byte(t[7]<<3)
		dst[13*i+12] = byte(t[7] >> 5)
	}
	return nil
}

func unpackT0(p *poly, src []byte) error {
	if len(src) != polyT0Bytes {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded t0 polynomial", polyT0Bytes, len(src))
	}
	for i := 0; i < n/8; i++ {
		a := src[13*i : 13*i+13]
		p[8*i+0] = int32(uint32(a[0])|uint32(a[1])<<8) & 0x1FFF
		p[8*i+1] = int32(uint32(a[1])>>5|uint32(a[2])<<3|uint32(a[3])<<11) & 0x1FFF
		p[8*i+2] = int32(uint32(a[3])>>2|uint32(a[4])<<6) & 0x1FFF
		p[8*i+3] = int32(uint32(a[4])>>7|uint32(a[5])<<1|uint32(a[6])<<9) & 0x1FFF
		p[8*i+4] = int32(uint32(a[6])>>4|uint32(a[7])<<4|uint32(a[8])<<12) & 0x1FFF
		p[8*i+5] = int32(uint32(a[8])>>1|uint32(a[9])<<7) & 0x1FFF
		p[8*i+6] = int32(uint32(a[9])>>6|uint32(a[10])<<2|uint32(a[11])<<10) & 0x1FFF
		p[8*i+7] = int32(uint32(a[11])>>3|uint32(a[12])<<5) & 0x1FFF
		for j := 0; j < 8; j++ {
			p[8*i+j] = 1<<(dDropped-1) - p[8*i+j]
		}
	}
	return nil
}

// packEta writes the short encoding of a secret polynomial with
// coefficients in [-eta, eta]: 3-bit fields for eta 2, nibbles for
// eta 4.
func (p *ParameterSet) packEta(dst []byte, a *poly) error {
	if len(dst) != p.polyEtaBytes() {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded secret polynomial", p.polyEtaBytes(), len(dst))
	}
	eta := int32(p.eta)
	if p.eta == 2 {
		var t [8]uint32
		for i := 0; i < n/8; i++ {
			for j := range t {
				t[j] = uint32(eta - a[8*i+j])
			}
			dst[3*i+0] = byte(t[0]) | byte(t[1]<<3) | byte(t[2]<<6)
			dst[3*i+1] = byte(t[2]>>2) | byte(t[3]<<1) | byte(t[4]<<4) | byte(t[5]<<7)
			dst[3*i+2] = byte(t[5]>>1) | byte(t[6]<<2) | byte(t[7]<<5)
		}
		return nil
	}
	for i := 0; i < n/2; i++ {
		t0 := uint32(eta - a[2*i])
		t1 := uint32(eta - a[2*i+1])
		dst[i] = byte(t0) | byte(t1<<4)
	}
	return nil
}

// unpackEta reverses packEta, rejecting field values outside [0, 2*eta]
// since no honest encoder emits them.
func (p *ParameterSet) unpackEta(a *poly, src []byte) error {
	if len(src) != p.polyEtaBytes() {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded secret polynomial", p.polyEtaBytes(), len(src))
	}
	eta := int32(p.eta)
	if p.eta == 2 {
		for i := 0; i < n/8; i++ {
			b := src[3*i : 3*i+3]
			a[8*i+0] = int32(b[0] & 7)
			a[8*i+1] = int32(b[0] >> 3 & 7)
			a[8*i+2] = int32(b[0]>>6|b[1]<<2) & 7
			a[8*i+3] = int32(b[1] >> 1 & 7)
			a[8*i+4] = int32(b[1] >> 4 & 7)
			a[8*i+5] = int32(b[1]>>7|b[2]<<1) & 7
			a[8*i+6] = int32(b[2] >> 2 & 7)
			a[8*i+7] = int32(b[2] >> 5 & 7)
		}
	} else {
		for i := 0; i < n/2; i++ {
			a[2*i] = int32(src[i] & 0x0F)
			a[2*i+1] = int32(src[i] >> 4)
		}
	}
	for i := range a {
		if a[i] > 2*eta {
			return fmt.Errorf("%w: secret coefficient field %d out of range", pqcrypto.ErrInvalidKeySize, a[i])
		}
		a[i] = eta - a[i]
	}
	return nil
}

// packZ writes the response polynomial with coefficients in
// [-gamma1+1, gamma1] as fixed-width biased fields: 18 bits when
// gamma1 is 2^17, 20 bits when it is 2^19.
func (p *ParameterSet) packZ(dst []byte, a *poly) error {
	if len(dst) != p.polyZBytes() {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded response polynomial", p.polyZBytes(), len(dst))
	}
	if p.gamma1 == 1<<17 {
		var t [4]uint32
		for i := 0; i < n/4; i++ {
			for j := range t {
				t[j] = uint32(p.gamma1 - a[4*i+j])
			}
			dst[9*i+0] = byte(t[0])
			dst[9*i+1] = byte(t[0] >> 8)
			dst[9*i+2] = byte(t[0]>>16) | byte(t[1]<<2)
			dst[9*i+3] = byte(t[1] >> 6)
			dst[9*i+4] = byte(t[1]>>14) | byte(t[2]<<4)
			dst[9*i+5] = byte(t[2] >> 4)
			dst[9*i+6] = byte(t[2]>>12) | byte(t[3]<<6)
			dst[9*i+7] = byte(t[3] >> 2)
			dst[9*i+8] = byte(t[3] >> 10)
		}
		return nil
	}
	for i := 0; i < n/2; i++ {
		t0 := uint32(p.gamma1 - a[2*i])
		t1 := uint32(p.gamma1 - a[2*i+1])
		dst[5*i+0] = byte(t0)
		dst[5*i+1] = byte(t0 >> 8)
		dst[5*i+2] = byte(t0>>16) | byte(t1<<4)
		dst[5*i+3] = byte(t1 >> 4)
		dst[5*i+4] = byte(t1 >> 12)
	}
	return nil
}

// unpackZ reverses packZ. Out-of-bound responses survive decoding and
// are caught by the norm check during verification.
func (p *ParameterSet) unpackZ(a *poly, src []byte) error {
	if len(src) != p.polyZBytes() {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded response polynomial", p.polyZBytes(), len(src))
	}
	if p.gamma1 == 1<<17 {
		for i := 0; i < n/4; i++ {
			b := src[9*i : 9*i+9]
			a[4*i+0] = int32(uint32(b[0])|uint32(b[1])<<8|uint32(b[2])<<16) & 0x3FFFF
			a[4*i+1] = int32(uint32(b[2])>>2|uint32(b[3])<<6|uint32(b[4])<<14) & 0x3FFFF
			a[4*i+2] = int32(uint32(b[4])>>4|uint32(b[5])<<4|uint32(b[6])<<12) & 0x3FFFF
			a[4*i+3] = int32(uint32(b[6])>>6|uint32(b[7])<<2|uint32(b[8])<<10) & 0x3FFFF
			for j := 0; j < 4; j++ {
				a[4*i+j] = p.gamma1 - a[4*i+j]
			}
		}
		return nil
	}
	for i := 0; i < n/2; i++ {
		b := src[5*i : 5*i+5]
		a[2*i+0] = int32(uint32(b[0])|uint32(b[1])<<8|uint32(b[2])<<16) & 0xFFFFF
		a[2*i+1] = int32(uint32(b[2])>>4|uint32(b[3])<<4|uint32(b[4])<<12) & 0xFFFFF
		a[2*i+0] = p.gamma1 - a[2*i+0]
		a[2*i+1] = p.gamma1 - a[2*i+1]
	}
	return nil
}

// packW1 writes the canonical high-part polynomial in the width the
// parameter set's gamma2 allows: 6-bit fields for the 44-value split,
// nibbles for the 16-value split.
func (p *ParameterSet) packW1(dst []byte, a *poly) error {
	if len(dst) != p.polyW1Bytes() {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded commitment polynomial", p.polyW1Bytes(), len(dst))
	}
	if p.gamma2 == (q-1)/88 {
		for i := 0; i < n/4; i++ {
			t0 := uint32(a[4*i])
			t1 := uint32(a[4*i+1])
			t2 := uint32(a[4*i+2])
			t3 := uint32(a[4*i+3])
			dst[3*i+0] = byte(t0) | byte(t1<<6)
			dst[3*i+1] = byte(t1>>2) | byte(t2<<4)
			dst[3*i+2] = byte(t2>>4) | byte(t3<<2)
		}
		return nil
	}
	for i := 0; i < n/2; i++ {
		dst[i] = byte(a[2*i]) | byte(a[2*i+1]<<4)
	}
	return nil
}

// packHints writes the sparse hint encoding: the positions of set
// bits poly by poly, then one running count per poly. The signing
// loop keeps the total within omega; anything beyond that is
// truncated rather than written over the count region.
func (p *ParameterSet) packHints(dst []byte, h polyVec) error {
	if len(dst) != p.omega+p.k {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded hints", p.omega+p.k, len(dst))
	}
	for i := range dst {
		dst[i] = 0
	}
	pos := 0
	for i := range h {
		for j := range h[i] {
			if h[i][j] != 0 && pos < p.omega {
				dst[pos] = byte(j)
				pos++
			}
		}
		dst[p.omega+i] = byte(pos)
	}
	return nil
}

// unpackHints reverses packHints, enforcing the canonical form:
// monotone counts within budget, strictly increasing positions per
// poly, zero padding after the last position. Any deviation fails
// with ErrInvalidSignature so no two encodings of the same hint
// vector verify.
func (p *ParameterSet) unpackHints(h polyVec, src []byte) error {
	if len(src) != p.omega+p.k {
		return pqcrypto.NewSizeError(pqcrypto.ErrInvalidSize, "encoded hints", p.omega+p.k, len(src))
	}
	for i := range h {
		h[i].wipe()
	}
	pos := 0
	for i := range h {
		count := int(src[p.omega+i])
		if count < pos || count > p.omega {
			return fmt.Errorf("%w: hint count out of order", pqcrypto.ErrInvalidSignature)
		}
		for j := pos; j < count; j++ {
			if j > pos && src[j] <= src[j-1] {
				return fmt.Errorf("%w: hint positions not increasing", pqcrypto.ErrInvalidSignature)
			}
			h[i][src[j]] = 1
		}
		pos = count
	}
	for j := pos; j < p.omega; j++ {
		if src[j] != 0 {
			return fmt.Errorf("%w: nonzero hint padding", pqcrypto.ErrInvalidSignature)
		}
	}
	return nil
}
