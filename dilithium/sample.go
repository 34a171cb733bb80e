package dilithium

import (
	"encoding/binary"
	"io"

	"github.com/vaultsandbox/pqcrypto"
	"github.com/vaultsandbox/pqcrypto/internal/hashes"
	"github.com/vaultsandbox/pqcrypto/internal/sampling"
)

// expandA derives the k-by-l public matrix in the NTT domain from the
// 32-byte seed rho, one SHAKE128 stream per entry keyed by the entry's
// 16-bit position, column byte first.
func (p *ParameterSet) expandA(rho []byte) ([]polyVec, error) {
	a := make([]polyVec, p.k)
	for i := range a {
		a[i] = newPolyVec(p.l)
		for j := range a[i] {
			xof := hashes.NewXOF(rho, byte(j), byte(i))
			if err := sampling.Uniform(a[i][j][:], xof, sampling.ModDilithium); err != nil {
				return nil, err
			}
		}
	}
	return a, nil
}

// sampleEta fills dst with coefficients in [-eta, eta] by nibble
// rejection on a SHAKE256 stream keyed by seed and the 16-bit nonce.
func (p *ParameterSet) sampleEta(dst *poly, seed []byte, nonce uint16) error {
	if p.eta != 2 && p.eta != 4 {
		return &pqcrypto.ParameterError{Name: "noise width eta", Value: p.eta}
	}
	accept := func(t int32) (int32, bool) {
		if p.eta == 2 {
			if t >= 15 {
				return 0, false
			}
			// t mod 5, division-free since t < 15.
			return 2 - (t - (205*t>>10)*5), true
		}
		if t >= 9 {
			return 0, false
		}
		return 4 - t, true
	}

	var nb [2]byte
	binary.LittleEndian.PutUint16(nb[:], nonce)
	stream := hashes.NewShake256(seed, nb[:])

	buf := make([]byte, 136)
	filled := 0
	for filled < n {
		if _, err := io.ReadFull(stream, buf); err != nil {
			return err
		}
		for _, b := range buf {
			if v, ok := accept(int32(b & 0x0F)); ok && filled < n {
				dst[filled] = v
				filled++
			}
			if v, ok := accept(int32(b >> 4)); ok && filled < n {
				dst[filled] = v
				filled++
			}
		}
	}
	return nil
}

// expandMask derives one masking polynomial with coefficients in
// [-gamma1+1, gamma1] from rhoPrime and the 16-bit nonce. The stream
// encoding is the same fixed-width form signatures use for z.
func (p *ParameterSet) expandMask(dst *poly, rhoPrime []byte, nonce uint16) error {
	var nb [2]byte
	binary.LittleEndian.PutUint16(nb[:], nonce)
	stream := hashes.NewShake256(rhoPrime, nb[:])
	buf := make([]byte, p.polyZBytes())
	if _, err := io.ReadFull(stream, buf); err != nil {
		return err
	}
	return p.unpackZ(dst, buf)
}

// sampleInBall expands a 32-byte challenge digest into a polynomial
// with tau nonzero coefficients, each +1 or -1, placed by the
// stream-driven Fisher-Yates shuffle.
func (p *ParameterSet) sampleInBall(dst *poly, cTilde []byte) error {
	stream := hashes.NewShake256(cTilde)
	var head [8]byte
	if _, err := io.ReadFull(stream, head[:]); err != nil {
		return err
	}
	signs := binary.LittleEndian.Uint64(head[:])

	for i := range dst {
		dst[i] = 0
	}
	var b [1]byte
	for i := n - p.tau; i < n; i++ {
		j := i + 1
		for j > i {
			if _, err := io.ReadFull(stream, b[:]); err != nil {
				return err
			}
			j = int(b[0])
		}
		dst[i] = dst[j]
		dst[j] = 1 - 2*int32(signs&1)
		signs >>= 1
	}
	return nil
}
