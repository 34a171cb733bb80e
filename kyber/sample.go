package kyber

import (
	"github.com/vaultsandbox/pqcrypto/internal/hashes"
	"github.com/vaultsandbox/pqcrypto/internal/sampling"
)

// expandMatrix derives the k-by-k public matrix in the NTT domain from
// the 32-byte seed rho, one XOF stream per entry. With transposed set,
// entry (i, j) is read from the stream of position (j, i), which is how
// encryption walks A transposed without materializing both
// orientations.
func (p *ParameterSet) expandMatrix(rho []byte, transposed bool) ([]polyVec, error) {
	a := make([]polyVec, p.k)
	var c [n]int32
	for i := range a {
		a[i] = newPolyVec(p.k)
		for j := range a[i] {
			x, y := byte(i), byte(j)
			if transposed {
				x, y = y, x
			}
			xof := hashes.NewXOF(rho, x, y)
			if err := sampling.Uniform(c[:], xof, sampling.ModKyber); err != nil {
				return nil, err
			}
			for l, v := range c {
				a[i][j][l] = int16(v)
			}
		}
	}
	return a, nil
}

// sampleNoise fills p from the centered binomial distribution of width
// eta, reading the PRF stream keyed by seed and domain-separated by
// nonce.
func sampleNoise(p *poly, seed []byte, nonce byte, eta int) error {
	return sampling.CBD(p[:], hashes.NewPRF(seed, nonce), eta)
}
