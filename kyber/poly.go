package kyber

import "github.com/vaultsandbox/pqcrypto/internal/subtle"

const (
	// qInv is q^-1 mod 2^16, interpreted as a signed 16-bit value, as
	// required by the Montgomery reduction below.
	qInv = -3327

	// barrettV is the Barrett multiplier floor(2^26/q + 1/2).
	barrettV = 20159

	// rSquared is R^2 mod q for R = 2^16. Montgomery-multiplying by it
	// lifts a plain coefficient into the Montgomery domain.
	rSquared = 1353

	// halfQ is the canonical encoding of message bit 1.
	halfQ = (q + 1) / 2
)

// poly is a ring element: a degree-255 polynomial over Z_q held with
// signed coefficients. Outside of reductions, coefficients are allowed
// to drift within int16 range; callers normalize before encoding.
type poly [n]int16

// montReduce maps a in (-q*2^15, q*2^15) to a*R^-1 mod q for R = 2^16,
// with the result in (-q, q).
func montReduce(a int32) int16 {
	t := int16(a) * qInv
	return int16((a - int32(t)*q) >> 16)
}

// barrettReduce maps any int16 to a centered representative mod q in
// (-q, q). The intermediate t*q may wrap int16; the final difference
// is exact because the true result fits.
func barrettReduce(a int16) int16 {
	t := int16((int32(a)*barrettV + (1 << 25)) >> 26)
	return a - t*q
}

// fqmul returns a*b*R^-1 mod q.
func fqmul(a, b int16) int16 {
	return montReduce(int32(a) * int32(b))
}

func (p *poly) add(o *poly) {
	for i := range p {
		p[i] += o[i]
	}
}

// sub sets p to p minus o, coefficient-wise.
func (p *poly) sub(o *poly) {
	for i := range p {
		p[i] -= o[i]
	}
}

func (p *poly) reduce() {
	for i := range p {
		p[i] = barrettReduce(p[i])
	}
}

// caddq maps every centered coefficient in (-q, q) to [0, q).
func (p *poly) caddq() {
	for i := range p {
		p[i] = subtle.CaddQ16(p[i], q)
	}
}

// toMont multiplies every coefficient by R mod q, injecting the
// Montgomery factor a later fqmul will consume.
func (p *poly) toMont() {
	for i := range p {
		p[i] = fqmul(p[i], rSquared)
	}
}

// fromMsg expands a 32-byte message into a ring element, mapping bit 1
// to (q+1)/2 and bit 0 to zero. The expansion is branch-free.
func (p *poly) fromMsg(msg *[32]byte) {
	for i := 0; i < n; i++ {
		mask := -int16(msg[i/8] >> (i % 8) & 1)
		p[i] = mask & halfQ
	}
}

// toMsg recovers the 32-byte message from a noisy ring element by
// deciding, per coefficient, whether it sits closer to q/2 than to 0.
// Coefficients may arrive centered; they are canonicalized first.
func (p *poly) toMsg() (msg [32]byte) {
	for i := 0; i < n; i++ {
		c := subtle.CaddQ16(p[i], q)
		msg[i/8] |= subtle.DecodeBit(c) << (i % 8)
	}
	return msg
}

// wipe zeroes every coefficient so secret polynomials do not linger
// after use.
func (p *poly) wipe() {
	for i := range p {
		p[i] = 0
	}
}

// polyVec is a length-k vector of ring elements.
type polyVec []poly

func newPolyVec(k int) polyVec { return make(polyVec, k) }

func (v polyVec) wipe() {
	for i := range v {
		v[i].wipe()
	}
}

func (v polyVec) ntt() {
	for i := range v {
		v[i].ntt()
	}
}

func (v polyVec) invNTT() {
	for i := range v {
		v[i].invNTT()
	}
}

func (v polyVec) reduce() {
	for i := range v {
		v[i].reduce()
	}
}

// mulAcc sets r to the NTT-domain inner product of a and b. The result
// carries a single R^-1 factor from the pairwise multiplications; with
// k at most 4 the accumulated coefficients stay within int16 range, so
// one Barrett pass at the end suffices.
func mulAcc(r *poly, a, b polyVec) {
	var t poly
	basemul(r, &a[0], &b[0])
	for i := 1; i < len(a); i++ {
		basemul(&t, &a[i], &b[i])
		r.add(&t)
	}
	r.reduce()
}
