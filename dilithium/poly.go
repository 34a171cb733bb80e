package dilithium

import "github.com/vaultsandbox/pqcrypto/internal/subtle"

// qInv is q^-1 mod 2^32, interpreted through the wrapping int32
// multiply of the Montgomery reduction.
const qInv = 58728449

// poly is a ring element of Z_q[X]/(X^256+1) with signed coefficients.
type poly [n]int32

// montReduce maps a in (-q*2^31, q*2^31) to a*R^-1 mod q for R = 2^32,
// with the result in (-q, q).
func montReduce(a int64) int32 {
	t := int32(a) * qInv
	return int32((a - int64(t)*q) >> 32)
}

// reduce32 maps a with |a| at most 2^31 - 2^22 - 1 to a representative
// congruent mod q in [-6283009, 6283007].
func reduce32(a int32) int32 {
	t := (a + (1 << 22)) >> 23
	return a - t*q
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
		p[i] = reduce32(p[i])
	}
}

// caddq maps every centered coefficient in (-q, q) to [0, q).
func (p *poly) caddq() {
	for i := range p {
		p[i] = subtle.CaddQ32(p[i], q)
	}
}

// shiftl multiplies every coefficient by 2^13, lifting rounded high
// parts back to their full magnitude.
func (p *poly) shiftl() {
	for i := range p {
		p[i] <<= dDropped
	}
}

// normBounded reports whether every coefficient is strictly below
// bound in absolute value.
func (p *poly) normBounded(bound int32) bool {
	return subtle.NormBounded(p[:], bound)
}

// wipe zeroes every coefficient so secret polynomials do not linger
// after use.
func (p *poly) wipe() {
	for i := range p {
		p[i] = 0
	}
}

// polyVec is a vector of ring elements of length k or l depending on
// which side of the matrix it lives.
type polyVec []poly

func newPolyVec(n int) polyVec { return make(polyVec, n) }

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

func (v polyVec) caddq() {
	for i := range v {
		v[i].caddq()
	}
}

func (v polyVec) add(o polyVec) {
	for i := range v {
		v[i].add(&o[i])
	}
}

func (v polyVec) sub(o polyVec) {
	for i := range v {
		v[i].sub(&o[i])
	}
}

func (v polyVec) shiftl() {
	for i := range v {
		v[i].shiftl()
	}
}

func (v polyVec) normBounded(bound int32) bool {
	ok := true
	for i := range v {
		ok = v[i].normBounded(bound) && ok
	}
	return ok
}

func (v polyVec) wipe() {
	for i := range v {
		v[i].wipe()
	}
}

// pointwiseMont multiplies two NTT-domain elements coefficient-wise,
// leaving an R^-1 factor on the result.
func pointwiseMont(r, a, b *poly) {
	for i := range r {
		r[i] = montReduce(int64(a[i]) * int64(b[i]))
	}
}

// scalePointwise multiplies every element of v by the NTT-domain
// polynomial c.
func scalePointwise(dst polyVec, c *poly, v polyVec) {
	for i := range v {
		pointwiseMont(&dst[i], c, &v[i])
	}
}

// mulAcc sets r to the NTT-domain inner product of a and b with an
// R^-1 factor on the result, reducing once at the end so the caller
// can feed it straight into the inverse transform.
func mulAcc(r *poly, a, b polyVec) {
	var t poly
	pointwiseMont(r, &a[0], &b[0])
	for i := 1; i < len(a); i++ {
		pointwiseMont(&t, &a[i], &b[i])
		r.add(&t)
	}
	r.reduce()
}
