package dilithium

import (
	"fmt"
	"testing"
)

func randPoly(t *testing.T, label string) *poly {
	t.Helper()
	coeffs := canonicalCoeffs(t, label, n)
	var p poly
	copy(p[:], coeffs)
	return &p
}

// schoolbookMul is the quadratic negacyclic product, the ground truth
// the transform pipeline must agree with.
func schoolbookMul(a, b *poly) *poly {
	var acc [2 * n]int64
	for i := range a {
		for j := range b {
			acc[i+j] += int64(a[i]) * int64(b[j])
		}
	}
	var r poly
	for i := 0; i < n; i++ {
		c := (acc[i] - acc[i+n]) % q
		if c < 0 {
			c += q
		}
		r[i] = int32(c)
	}
	return &r
}

func TestMontReduce(t *testing.T) {
	// montReduce(a) * 2^32 must be congruent to a mod q, with the
	// result inside (-q, q).
	inputs := []int64{0, 1, -1, q - 1, -(q - 1), 1 << 40, -(1 << 40), (q - 1) << 31, -((q - 1) << 31)}
	coeffs := canonicalCoeffs(t, "montreduce", 2000)
	for i := 0; i+1 < len(coeffs); i += 2 {
		inputs = append(inputs, int64(coeffs[i])*int64(coeffs[i+1]))
	}
	for _, a := range inputs {
		r := montReduce(a)
		if r <= -q || r >= q {
			t.Fatalf("montReduce(%d) = %d out of (-q, q)", a, r)
		}
		lhs := (int64(r) << 32) % q
		if (lhs-a%q)%q != 0 {
			t.Fatalf("montReduce(%d) = %d is not congruent", a, r)
		}
	}
}

func TestReduce32(t *testing.T) {
	inputs := []int32{0, 1, -1, q, -q, 2 * q, 1<<31 - 1<<22 - 1, -(1<<31 - 1<<22 - 1)}
	inputs = append(inputs, canonicalCoeffs(t, "reduce32", 2000)...)
	for _, a := range inputs {
		r := reduce32(a)
		if d := (int64(a) - int64(r)) % q; d != 0 {
			t.Fatalf("reduce32(%d) = %d is not congruent", a, r)
		}
		if r < -6283009 || r > 6283007 {
			t.Fatalf("reduce32(%d) = %d outside the documented range", a, r)
		}
	}
}

func TestCaddq(t *testing.T) {
	var p poly
	p[0], p[1], p[2], p[3] = -1, 0, q-1, -(q - 1)
	p.caddq()
	want := [4]int32{q - 1, 0, q - 1, 1}
	for i, w := range want {
		if p[i] != w {
			t.Errorf("coefficient %d = %d, want %d", i, p[i], w)
		}
	}
}

func TestNTTRoundTrip(t *testing.T) {
	a := randPoly(t, "ntt round trip")
	orig := *a

	a.ntt()
	a.invNTT()
	// The inverse transform leaves a Montgomery factor, which a bare
	// montReduce divides back out.
	for i := range a {
		got := montReduce(int64(a[i]))
		got = ((got % q) + q) % q
		if got != orig[i] {
			t.Fatalf("coefficient %d: got %d, want %d", i, got, orig[i])
		}
	}
}

func TestNTTMatchesSchoolbook(t *testing.T) {
	a := randPoly(t, "schoolbook a")
	b := randPoly(t, "schoolbook b")
	want := schoolbookMul(a, b)

	a.ntt()
	b.ntt()
	var r poly
	pointwiseMont(&r, a, b)
	r.invNTT()
	// pointwiseMont divides by R and invNTT multiplies by R, so the
	// result is already plain.
	for i := range r {
		got := ((r[i] % q) + q) % q
		if got != want[i] {
			t.Fatalf("coefficient %d: got %d, want %d", i, got, want[i])
		}
	}
}

func TestMulAccMatchesSum(t *testing.T) {
	const vecLen = 4
	a := newPolyVec(vecLen)
	b := newPolyVec(vecLen)
	var want poly
	for i := 0; i < vecLen; i++ {
		pa := randPoly(t, fmt.Sprintf("mulacc a %d", i))
		pb := randPoly(t, fmt.Sprintf("mulacc b %d", i))
		prod := schoolbookMul(pa, pb)
		for j := range want {
			want[j] = (want[j] + prod[j]) % q
		}
		a[i] = *pa
		b[i] = *pb
	}

	a.ntt()
	b.ntt()
	var r poly
	mulAcc(&r, a, b)
	r.invNTT()
	for i := range r {
		got := ((r[i] % q) + q) % q
		if got != want[i] {
			t.Fatalf("coefficient %d: got %d, want %d", i, got, want[i])
		}
	}
}

func TestPolyAddSub(t *testing.T) {
	a := randPoly(t, "addsub a")
	b := randPoly(t, "addsub b")
	sum := *a
	sum.add(b)
	sum.sub(b)
	if sum != *a {
		t.Error("add then sub did not restore the polynomial")
	}
}

func TestShiftl(t *testing.T) {
	var p poly
	p[0], p[1] = 1, 3
	p.shiftl()
	if p[0] != 1<<dDropped || p[1] != 3<<dDropped {
		t.Errorf("shiftl gave %d, %d", p[0], p[1])
	}
}

func TestNormBounded(t *testing.T) {
	var p poly
	if !p.normBounded(1) {
		t.Error("zero polynomial rejected at bound 1")
	}
	p[17] = 100
	if p.normBounded(100) {
		t.Error("coefficient equal to the bound accepted")
	}
	if !p.normBounded(101) {
		t.Error("coefficient below the bound rejected")
	}
	p[17] = -100
	if p.normBounded(100) {
		t.Error("negative coefficient at the bound accepted")
	}

	v := newPolyVec(3)
	v[2][255] = 7
	if v.normBounded(7) {
		t.Error("vector bound miss not detected")
	}
	if !v.normBounded(8) {
		t.Error("vector within bound rejected")
	}
}

func TestWipe(t *testing.T) {
	p := randPoly(t, "wipe")
	p.wipe()
	for i := range p {
		if p[i] != 0 {
			t.Fatalf("coefficient %d survived wipe", i)
		}
	}

	v := newPolyVec(2)
	v[0][0], v[1][n-1] = 5, -5
	v.wipe()
	if v[0][0] != 0 || v[1][n-1] != 0 {
		t.Error("vector wipe left residue")
	}
}
