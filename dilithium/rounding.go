package dilithium

// power2Round splits a canonical coefficient a into (a1, a0) with
// a = a1*2^13 + a0 and a0 in (-2^12, 2^12].
func power2Round(a int32) (a1, a0 int32) {
	a1 = (a + (1 << (dDropped - 1)) - 1) >> dDropped
	a0 = a - a1<<dDropped
	return a1, a0
}

// decompose splits a canonical coefficient a into (a1, a0) with
// a = a1*2*gamma2 + a0 mod q and a0 in (-gamma2, gamma2], folding the
// borderline top case onto a1 = 0. The branch-free high-part formula
// depends on which of the two gamma2 values the set uses.
func (p *ParameterSet) decompose(a int32) (a1, a0 int32) {
	a1 = (a + 127) >> 7
	if p.gamma2 == (q-1)/32 {
		a1 = (a1*1025 + (1 << 21)) >> 22
		a1 &= 15
	} else {
		a1 = (a1*11275 + (1 << 23)) >> 24
		a1 ^= ((43 - a1) >> 31) & a1
	}
	a0 = a - a1*2*p.gamma2
	a0 -= (((q-1)/2 - a0) >> 31) & q
	return a1, a0
}

// decomposeVec splits every canonical coefficient of w into its high
// and low parts.
func (p *ParameterSet) decomposeVec(w1, w0, w polyVec) {
	for i := range w {
		for j := range w[i] {
			w1[i][j], w0[i][j] = p.decompose(w[i][j])
		}
	}
}

// highBits returns only the high parts of the decomposition.
func (p *ParameterSet) highBits(dst, w polyVec) {
	for i := range w {
		for j := range w[i] {
			dst[i][j], _ = p.decompose(w[i][j])
		}
	}
}

// makeHint returns 1 when adding the perturbation that produced a0
// flips the high part of the underlying coefficient, 0 otherwise.
func (p *ParameterSet) makeHint(a0, a1 int32) int32 {
	if a0 > p.gamma2 || a0 < -p.gamma2 || (a0 == -p.gamma2 && a1 != 0) {
		return 1
	}
	return 0
}

// makeHintVec populates h with per-coefficient hints from the low and
// high parts and returns the total number of set hints.
func (p *ParameterSet) makeHintVec(h, a0, a1 polyVec) int {
	count := 0
	for i := range h {
		for j := range h[i] {
			bit := p.makeHint(a0[i][j], a1[i][j])
			h[i][j] = bit
			count += int(bit)
		}
	}
	return count
}

// useHint recovers the high part of canonical coefficient a, nudged up
// or down when the hint bit is set.
func (p *ParameterSet) useHint(a int32, hint int32) int32 {
	a1, a0 := p.decompose(a)
	if hint == 0 {
		return a1
	}
	if p.gamma2 == (q-1)/32 {
		if a0 > 0 {
			return (a1 + 1) & 15
		}
		return (a1 - 1) & 15
	}
	if a0 > 0 {
		if a1 == 43 {
			return 0
		}
		return a1 + 1
	}
	if a1 == 0 {
		return 43
	}
	return a1 - 1
}

// useHintVec applies useHint across a whole commitment vector.
func (p *ParameterSet) useHintVec(dst, w, h polyVec) {
	for i := range w {
		for j := range w[i] {
			dst[i][j] = p.useHint(w[i][j], h[i][j])
		}
	}
}
