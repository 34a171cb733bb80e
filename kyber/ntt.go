package kyber

// zetas holds the powers of the 256th root of unity zeta = 17, in
// Montgomery form with signed representatives, ordered for the
// layer-by-layer butterfly schedule. Entries 64..127 double as the
// per-block twiddles of the pairwise base multiplication.
var zetas = [128]int16{
	-1044, -758, -359, -1517, 1493, 1422, 287, 202,
	-171, 622, 1577, 182, 962, -1202, -1474, 1468,
	573, -1325, 264, 383, -829, 1458, -1602, -130,
	-681, 1017, 732, 608, -1542, 411, -205, -1571,
	1223, 652, -552, 1015, -1293, 1491, -282, -1544,
	516, -8, -320, -666, -1618, -1162, 126, 1469,
	-853, -90, -271, 830, 107, -1421, -247, -951,
	-398, 961, -1508, -725, 448, -1065, 677, -1275,
	-1103, 430, 555, 843, -1251, 871, 1550, 105,
	422, 587, 177, -235, -291, -460, 1574, 1653,
	-246, 778, 1159, -147, -777, 1483, -602, 1119,
	-1590, 644, -872, 349, 418, 329, -156, -75,
	817, 1097, 603, 610, 1322, -1285, -1465, 384,
	-1215, -136, 1218, -1335, -874, 220, -1187, -1659,
	-1185, -1530, -1278, 794, -1510, -854, -870, 478,
	-108, -308, 996, 991, 958, -1460, 1522, 1628,
}

// invNTTScale is R^2/128 mod q. The final multiply by it both divides
// out the 128 doublings of the inverse butterflies and leaves one
// extra Montgomery factor R on the output, which cancels the R^-1
// introduced by a preceding base multiplication.
const invNTTScale = 1441

// ntt transforms p to the number-theoretic domain in place, using the
// incomplete 7-layer transform that leaves pairs of coefficients in
// each of the 128 linear factors. Input coefficients must be bounded
// by q in absolute value; outputs are bounded by 8q.
func (p *poly) ntt() {
	k := 1
	for length := 128; length >= 2; length >>= 1 {
		for start := 0; start < n; start += 2 * length {
			zeta := zetas[k]
			k++
			for j := start; j < start+length; j++ {
				t := fqmul(zeta, p[j+length])
				p[j+length] = p[j] - t
				p[j] = p[j] + t
			}
		}
	}
}

// invNTT transforms p back from the number-theoretic domain in place.
// A Barrett reduction on the additive path of every butterfly keeps
// coefficients in int16 range across the 7 layers; outputs land in
// (-q, q). The composite invNTT(ntt(p)) equals p scaled by R mod q.
func (p *poly) invNTT() {
	k := 127
	for length := 2; length <= 128; length <<= 1 {
		for start := 0; start < n; start += 2 * length {
			zeta := zetas[k]
			k--
			for j := start; j < start+length; j++ {
				t := p[j]
				p[j] = barrettReduce(t + p[j+length])
				p[j+length] = fqmul(zeta, p[j+length]-t)
			}
		}
	}
	for j := range p {
		p[j] = fqmul(p[j], invNTTScale)
	}
}

// basemul multiplies two NTT-domain elements, setting r to a*b with a
// single R^-1 factor. The incomplete transform leaves degree-1 residues
// mod (X^2 - zeta^(2i+1)), so each block of four coefficients needs two
// schoolbook products against the block twiddle and its negation.
func basemul(r, a, b *poly) {
	for i := 0; i < n/4; i++ {
		zeta := zetas[64+i]
		basemulPair(r[4*i:], a[4*i:], b[4*i:], zeta)
		basemulPair(r[4*i+2:], a[4*i+2:], b[4*i+2:], -zeta)
	}
}

func basemulPair(r, a, b []int16, zeta int16) {
	r[0] = fqmul(a[1], b[1])
	r[0] = fqmul(r[0], zeta)
	r[0] += fqmul(a[0], b[0])
	r[1] = fqmul(a[0], b[1])
	r[1] += fqmul(a[1], b[0])
}
