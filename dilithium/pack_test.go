package dilithium

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vaultsandbox/pqcrypto"
)

func TestPackT1RoundTrip(t *testing.T) {
	coeffs := canonicalCoeffs(t, "pack t1", n)
	var a, b poly
	for i := range a {
		a[i] = coeffs[i] % 1024
	}
	dst := make([]byte, polyT1Bytes)
	if err := packT1(dst, &a); err != nil {
		t.Fatalf("packT1: %v", err)
	}
	if err := unpackT1(&b, dst); err != nil {
		t.Fatalf("unpackT1: %v", err)
	}
	if a != b {
		t.Error("t1 encoding did not round trip")
	}
}

func TestPackT0RoundTrip(t *testing.T) {
	coeffs := canonicalCoeffs(t, "pack t0", n)
	var a, b poly
	for i := range a {
		a[i] = coeffs[i]%(1<<dDropped) - (1<<(dDropped-1) - 1)
	}
	a[0] = -(1<<(dDropped-1) - 1)
	a[1] = 1 << (dDropped - 1)
	a[2] = 0
	dst := make([]byte, polyT0Bytes)
	if err := packT0(dst, &a); err != nil {
		t.Fatalf("packT0: %v", err)
	}
	if err := unpackT0(&b, dst); err != nil {
		t.Fatalf("unpackT0: %v", err)
	}
	if a != b {
		t.Error("t0 encoding did not round trip")
	}
}

func TestPackEtaRoundTrip(t *testing.T) {
	for _, p := range []*ParameterSet{Dilithium2, Dilithium3} {
		t.Run(p.Name(), func(t *testing.T) {
			eta := int32(p.eta)
			coeffs := canonicalCoeffs(t, "pack eta "+p.Name(), n)
			var a, b poly
			for i := range a {
				a[i] = coeffs[i]%(2*eta+1) - eta
			}
			a[0], a[1], a[2] = -eta, eta, 0
			dst := make([]byte, p.polyEtaBytes())
			if err := p.packEta(dst, &a); err != nil {
				t.Fatalf("packEta: %v", err)
			}
			if err := p.unpackEta(&b, dst); err != nil {
				t.Fatalf("unpackEta: %v", err)
			}
			if a != b {
				t.Error("secret encoding did not round trip")
			}
		})
	}
}

func TestUnpackEtaRejectsOutOfRange(t *testing.T) {
	t.Run("eta 2", func(t *testing.T) {
		p := Dilithium2
		src := make([]byte, p.polyEtaBytes())
		src[0] = 0x05 // first 3-bit field holds 5, above 2*eta
		var a poly
		if err := p.unpackEta(&a, src); !errors.Is(err, pqcrypto.ErrInvalidKeySize) {
			t.Errorf("err = %v, want ErrInvalidKeySize", err)
		}
		src[0] = 0x04 // exactly 2*eta is the largest honest field
		if err := p.unpackEta(&a, src); err != nil {
			t.Errorf("unpackEta rejected a boundary field: %v", err)
		}
	})
	t.Run("eta 4", func(t *testing.T) {
		p := Dilithium3
		src := make([]byte, p.polyEtaBytes())
		src[0] = 0x09 // low nibble holds 9, above 2*eta
		var a poly
		if err := p.unpackEta(&a, src); !errors.Is(err, pqcrypto.ErrInvalidKeySize) {
			t.Errorf("err = %v, want ErrInvalidKeySize", err)
		}
		src[0] = 0x08
		if err := p.unpackEta(&a, src); err != nil {
			t.Errorf("unpackEta rejected a boundary field: %v", err)
		}
	})
}

func TestPackZRoundTrip(t *testing.T) {
	for _, p := range []*ParameterSet{Dilithium2, Dilithium3} {
		t.Run(p.Name(), func(t *testing.T) {
			coeffs := canonicalCoeffs(t, "pack z "+p.Name(), n)
			var a, b poly
			for i := range a {
				a[i] = coeffs[i]%(2*p.gamma1) - (p.gamma1 - 1)
			}
			a[0], a[1], a[2] = -(p.gamma1 - 1), p.gamma1, 0
			dst := make([]byte, p.polyZBytes())
			if err := p.packZ(dst, &a); err != nil {
				t.Fatalf("packZ: %v", err)
			}
			if err := p.unpackZ(&b, dst); err != nil {
				t.Fatalf("unpackZ: %v", err)
			}
			if a != b {
				t.Error("response encoding did not round trip")
			}
		})
	}
}

func TestPackW1KnownBytes(t *testing.T) {
	t.Run("6-bit fields", func(t *testing.T) {
		var a poly
		a[0], a[1], a[2], a[3] = 1, 2, 3, 0
		dst := make([]byte, Dilithium2.polyW1Bytes())
		if err := Dilithium2.packW1(dst, &a); err != nil {
			t.Fatalf("packW1: %v", err)
		}
		if want := []byte{0x81, 0x30, 0x00}; !bytes.Equal(dst[:3], want) {
			t.Errorf("leading bytes = %x, want %x", dst[:3], want)
		}
	})
	t.Run("nibbles", func(t *testing.T) {
		var a poly
		a[0], a[1] = 1, 2
		dst := make([]byte, Dilithium3.polyW1Bytes())
		if err := Dilithium3.packW1(dst, &a); err != nil {
			t.Fatalf("packW1: %v", err)
		}
		if dst[0] != 0x21 {
			t.Errorf("leading byte = %#x, want 0x21", dst[0])
		}
	})
}

func TestPackHintsKnownVector(t *testing.T) {
	p := Dilithium2
	h := newPolyVec(p.k)
	for _, pos := range []int{10, 50, 100, 200} {
		h[0][pos] = 1
	}
	dst := make([]byte, p.omega+p.k)
	if err := p.packHints(dst, h); err != nil {
		t.Fatalf("packHints: %v", err)
	}
	if want := []byte{10, 50, 100, 200}; !bytes.Equal(dst[:4], want) {
		t.Errorf("positions = %v, want %v", dst[:4], want)
	}
	for i := 4; i < p.omega; i++ {
		if dst[i] != 0 {
			t.Fatalf("padding byte %d is %d", i, dst[i])
		}
	}
	for i := 0; i < p.k; i++ {
		if got := dst[p.omega+i]; got != 4 {
			t.Errorf("running count for poly %d = %d, want 4", i, got)
		}
	}

	back := newPolyVec(p.k)
	if err := p.unpackHints(back, dst); err != nil {
		t.Fatalf("unpackHints: %v", err)
	}
	for i := range h {
		if h[i] != back[i] {
			t.Fatalf("hint poly %d did not round trip", i)
		}
	}
}

func TestPackHintsRoundTrip(t *testing.T) {
	for _, p := range testSets() {
		t.Run(p.Name(), func(t *testing.T) {
			coeffs := canonicalCoeffs(t, "pack hints "+p.Name(), p.omega)
			h := newPolyVec(p.k)
			for i, c := range coeffs {
				h[i%p.k][int(c)%n] = 1
			}
			dst := make([]byte, p.omega+p.k)
			if err := p.packHints(dst, h); err != nil {
				t.Fatalf("packHints: %v", err)
			}
			back := newPolyVec(p.k)
			if err := p.unpackHints(back, dst); err != nil {
				t.Fatalf("unpackHints: %v", err)
			}
			for i := range h {
				if h[i] != back[i] {
					t.Fatalf("hint poly %d did not round trip", i)
				}
			}
		})
	}
}

func TestUnpackHintsRejectsNonCanonical(t *testing.T) {
	p := Dilithium2
	h := newPolyVec(p.k)
	fresh := func() []byte { return make([]byte, p.omega+p.k) }

	tests := []struct {
		name string
		mut  func(src []byte)
	}{
		{"decreasing counts", func(src []byte) {
			src[0], src[1], src[2], src[3] = 1, 2, 3, 4
			src[p.omega] = 4
			src[p.omega+1] = 2
		}},
		{"count above budget", func(src []byte) {
			src[p.omega+3] = byte(p.omega + 1)
		}},
		{"repeated position", func(src []byte) {
			src[0], src[1] = 5, 5
			src[p.omega] = 2
		}},
		{"descending positions", func(src []byte) {
			src[0], src[1] = 9, 3
			src[p.omega] = 2
		}},
		{"nonzero padding", func(src []byte) {
			src[7] = 42
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fresh()
			tt.mut(src)
			if err := p.unpackHints(h, src); !errors.Is(err, pqcrypto.ErrInvalidSignature) {
				t.Errorf("err = %v, want ErrInvalidSignature", err)
			}
		})
	}

	t.Run("canonical empty", func(t *testing.T) {
		if err := p.unpackHints(h, fresh()); err != nil {
			t.Errorf("unpackHints rejected the empty hint vector: %v", err)
		}
	})
}

func TestPackSizeChecks(t *testing.T) {
	var a poly
	p := Dilithium3
	checks := []struct {
		name string
		err  error
	}{
		{"packT1", packT1(make([]byte, polyT1Bytes-1), &a)},
		{"unpackT1", unpackT1(&a, make([]byte, polyT1Bytes+1))},
		{"packT0", packT0(make([]byte, 1), &a)},
		{"unpackT0", unpackT0(&a, nil)},
		{"packEta", p.packEta(make([]byte, p.polyEtaBytes()+3), &a)},
		{"unpackEta", p.unpackEta(&a, make([]byte, 1))},
		{"packZ", p.packZ(make([]byte, p.polyZBytes()-1), &a)},
		{"unpackZ", p.unpackZ(&a, make([]byte, p.polyZBytes()+1))},
		{"packW1", p.packW1(make([]byte, 0), &a)},
		{"packHints", p.packHints(make([]byte, p.omega), newPolyVec(p.k))},
		{"unpackHints", p.unpackHints(newPolyVec(p.k), make([]byte, p.omega+p.k+1))},
	}
	for _, tt := range checks {
		if !errors.Is(tt.err, pqcrypto.ErrInvalidSize) {
			t.Errorf("%s: err = %v, want ErrInvalidSize", tt.name, tt.err)
		}
	}
}
