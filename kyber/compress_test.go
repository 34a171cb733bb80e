package kyber

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vaultsandbox/pqcrypto"
)

func TestCompressDecompressError(t *testing.T) {
	for _, d := range []int{4, 5, 10, 11} {
		t.Run(fmt.Sprintf("d=%d", d), func(t *testing.T) {
			// Round-trip error stays within half a quantization step.
			bound := int32((q + (1 << (d + 1)) - 1) / (1 << (d + 1)))
			for x := int16(0); x < q; x++ {
				back := decompress(compress(x, d), d)
				diff := int32(back) - int32(x)
				if diff > q/2 {
					diff -= q
				}
				if diff < -q/2 {
					diff += q
				}
				if diff > bound || diff < -bound {
					t.Fatalf("coefficient %d: reconstruction off by %d, bound %d", x, diff, bound)
				}
			}
		})
	}
}

func TestCompressIsLeftInverse(t *testing.T) {
	// Compressing a decompressed representative must give it back
	// unchanged for every d-bit value.
	for _, d := range []int{4, 5, 10, 11} {
		for v := uint16(0); v < 1<<d; v++ {
			if got := compress(decompress(v, d), d); got != v {
				t.Fatalf("d=%d: compress(decompress(%d)) = %d", d, v, got)
			}
		}
	}
}

func TestCompressPolyRoundTrip(t *testing.T) {
	for _, d := range []int{4, 5, 10, 11} {
		t.Run(fmt.Sprintf("d=%d", d), func(t *testing.T) {
			p := randPoly(t, fmt.Sprintf("compress %d", d))
			buf := make([]byte, n*d/8)
			if err := compressPoly(buf, &p, d); err != nil {
				t.Fatalf("compressPoly: %v", err)
			}
			var back poly
			if err := decompressPoly(&back, buf, d); err != nil {
				t.Fatalf("decompressPoly: %v", err)
			}
			for i := range p {
				if want := decompress(compress(p[i], d), d); back[i] != want {
					t.Fatalf("coefficient %d: got %d, want %d", i, back[i], want)
				}
			}

			// Re-encoding the reconstruction is lossless.
			buf2 := make([]byte, n*d/8)
			if err := compressPoly(buf2, &back, d); err != nil {
				t.Fatalf("compressPoly: %v", err)
			}
			for i := range buf {
				if buf[i] != buf2[i] {
					t.Fatalf("byte %d changed across re-encoding", i)
				}
			}
		})
	}
}

func TestCompressPolyErrors(t *testing.T) {
	var p poly
	if err := compressPoly(make([]byte, 1), &p, 10); !errors.Is(err, pqcrypto.ErrInvalidSize) {
		t.Errorf("short buffer: err = %v, want ErrInvalidSize", err)
	}
	if err := decompressPoly(&p, make([]byte, 1), 10); !errors.Is(err, pqcrypto.ErrInvalidSize) {
		t.Errorf("short buffer: err = %v, want ErrInvalidSize", err)
	}
	if err := compressPoly(make([]byte, n*7/8), &p, 7); !errors.Is(err, pqcrypto.ErrInvalidParameter) {
		t.Errorf("unsupported depth: err = %v, want ErrInvalidParameter", err)
	}
	if err := decompressPoly(&p, make([]byte, n*7/8), 7); !errors.Is(err, pqcrypto.ErrInvalidParameter) {
		t.Errorf("unsupported depth: err = %v, want ErrInvalidParameter", err)
	}
}

func TestPack12RoundTrip(t *testing.T) {
	p := randPoly(t, "pack12")
	buf := make([]byte, polyBytes)
	if err := pack12(buf, &p); err != nil {
		t.Fatalf("pack12: %v", err)
	}
	var back poly
	if err := unpack12(&back, buf); err != nil {
		t.Fatalf("unpack12: %v", err)
	}
	if back != p {
		t.Fatal("12-bit round trip changed the polynomial")
	}

	// Centered negatives canonicalize on the way out.
	var neg poly
	neg[0] = -1
	if err := pack12(buf, &neg); err != nil {
		t.Fatalf("pack12: %v", err)
	}
	if err := unpack12(&back, buf); err != nil {
		t.Fatalf("unpack12: %v", err)
	}
	if back[0] != q-1 {
		t.Errorf("coefficient -1 decoded to %d, want %d", back[0], q-1)
	}
}

func TestPack12SizeChecks(t *testing.T) {
	var p poly
	for _, size := range []int{0, polyBytes - 1, polyBytes + 1} {
		if err := pack12(make([]byte, size), &p); !errors.Is(err, pqcrypto.ErrInvalidSize) {
			t.Errorf("pack12 with %d bytes: err = %v, want ErrInvalidSize", size, err)
		}
		if err := unpack12(&p, make([]byte, size)); !errors.Is(err, pqcrypto.ErrInvalidSize) {
			t.Errorf("unpack12 with %d bytes: err = %v, want ErrInvalidSize", size, err)
		}
	}
}
