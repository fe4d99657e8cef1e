package model

import (
	"testing"
	"time"

	mrand "math/rand"
)

const Trials = 256

// TestReverseRoundTrip checks reverse(reverse(x, n), n) == x masked to n
// bits for every width the calculators use.
func TestReverseRoundTrip(t *testing.T) {
	for n := 1; n <= WordBits; n++ {
		for trial := 0; trial < Trials; trial++ {
			x := mrand.Uint64()
			got := Reverse(Reverse(x, n), n)
			want := x
			if n < WordBits {
				want &= 1<<uint(n) - 1
			}
			if got != want {
				t.Fatalf("n=%d: 0x%016X round-trips to 0x%016X", n, x, got)
			}
		}
	}
}

func TestReverseDblRoundTrip(t *testing.T) {
	for n := 1; n <= 2*WordBits; n++ {
		for trial := 0; trial < Trials; trial++ {
			hi, lo := mrand.Uint64(), mrand.Uint64()
			gotHi, gotLo := ReverseDbl(hi, lo, n)
			gotHi, gotLo = ReverseDbl(gotHi, gotLo, n)
			wantHi, wantLo := hi, lo
			switch {
			case n <= WordBits:
				wantHi = 0
				if n < WordBits {
					wantLo &= 1<<uint(n) - 1
				}
			case n < 2*WordBits:
				wantHi &= 1<<uint(n-WordBits) - 1
			}
			if gotHi != wantHi || gotLo != wantLo {
				t.Fatalf("n=%d: 0x%X%016X round-trips to 0x%X%016X",
					n, hi, lo, gotHi, gotLo)
			}
		}
	}
}

func TestReverseKnown(t *testing.T) {
	cases := []struct {
		x    uint64
		n    int
		want uint64
	}{
		{0x1, 1, 0x1},
		{0x1, 8, 0x80},
		{0x04c11db7, 32, 0xedb88320},
		{0x1021, 16, 0x8408},
		{0x42f0e1eba9ea3693, 64, 0xc96c5795d7870f42},
	}
	for _, c := range cases {
		if got := Reverse(c.x, c.n); got != c.want {
			t.Errorf("Reverse(0x%X, %d) = 0x%X, want 0x%X",
				c.x, c.n, got, c.want)
		}
	}
}

func init() {
	mrand.Seed(time.Now().UnixNano())
}
