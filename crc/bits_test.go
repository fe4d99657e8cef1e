package crc

import (
	"bytes"
	"testing"

	mrand "math/rand"

	"github.com/icza/bitio"
)

// TestBitsSplit feeds each byte of the check string in two pieces and
// expects the byte-wise answer.
func TestBitsSplit(t *testing.T) {
	for _, m := range readModels(t) {
		if m.Width > 64 {
			continue
		}
		for split := uint(0); split <= 8; split++ {
			crc := Bitwise(m, 0, nil)
			for _, b := range []byte(Check) {
				if m.Ref {
					crc = Bits(m, crc, uint(b), split)
					crc = Bits(m, crc, uint(b)>>split, 8-split)
				} else {
					crc = Bits(m, crc, uint(b), split)
					crc = Bits(m, crc, uint(b)<<split, 8-split)
				}
			}
			if crc != m.Check {
				t.Errorf("%s: split %d gives 0x%X, want 0x%X",
					m.Name, split, crc, m.Check)
			}
		}
	}
}

// TestBitsStream drives the non-reflected models from a bit reader in
// random sub-byte chunks; the reader hands out bits high-first, the order
// the non-reflected register consumes them.
func TestBitsStream(t *testing.T) {
	for _, m := range readModels(t) {
		if m.Width > 64 || m.Ref {
			continue
		}
		for trial := 0; trial < Trials; trial++ {
			br := bitio.NewReader(bytes.NewReader([]byte(Check)))
			crc := Bitwise(m, 0, nil)
			remain := uint(8 * len(Check))
			for remain > 0 {
				count := uint(1 + mrand.Intn(8))
				if count > remain {
					count = remain
				}
				val, err := br.ReadBits(uint8(count))
				if err != nil {
					t.Fatalf("%s: reading bits: %v", m.Name, err)
				}
				crc = Bits(m, crc, uint(val)<<(8-count), count)
				remain -= count
			}
			if crc != m.Check {
				t.Fatalf("%s: streamed check 0x%X, want 0x%X",
					m.Name, crc, m.Check)
			}
		}
	}
}

// TestBitsZero ensures a zero-length piece leaves the CRC alone.
func TestBitsZero(t *testing.T) {
	for _, m := range readModels(t) {
		if m.Width > 64 {
			continue
		}
		crc := Bitwise(m, Bitwise(m, 0, nil), []byte(Check))
		if got := Bits(m, crc, 0xff, 0); got != crc {
			t.Errorf("%s: zero bits changed 0x%X to 0x%X", m.Name, crc, got)
		}
	}
}
