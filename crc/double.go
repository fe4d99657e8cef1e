package crc

import "github.com/bemasher/anycrc/model"

// Double-wide CRC calculation, for widths in (WordBits, 2*WordBits]. The
// register is an explicit hi/lo pair and the shift-and-divide steps of the
// single-word evaluator are extended across the two words with explicit
// carries. CRCs that fit in one word fall through to the single-word code,
// so callers can use these routines unconditionally.

// shlDbl shifts hi/lo left by n bits, 0 <= n < WordBits.
func shlDbl(hi, lo uint64, n uint) (uint64, uint64) {
	return hi<<n | lo>>(model.WordBits-n), lo << n
}

// shrDbl shifts hi/lo right by n bits, 0 <= n < WordBits.
func shrDbl(hi, lo uint64, n uint) (uint64, uint64) {
	return hi >> n, lo>>n | hi<<(model.WordBits-n)
}

// BitwiseDbl runs buf through the CRC described by m, one bit at a time,
// for widths up to 2*WordBits. A nil buf returns the initial CRC. The
// running CRC is passed and returned as a hi/lo pair.
func BitwiseDbl(m *model.Model, crcHi, crcLo uint64, buf []byte) (uint64, uint64) {
	polyLo := m.Poly
	polyHi := m.PolyHi

	if m.Width <= model.WordBits {
		return 0, Bitwise(m, crcLo, buf)
	}

	if buf == nil {
		return m.InitHi, m.Init
	}

	lo := crcLo ^ m.XorOut
	hi := crcHi ^ m.XorOutHi
	if m.Rev {
		hi, lo = model.ReverseDbl(hi, lo, m.Width)
	}

	switch {
	case m.Ref:
		hi &= ones(m.Width - model.WordBits)
		for _, b := range buf {
			lo ^= uint64(b)
			for k := 0; k < 8; k++ {
				tmp := lo & 1
				lo = lo>>1 | hi<<(model.WordBits-1)
				hi >>= 1
				if tmp != 0 {
					lo ^= polyLo
					hi ^= polyHi
				}
			}
		}
	case m.Width-model.WordBits <= 8:
		shift := uint(8 - (m.Width - model.WordBits)) // 0..7
		polyHi, polyLo = shlDbl(polyHi, polyLo, shift)
		hi, lo = shlDbl(hi, lo, shift)
		for _, b := range buf {
			hi ^= uint64(b)
			for k := 0; k < 8; k++ {
				tmp := hi & 0x80
				hi = hi<<1 | lo>>(model.WordBits-1)
				lo <<= 1
				if tmp != 0 {
					lo ^= polyLo
					hi ^= polyHi
				}
			}
		}
		hi, lo = shrDbl(hi, lo, shift)
		hi &= ones(m.Width - model.WordBits)
	default:
		mask := uint64(1) << uint(m.Width-model.WordBits-1)
		shift := uint(m.Width - model.WordBits - 8) // 1..WordBits-8
		for _, b := range buf {
			hi ^= uint64(b) << shift
			for k := 0; k < 8; k++ {
				tmp := hi & mask
				hi = hi<<1 | lo>>(model.WordBits-1)
				lo <<= 1
				if tmp != 0 {
					lo ^= polyLo
					hi ^= polyHi
				}
			}
		}
		hi &= ones(m.Width - model.WordBits)
	}

	if m.Rev {
		hi, lo = model.ReverseDbl(hi, lo, m.Width)
	}
	return hi ^ m.XorOutHi, lo ^ m.XorOut
}

// ZerosDbl runs count zero bits through the CRC, for widths up to
// 2*WordBits. Unlike Zeros there is no multiplication shortcut; double-wide
// CRCs always shift bit by bit.
func ZerosDbl(m *model.Model, crcHi, crcLo uint64, count uint64) (uint64, uint64) {
	polyLo := m.Poly
	polyHi := m.PolyHi

	if m.Width <= model.WordBits {
		return 0, Zeros(m, crcLo, count)
	}

	lo := crcLo ^ m.XorOut
	hi := crcHi ^ m.XorOutHi
	if m.Rev {
		hi, lo = model.ReverseDbl(hi, lo, m.Width)
	}

	if m.Ref {
		hi &= ones(m.Width - model.WordBits)
		for ; count > 0; count-- {
			tmp := lo & 1
			lo = lo>>1 | hi<<(model.WordBits-1)
			hi >>= 1
			if tmp != 0 {
				lo ^= polyLo
				hi ^= polyHi
			}
		}
	} else {
		mask := uint64(1) << uint(m.Width-model.WordBits-1)
		for ; count > 0; count-- {
			tmp := hi & mask
			hi = hi<<1 | lo>>(model.WordBits-1)
			lo <<= 1
			if tmp != 0 {
				lo ^= polyLo
				hi ^= polyHi
			}
		}
		hi &= ones(m.Width - model.WordBits)
	}

	if m.Rev {
		hi, lo = model.ReverseDbl(hi, lo, m.Width)
	}
	return hi ^ m.XorOutHi, lo ^ m.XorOut
}
