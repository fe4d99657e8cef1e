package crc

import "github.com/bemasher/anycrc/model"

// CRC combination works in the polynomial ring over GF(2) modulo the CRC
// polynomial: CRC(a||b) = CRC(a)*x^(8|b|) + CRC(b) (mod p(x)), where + is
// exclusive-or. Raising x to large powers uses a table of x^(2^k) mod p(x)
// built by repeated squaring, the same construction as zlib's crc32_combine.
// Combination is defined for widths up to model.WordBits.

// multmodp returns a times b modulo p(x), in the model's bit ordering.
func multmodp(m *model.Model, a, b uint64) uint64 {
	if a == 0 {
		return 0
	}
	var prod uint64
	top := uint64(1) << uint(m.Width-1)
	if m.Ref {
		// reflected: the x^0 coefficient is the high bit
		for {
			if a&top != 0 {
				prod ^= b
				a ^= top
				if a == 0 {
					break
				}
			}
			a <<= 1
			if b&1 != 0 {
				b = b>>1 ^ m.Poly
			} else {
				b >>= 1
			}
		}
	} else {
		for bit := uint64(1); ; {
			if a&bit != 0 {
				prod ^= b
				a ^= bit
				if a == 0 {
					break
				}
			}
			bit <<= 1
			if b&top != 0 {
				b = (b<<1)&ones(m.Width) ^ m.Poly
			} else {
				b <<= 1
			}
		}
	}
	return prod
}

// xone returns the polynomial x^1 in the model's bit ordering. For a width
// of one, x is congruent to p modulo p(x).
func xone(m *model.Model) uint64 {
	if m.Width == 1 {
		return m.Poly
	}
	if m.Ref {
		return 1 << uint(m.Width-2)
	}
	return 2
}

// xzero returns the polynomial x^0 = 1 in the model's bit ordering.
func xzero(m *model.Model) uint64 {
	if m.Ref {
		return 1 << uint(m.Width-1)
	}
	return 1
}

// TableCombine fills in the model's combination table with x^(2^k) mod p(x)
// by repeated squaring from x^1, stopping as soon as the sequence repeats an
// earlier entry. Cycle is the number of entries stored and Back the index
// the sequence jumps back to, or -1 in the (never yet observed) case that no
// repeat was found before the table filled.
func TableCombine(m *model.Model) {
	sq := xone(m)
	m.TableComb[0] = sq
	m.Back = -1
	n := 1
	for {
		sq = multmodp(m, sq, sq)
		k := 0
		for k < n && m.TableComb[k] != sq {
			k++
		}
		if k < n {
			m.Back = k
			break
		}
		if n == model.CombLen {
			break
		}
		m.TableComb[n] = sq
		n++
	}
	m.Cycle = n
}

// combNext advances an index through the combination table, jumping back
// when the stored squaring sequence cycles.
func combNext(m *model.Model, k int) int {
	if k++; k == m.Cycle {
		if m.Back >= 0 {
			return m.Back
		}
		if k >= model.CombLen {
			panic("crc: combination table exhausted with no cycle")
		}
	}
	return k
}

// xpnmodp returns x^(n * 2^k0) mod p(x), walking the bits of n through the
// combination table. The starting index follows the cycle as well: a CRC
// this narrow can close its cycle before entry k0 exists. TableCombine must
// have run.
func xpnmodp(m *model.Model, n uint64, k0 int) uint64 {
	xp := xzero(m)
	k := 0
	for i := 0; i < k0; i++ {
		k = combNext(m, k)
	}
	for {
		if n&1 != 0 {
			xp = multmodp(m, m.TableComb[k], xp)
		}
		n >>= 1
		if n == 0 {
			return xp
		}
		k = combNext(m, k)
	}
}

// Zeros runs count zero bits through the CRC described by m, for widths up
// to model.WordBits. Small counts shift bit by bit; from 128 bits up the
// count is applied as a single multiplication by x^count mod p(x), building
// the combination table on first use.
func Zeros(m *model.Model, crc uint64, count uint64) uint64 {
	poly := m.Poly

	crc ^= m.XorOut
	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}

	if count < 128 {
		if m.Ref {
			crc &= ones(m.Width)
			for ; count > 0; count-- {
				if crc&1 != 0 {
					crc = crc>>1 ^ poly
				} else {
					crc >>= 1
				}
			}
		} else {
			mask := uint64(1) << uint(m.Width-1)
			for ; count > 0; count-- {
				if crc&mask != 0 {
					crc = crc<<1 ^ poly
				} else {
					crc <<= 1
				}
			}
			crc &= ones(m.Width)
		}
	} else {
		if m.Cycle == 0 {
			TableCombine(m)
		}
		crc &= ones(m.Width)
		crc = multmodp(m, xpnmodp(m, count, 0), crc)
	}

	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}
	return crc ^ m.XorOut
}

// Combine returns the CRC of the concatenation of two messages, given the
// CRC of each and the length in bytes of the second, without reprocessing
// either. The combination table is built on first use.
func Combine(m *model.Model, crc1, crc2 uint64, len2 uint64) uint64 {
	if m.Cycle == 0 {
		TableCombine(m)
	}
	crc1 ^= m.Init
	if m.Rev {
		crc1 = model.Reverse(crc1, m.Width)
		crc2 = model.Reverse(crc2, m.Width)
	}
	crc := multmodp(m, xpnmodp(m, len2, 3), crc1) ^ crc2
	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}
	return crc
}

// Residue returns the model's residue: the result of running width zero bits
// through the CRC starting from a CRC value of zero (a register holding
// XorOut), exclusive-ored with XorOut.
func Residue(m *model.Model) (hi, lo uint64) {
	if m.Width > model.WordBits {
		hi, lo = ZerosDbl(m, 0, 0, uint64(m.Width))
		return hi ^ m.XorOutHi, lo ^ m.XorOut
	}
	return 0, Zeros(m, 0, uint64(m.Width)) ^ m.XorOut
}
