// Package crc computes any CRC described by a model.Model, using bit-wise,
// byte-wise, and word-wise algorithms that return identical values, and
// combines CRCs of concatenated messages without reprocessing the data.
//
// All of the calculation routines process data a chunk at a time. The first
// call for a message passes a nil buffer to get the initial CRC:
//
//	c := crc.Bitwise(m, 0, nil)
//	c = crc.Bitwise(m, c, chunk1)
//	c = crc.Bitwise(m, c, chunk2)
//
// The routines are pure functions of the model and their arguments once the
// model's tables have been built.
package crc

import (
	"encoding/binary"
	"math/bits"
	"unsafe"

	"github.com/bemasher/anycrc/model"
)

// ones returns the mask for the low n bits of a word, 1 <= n <= 64.
func ones(n int) uint64 {
	return ^uint64(0) >> (model.WordBits - uint(n))
}

// Bitwise runs buf through the CRC described by m, one bit at a time, for
// widths up to model.WordBits. A nil buf returns the initial CRC for the
// model, the CRC of a zero-length message.
func Bitwise(m *model.Model, crc uint64, buf []byte) uint64 {
	poly := m.Poly

	if buf == nil {
		return m.Init
	}

	crc ^= m.XorOut
	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}

	switch {
	case m.Ref:
		crc &= ones(m.Width)
		for _, b := range buf {
			crc ^= uint64(b)
			for k := 0; k < 8; k++ {
				if crc&1 != 0 {
					crc = crc>>1 ^ poly
				} else {
					crc >>= 1
				}
			}
		}
	case m.Width <= 8:
		shift := uint(8 - m.Width) // 0..7
		poly <<= shift
		crc <<= shift
		for _, b := range buf {
			crc ^= uint64(b)
			for k := 0; k < 8; k++ {
				if crc&0x80 != 0 {
					crc = crc<<1 ^ poly
				} else {
					crc <<= 1
				}
			}
		}
		crc >>= shift
		crc &= ones(m.Width)
	default:
		mask := uint64(1) << uint(m.Width-1)
		shift := uint(m.Width - 8) // 1..WordBits-8
		for _, b := range buf {
			crc ^= uint64(b) << shift
			for k := 0; k < 8; k++ {
				if crc&mask != 0 {
					crc = crc<<1 ^ poly
				} else {
					crc <<= 1
				}
			}
		}
		crc &= ones(m.Width)
	}

	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}
	return crc ^ m.XorOut
}

// Bits runs count bits of val through the CRC, 0 <= count <= 8. Reflected
// CRCs consume the low count bits of val, low bit first; others the high
// count bits of val's low byte, high bit first. Feeding a byte in two Bits
// calls equals feeding it to Bitwise in one.
func Bits(m *model.Model, crc uint64, val uint, count uint) uint64 {
	poly := m.Poly

	crc ^= m.XorOut
	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}

	switch {
	case m.Ref:
		crc &= ones(m.Width)
		crc ^= uint64(val) & (1<<count - 1)
		for ; count > 0; count-- {
			if crc&1 != 0 {
				crc = crc>>1 ^ poly
			} else {
				crc >>= 1
			}
		}
	case m.Width <= 8:
		shift := uint(8 - m.Width)
		poly <<= shift
		crc <<= shift
		crc ^= uint64(val) & (0xff << (8 - count)) & 0xff
		for ; count > 0; count-- {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		crc >>= shift
		crc &= ones(m.Width)
	default:
		mask := uint64(1) << uint(m.Width-1)
		crc ^= (uint64(val) & (0xff << (8 - count)) & 0xff) << uint(m.Width-8)
		for ; count > 0; count-- {
			if crc&mask != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		crc &= ones(m.Width)
	}

	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}
	return crc ^ m.XorOut
}

// TableBytewise fills in the model's 256-entry table with the CRC of each
// single byte, for byte-wise calculation. Entries carry the output transform
// folded in; Bytewise and Wordwise rely on that and do not apply XorOut at
// their boundaries. If not reflected and the width is less than 8, entries
// are pre-shifted to the high end of the low 8 bits so an incoming byte can
// be exclusive-ored directly into a shifted CRC.
func TableBytewise(m *model.Model) {
	var one [1]byte
	for k := 0; k < 256; k++ {
		one[0] = byte(k)
		crc := Bitwise(m, 0, one[:])
		if m.Rev {
			crc = model.Reverse(crc, m.Width)
		}
		if m.Width < 8 && !m.Ref {
			crc <<= uint(8 - m.Width)
		}
		m.TableByte[k] = crc
	}
}

// Bytewise is equivalent to Bitwise, using the byte-wise table built by
// TableBytewise.
func Bytewise(m *model.Model, crc uint64, buf []byte) uint64 {
	if buf == nil {
		return m.Init
	}

	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}

	switch {
	case m.Ref:
		crc &= ones(m.Width)
		for _, b := range buf {
			crc = crc>>8 ^ m.TableByte[(crc^uint64(b))&0xff]
		}
	case m.Width <= 8:
		shift := uint(8 - m.Width) // 0..7
		crc <<= shift
		for _, b := range buf {
			crc = m.TableByte[crc^uint64(b)]
		}
		crc >>= shift
	default:
		shift := uint(m.Width - 8) // 1..WordBits-8
		for _, b := range buf {
			crc = crc<<8 ^ m.TableByte[((crc>>shift)^uint64(b))&0xff]
		}
		crc &= ones(m.Width)
	}

	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}
	return crc
}

// swapWord swaps the bytes of the low wbits bits of x.
func swapWord(x uint64, wbits int) uint64 {
	if wbits == 32 {
		return uint64(bits.ReverseBytes32(uint32(x)))
	}
	return bits.ReverseBytes64(x)
}

// TableWordwise fills in the tables for a word-wise calculation with the
// given target endianness and word size in bits (32 or 64), building the
// byte-wise table along the way. TableWord[n][k] is TableByte[k] (with its
// folded output transform) carried through n more zero bytes of the CRC
// register, shifted to the top of the
// word for non-reflected CRCs, and byte-swapped when the target endianness
// runs opposite to the CRC's natural direction so that each byte lane of an
// entry lines up with the matching byte of a word loaded from memory.
//
// With little endian and a reflected CRC, or big endian, non-reflected, and
// width equal to the word size, TableWord[0] is identical to TableByte.
//
// Wordwise itself evaluates with little=true, wbits=64; the other
// combinations exist for code generation.
func TableWordwise(m *model.Model, little bool, wbits int) {
	TableBytewise(m)
	opp := little != m.Ref
	top := 0
	if !m.Ref {
		top = wbits - m.Width
		if m.Width < 8 {
			top = wbits - 8
		}
	}
	xor := m.XorOut
	if m.Width < 8 && !m.Ref {
		xor <<= uint(8 - m.Width)
	}
	for k := 0; k < 256; k++ {
		crc := m.TableByte[k]
		pos := crc << uint(top)
		if opp {
			pos = swapWord(pos, wbits)
		}
		m.TableWord[0][k] = pos
		for n := 1; n < wbits>>3; n++ {
			// unfold the output transform across the table crossing
			crc ^= xor
			switch {
			case m.Ref:
				crc = crc>>8 ^ m.TableByte[crc&0xff]
			case m.Width <= 8:
				crc = m.TableByte[crc]
			default:
				crc = crc<<8 ^ m.TableByte[(crc>>uint(m.Width-8))&0xff]
			}
			crc ^= xor
			pos = crc << uint(top)
			if opp {
				pos = swapWord(pos, wbits)
			}
			m.TableWord[n][k] = pos
		}
	}
}

// aligned reports whether the first byte of buf sits on a word boundary.
func aligned(buf []byte) bool {
	return uintptr(unsafe.Pointer(&buf[0]))&(model.WordChars-1) == 0
}

// Wordwise is equivalent to Bitwise, using the tables built by
// TableWordwise(m, true, 64): bytes up to the first word boundary and after
// the last whole word go through the byte-wise table, and everything in
// between is consumed a word at a time with one table lookup per byte lane.
func Wordwise(m *model.Model, crc uint64, buf []byte) uint64 {
	if buf == nil {
		return m.Init
	}

	top := uint(0)
	if !m.Ref {
		if m.Width > 8 {
			top = uint(model.WordBits - m.Width)
		} else {
			top = model.WordBits - 8
		}
	}
	shift := uint(m.Width - 8)
	if m.Width <= 8 {
		shift = uint(8 - m.Width)
	}

	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}

	// process bytes up to a word boundary, if any
	switch {
	case m.Ref:
		crc &= ones(m.Width)
		for len(buf) > 0 && !aligned(buf) {
			crc = crc>>8 ^ m.TableByte[(crc^uint64(buf[0]))&0xff]
			buf = buf[1:]
		}
	case m.Width <= 8:
		crc <<= shift
		for len(buf) > 0 && !aligned(buf) {
			crc = m.TableByte[(crc^uint64(buf[0]))&0xff]
			buf = buf[1:]
		}
	default:
		for len(buf) > 0 && !aligned(buf) {
			crc = crc<<8 ^ m.TableByte[((crc>>shift)^uint64(buf[0]))&0xff]
			buf = buf[1:]
		}
	}

	// process as many whole words as are available
	if len(buf) >= model.WordChars {
		crc <<= top
		if !m.Ref {
			crc = bits.ReverseBytes64(crc)
		}
		for len(buf) >= model.WordChars {
			crc ^= binary.LittleEndian.Uint64(buf)
			crc = m.TableWord[7][crc&0xff] ^
				m.TableWord[6][crc>>8&0xff] ^
				m.TableWord[5][crc>>16&0xff] ^
				m.TableWord[4][crc>>24&0xff] ^
				m.TableWord[3][crc>>32&0xff] ^
				m.TableWord[2][crc>>40&0xff] ^
				m.TableWord[1][crc>>48&0xff] ^
				m.TableWord[0][crc>>56]
			buf = buf[model.WordChars:]
		}
		if !m.Ref {
			crc = bits.ReverseBytes64(crc)
		}
		crc >>= top
	}

	// process any remaining bytes after the last word
	switch {
	case m.Ref:
		for _, b := range buf {
			crc = crc>>8 ^ m.TableByte[(crc^uint64(b))&0xff]
		}
	case m.Width <= 8:
		for _, b := range buf {
			crc = m.TableByte[(crc^uint64(b))&0xff]
		}
		crc >>= shift
	default:
		for _, b := range buf {
			crc = crc<<8 ^ m.TableByte[((crc>>shift)^uint64(b))&0xff]
		}
		crc &= ones(m.Width)
	}

	if m.Rev {
		crc = model.Reverse(crc, m.Width)
	}
	return crc
}
