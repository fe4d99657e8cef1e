// Package model defines the parameterized CRC description used by all of the
// calculation and generation packages, and parses the textual parameter lines
// that describe one.
//
// The description is based on Ross Williams' parameters, with two changes
// made by Process: poly and init are stored bit-reversed for reflected CRCs,
// and init is repurposed to hold the CRC of a zero-length message instead of
// the initial register contents. rev is replaced by refin != refout, which is
// true for almost no catalogued CRC.
package model

import "fmt"

const (
	// WordBits is the number of bits in the word type used for CRC
	// calculations. CRCs up to WordBits wide use the table-driven
	// algorithms; the bit-wise algorithms handle up to twice this.
	WordBits = 64

	// WordChars is the number of bytes in a word.
	WordChars = WordBits >> 3

	// CombLen is the number of entries in the combination table. Entries
	// up to 66 cover any 64-bit byte length (8n has bits 3..66); the rest
	// leave room for the squaring sequence to repeat, which for the
	// CRC-64/XZ polynomial first happens at entry 256 (back to entry 1).
	CombLen = 256
)

// Model is a CRC description with room for the derived tables. Poly, Init,
// XorOut, Check, and Res are held as hi/lo pairs to permit CRCs up to
// 2*WordBits wide. The tables are filled in on demand by the crc package and
// are functions of the frozen parameters plus the endianness and word size
// given at build time. A Model whose tables are populated may be shared
// read-only; concurrent population must be synchronized by the caller.
type Model struct {
	Width int    // number of bits in the CRC, 1..2*WordBits
	Ref   bool   // if true, reflect input and output
	Rev   bool   // if true, reverse output (after Process: refin != refout)
	Name  string // text description of this CRC

	Poly, PolyHi     uint64 // polynomial representation (sans x^width)
	Init, InitHi     uint64 // CRC of a zero-length sequence (after Process)
	XorOut, XorOutHi uint64 // final CRC is exclusive-or'ed with this
	Check, CheckHi   uint64 // CRC of the nine ASCII bytes "123456789"
	Res, ResHi       uint64 // residue of the CRC

	TableByte [256]uint64            // table for byte-wise calculation
	TableWord [WordChars][256]uint64 // tables for word-wise calculation

	TableComb [CombLen]uint64 // x^(2^k) mod p(x), for combination
	Cycle     int             // entries stored in TableComb (0 = not built)
	Back      int             // index the sequence repeats at, or -1
}

func (m Model) String() string {
	if m.Width > WordBits {
		return fmt.Sprintf("{Name:%s Width:%d Poly:0x%X%016X Check:0x%X%016X}",
			m.Name, m.Width, m.PolyHi, m.Poly, m.CheckHi, m.Check)
	}
	return fmt.Sprintf("{Name:%s Width:%d Poly:0x%X Init:0x%X Ref:%t Rev:%t XorOut:0x%X Check:0x%X}",
		m.Name, m.Width, m.Poly, m.Init, m.Ref, m.Rev, m.XorOut, m.Check)
}

// Process converts the parameters read from a description line into the form
// used by the calculation routines: the polynomial is reflected for reflected
// input, the initial register contents are reflected for reflected output and
// folded with XorOut so that Init becomes the CRC of an empty message, and
// Rev is reduced to refin != refout. Process must be called exactly once,
// before any calculation or table construction.
func (m *Model) Process() {
	if m.Ref {
		m.PolyHi, m.Poly = ReverseDbl(m.PolyHi, m.Poly, m.Width)
	}
	if m.Rev {
		m.InitHi, m.Init = ReverseDbl(m.InitHi, m.Init, m.Width)
	}
	m.Init ^= m.XorOut
	m.InitHi ^= m.XorOutHi
	m.Rev = m.Rev != m.Ref
}
