package gen

import (
	"fmt"
	"io"

	"github.com/bemasher/anycrc/crc"
	"github.com/bemasher/anycrc/model"
)

// ctype returns the smallest of the uintN_t types that holds width bits,
// along with its size in bits.
func ctype(width int) (string, int) {
	switch {
	case width <= 8:
		return "uint8_t", 8
	case width <= 16:
		return "uint16_t", 16
	case width <= 32:
		return "uint32_t", 32
	default:
		return "uint64_t", 64
	}
}

// hx renders a constant the way the generated code spells them.
func hx(v uint64) string {
	if v == 0 {
		return "0"
	}
	return fmt.Sprintf("%#x", v)
}

// Generate writes the header and code for the CRC described by m to head and
// code. m must have been processed, and its width must not exceed
// model.WordBits. name prefixes every externally visible identifier. little
// and wbits give the endianness and word size (32 or 64) the word-wise
// routine is generated for; when the width exceeds wbits the word-wise
// routine falls back to the byte-wise one. The model's byte, word, and
// combination tables are (re)built here for the requested parameters.
func Generate(m *model.Model, name string, little bool, wbits int, head, code io.Writer) (err error) {
	defer recoverEmit(&err)

	typ, tbits := ctype(m.Width)
	wtyp := "uint64_t"
	if wbits == 32 {
		wtyp = "uint32_t"
	}
	wchars := wbits >> 3
	maskNeeded := m.Width != tbits
	notTrick := !maskNeeded && m.XorOut == ones(m.Width)
	wordable := m.Width <= wbits
	share := wordable && (m.Ref && little ||
		!m.Ref && !little && m.Width == wbits)

	if wordable {
		crc.TableWordwise(m, little, wbits)
	} else {
		crc.TableBytewise(m)
	}
	crc.TableCombine(m)

	h := emitter{head}
	c := emitter{code}

	// header
	h.f("// %s.h -- %s CRC calculation\n", name, m.Name)
	h.s("// Generated by anycrc. Do not edit.\n\n")
	h.f("#ifndef %s_H\n#define %s_H\n\n", upper(name), upper(name))
	h.s("#include <stddef.h>\n#include <stdint.h>\n\n")
	h.s("// If mem is NULL, the _bit, _byte, and _word routines return the\n")
	h.s("// initial CRC, the CRC of a zero-length message. That value seeds\n")
	h.s("// the first of a chain of calls; each call continues the CRC it is\n")
	h.s("// given. All three return the same values.\n")
	h.f("%s %s_bit(%s crc, void const *mem, size_t len);\n", typ, name, typ)
	if m.Ref {
		h.s("\n// Process the low bits bits of val, 0 <= bits <= 8.\n")
	} else {
		h.s("\n// Process the high bits bits of the low byte of val, 0 <= bits <= 8.\n")
	}
	h.f("%s %s_rem(%s crc, unsigned val, unsigned bits);\n", typ, name, typ)
	h.f("\n%s %s_byte(%s crc, void const *mem, size_t len);\n", typ, name, typ)
	h.f("%s %s_word(%s crc, void const *mem, size_t len);\n", typ, name, typ)
	h.s("\n// Combine the CRCs of two messages, given the length in bytes\n")
	h.s("// of the second, as if their concatenation had been processed.\n")
	h.f("%s %s_comb(%s crc1, %s crc2, uintmax_t len2);\n", typ, name, typ, typ)
	h.f("\n#endif\n")

	// code prologue
	c.f("// %s.c -- %s CRC calculation\n", name, m.Name)
	c.s("// Generated by anycrc. Do not edit.\n\n")
	c.f("#include \"%s.h\"\n", name)

	if m.Rev {
		genReverse(c, typ, tbits, m.Width)
	}

	genBit(c, m, name, typ, tbits, maskNeeded, notTrick)
	genRem(c, m, name, typ, maskNeeded, notTrick)

	byteTab := "table_byte"
	if share {
		byteTab = "table_word[0]"
	} else {
		genByteTable(c, m, typ)
	}
	genByte(c, m, name, typ, byteTab, maskNeeded)

	if wordable {
		genWordTable(c, m, wtyp, wbits)
		genWord(c, m, name, typ, tbits, wtyp, wbits, wchars, little,
			byteTab, maskNeeded)
	} else {
		c.f("\n// The CRC is wider than the %d-bit word; process bytes.\n",
			wbits)
		c.f("%s %s_word(%s crc, void const *mem, size_t len) {\n",
			typ, name, typ)
		c.f("    return %s_byte(crc, mem, len);\n}\n", name)
	}

	genComb(c, m, name, typ, maskNeeded)
	return nil
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func ones(n int) uint64 {
	return ^uint64(0) >> (64 - uint(n))
}

// genReverse emits a bit reverser for the low width bits of the type,
// built from the butterfly for the next power-of-two size with a final
// shift down when the width falls short of it.
func genReverse(c emitter, typ string, tbits, width int) {
	c.s("\nstatic inline ")
	c.f("%s revlow(%s crc) {\n", typ, typ)
	for step := tbits >> 1; step > 0; step >>= 1 {
		lo, hi := butterflyMasks(tbits, step)
		if step == tbits>>1 {
			// type truncation does the masking for the outermost swap
			c.f("    crc = (%s)((crc >> %d) | (crc << %d));\n",
				typ, step, step)
			continue
		}
		c.f("    crc = (%s)(((crc >> %d) & %s) | ((crc << %d) & %s));\n",
			typ, step, hx(lo), step, hx(hi))
	}
	if width < tbits {
		c.f("    return crc >> %d;\n", tbits-width)
	} else {
		c.s("    return crc;\n")
	}
	c.s("}\n")
}

// butterflyMasks returns the low and high masks for a butterfly stage of
// the given step over tbits bits, e.g. 0x5555.../0xaaaa... for step 1.
func butterflyMasks(tbits, step int) (lo, hi uint64) {
	for bit := 0; bit < tbits; bit++ {
		if bit/step%2 == 0 {
			lo |= 1 << uint(bit)
		} else {
			hi |= 1 << uint(bit)
		}
	}
	return lo, hi
}

// genPre emits the input transform shared by _bit and _rem: the output
// exclusive-or and the rare output reversal, undone again by genPost.
func genPre(c emitter, m *model.Model, typ string, maskNeeded, notTrick bool) {
	if notTrick {
		c.f("    crc = (%s)~crc;\n", typ)
	} else if m.XorOut != 0 {
		c.f("    crc ^= %s;\n", hx(m.XorOut))
	}
	if m.Rev {
		if maskNeeded {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
		c.s("    crc = revlow(crc);\n")
	}
}

func genPost(c emitter, m *model.Model, typ string, notTrick bool) {
	if m.Rev {
		c.s("    crc = revlow(crc);\n")
	}
	if notTrick {
		c.f("    crc = (%s)~crc;\n", typ)
	} else if m.XorOut != 0 {
		c.f("    crc ^= %s;\n", hx(m.XorOut))
	}
	c.s("    return crc;\n}\n")
}

// genBit emits the bit-wise routine, the reference the others must match.
func genBit(c emitter, m *model.Model, name, typ string, tbits int,
	maskNeeded, notTrick bool) {
	c.f("\n%s %s_bit(%s crc, void const *mem, size_t len) {\n",
		typ, name, typ)
	c.s("    unsigned char const *data = mem;\n")
	c.s("    if (data == NULL)\n")
	c.f("        return %s;\n", hx(m.Init))
	genPre(c, m, typ, maskNeeded, notTrick)
	switch {
	case m.Ref:
		if maskNeeded && !m.Rev {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
		c.s("    while (len--) {\n")
		c.s("        crc ^= *data++;\n")
		c.s("        for (unsigned k = 0; k < 8; k++)\n")
		c.f("            crc = crc & 1 ? (crc >> 1) ^ %s : crc >> 1;\n",
			hx(m.Poly))
		c.s("    }\n")
	case m.Width <= 8:
		shift := uint(8 - m.Width)
		if shift > 0 {
			c.f("    crc = (%s)(crc << %d);\n", typ, shift)
		}
		c.s("    while (len--) {\n")
		c.s("        crc ^= *data++;\n")
		c.s("        for (unsigned k = 0; k < 8; k++)\n")
		c.f("            crc = crc & 0x80 ? (%s)(crc << 1) ^ %s : (%s)(crc << 1);\n",
			typ, hx(m.Poly<<shift), typ)
		c.s("    }\n")
		if shift > 0 {
			c.f("    crc >>= %d;\n", shift)
		}
		if maskNeeded {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
	default:
		c.s("    while (len--) {\n")
		c.f("        crc ^= (%s)(*data++) << %d;\n", typ, m.Width-8)
		c.s("        for (unsigned k = 0; k < 8; k++)\n")
		c.f("            crc = crc & %s ? (crc << 1) ^ %s : crc << 1;\n",
			hx(uint64(1)<<uint(m.Width-1)), hx(m.Poly))
		c.s("    }\n")
		if maskNeeded {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
	}
	genPost(c, m, typ, notTrick)
}

// genRem emits the small-bits routine: the bit-wise loop over a caller-
// supplied count of bits from a single value.
func genRem(c emitter, m *model.Model, name, typ string,
	maskNeeded, notTrick bool) {
	c.f("\n%s %s_rem(%s crc, unsigned val, unsigned bits) {\n",
		typ, name, typ)
	genPre(c, m, typ, maskNeeded, notTrick)
	switch {
	case m.Ref:
		if maskNeeded && !m.Rev {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
		c.s("    crc ^= val & ((1U << bits) - 1);\n")
		c.s("    while (bits--)\n")
		c.f("        crc = crc & 1 ? (crc >> 1) ^ %s : crc >> 1;\n",
			hx(m.Poly))
	case m.Width <= 8:
		shift := uint(8 - m.Width)
		if shift > 0 {
			c.f("    crc = (%s)(crc << %d);\n", typ, shift)
		}
		c.s("    crc ^= val & (0xff << (8 - bits)) & 0xff;\n")
		c.s("    while (bits--)\n")
		c.f("        crc = crc & 0x80 ? (%s)(crc << 1) ^ %s : (%s)(crc << 1);\n",
			typ, hx(m.Poly<<shift), typ)
		if shift > 0 {
			c.f("    crc >>= %d;\n", shift)
		}
		if maskNeeded {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
	default:
		c.f("    crc ^= (%s)(val & (0xff << (8 - bits)) & 0xff) << %d;\n",
			typ, m.Width-8)
		c.s("    while (bits--)\n")
		c.f("        crc = crc & %s ? (crc << 1) ^ %s : crc << 1;\n",
			hx(uint64(1)<<uint(m.Width-1)), hx(m.Poly))
		if maskNeeded {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
	}
	genPost(c, m, typ, notTrick)
}

// emitRows writes table entries, wrapping lines at 79 columns.
func emitRows(c emitter, vals []uint64, digits int, indent string) {
	n := 0
	for k, v := range vals {
		if n == 0 {
			c.s(indent)
			n = len(indent)
		}
		entry := fmt.Sprintf(" 0x%0*x", digits, v)
		if k < len(vals)-1 {
			entry += ","
		}
		c.s(entry)
		n += len(entry)
		if n+digits+4 > 79 {
			c.s("\n")
			n = 0
		}
	}
	if n != 0 {
		c.s("\n")
	}
}

func genByteTable(c emitter, m *model.Model, typ string) {
	c.f("\nstatic %s const table_byte[] = {\n", typ)
	emitRows(c, m.TableByte[:], (m.Width+3)>>2, "   ")
	c.s("};\n")
}

func genWordTable(c emitter, m *model.Model, wtyp string, wbits int) {
	c.f("\nstatic %s const table_word[][256] = {\n", wtyp)
	for n := 0; n < wbits>>3; n++ {
		c.s("   {\n")
		emitRows(c, m.TableWord[n][:], wbits>>2, "   ")
		if n < wbits>>3-1 {
			c.s("   },\n")
		} else {
			c.s("   }\n")
		}
	}
	c.s("};\n")
}

// genByte emits the byte-wise routine, a table walk with the output
// transform folded into the table.
func genByte(c emitter, m *model.Model, name, typ, byteTab string,
	maskNeeded bool) {
	c.f("\n%s %s_byte(%s crc, void const *mem, size_t len) {\n",
		typ, name, typ)
	c.s("    unsigned char const *data = mem;\n")
	c.s("    if (data == NULL)\n")
	c.f("        return %s;\n", hx(m.Init))
	if m.Rev {
		if maskNeeded {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
		c.s("    crc = revlow(crc);\n")
	}
	switch {
	case m.Ref && m.Width > 8:
		if maskNeeded && !m.Rev {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
		c.s("    while (len--)\n")
		c.f("        crc = (crc >> 8) ^ %s[(crc ^ *data++) & 0xff];\n",
			byteTab)
	case m.Ref:
		if maskNeeded && !m.Rev {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
		c.s("    while (len--)\n")
		c.f("        crc = %s[crc ^ *data++];\n", byteTab)
	case m.Width <= 8:
		shift := uint(8 - m.Width)
		if shift > 0 {
			c.f("    crc = (%s)(crc << %d);\n", typ, shift)
		}
		c.s("    while (len--)\n")
		c.f("        crc = %s[crc ^ *data++];\n", byteTab)
		if shift > 0 {
			c.f("    crc >>= %d;\n", shift)
		}
	default:
		c.s("    while (len--)\n")
		c.f("        crc = (crc << 8) ^ %s[((crc >> %d) ^ *data++) & 0xff];\n",
			byteTab, m.Width-8)
		if maskNeeded {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
	}
	if m.Rev {
		c.s("    crc = revlow(crc);\n")
	}
	c.s("    return crc;\n}\n")
}

// genSwap emits the byte swap used by the word-wise routine, reversing only
// the bytes of the CRC's own type: swapmax for a 64-bit type, swaplow
// otherwise.
func genSwap(c emitter, typ string, tbits int) string {
	k := tbits >> 3
	name := "swaplow"
	if tbits == 64 {
		name = "swapmax"
	}
	c.f("\nstatic inline %s %s(%s x) {\n", typ, name, typ)
	c.f("    return (%s)(", typ)
	for i := 0; i < k; i++ {
		if i > 0 {
			c.s(" |\n        ")
		}
		shift := 8 * (k - 1 - 2*i)
		switch {
		case shift > 0 && i == 0:
			c.f("(x << %d)", shift)
		case shift > 0:
			c.f("((x & %s) << %d)", hx(0xff<<uint(8*i)), shift)
		case shift < 0 && i == k-1:
			c.f("(x >> %d)", -shift)
		case shift < 0:
			c.f("((x >> %d) & %s)", -shift, hx(0xff<<uint(8*(k-1-i))))
		default:
			c.s("x")
		}
	}
	c.s(");\n}\n")
	return name
}

// genWord emits the word-wise routine: bytes to a word boundary, then one
// table lookup per byte lane of each whole word, then the remaining bytes.
func genWord(c emitter, m *model.Model, name, typ string, tbits int,
	wtyp string, wbits, wchars int, little bool, byteTab string,
	maskNeeded bool) {
	opp := little != m.Ref
	swap := ""
	if opp && tbits > 8 {
		swap = genSwap(c, typ, tbits)
	}

	c.f("\n%s %s_word(%s crc, void const *mem, size_t len) {\n",
		typ, name, typ)
	c.s("    unsigned char const *data = mem;\n")
	c.s("    if (data == NULL)\n")
	c.f("        return %s;\n", hx(m.Init))
	if m.Rev {
		if maskNeeded {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
		c.s("    crc = revlow(crc);\n")
	}

	// bytes up to a word boundary
	byteStep := func(indent string) {
		switch {
		case m.Ref && m.Width > 8:
			c.f("%scrc = (crc >> 8) ^ %s[(crc ^ *data++) & 0xff];\n",
				indent, byteTab)
		case m.Ref, m.Width <= 8:
			c.f("%scrc = %s[(crc ^ *data++) & 0xff];\n", indent, byteTab)
		default:
			c.f("%scrc = (crc << 8) ^ %s[((crc >> %d) ^ *data++) & 0xff];\n",
				indent, byteTab, m.Width-8)
		}
	}
	shift := uint(0)
	if m.Width < 8 {
		shift = uint(8 - m.Width)
	}
	if m.Ref {
		if maskNeeded && !m.Rev {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
	} else if shift > 0 {
		c.f("    crc = (%s)(crc << %d);\n", typ, shift)
	}
	c.f("    while (len && (ptrdiff_t)data & %d) {\n", wchars-1)
	c.s("        len--;\n")
	byteStep("        ")
	c.s("    }\n")

	// whole words
	c.f("    if (len >= %d) {\n", wchars)
	mx := m.Width
	if mx < 8 {
		mx = 8
	}
	switch {
	case !opp && m.Ref:
		c.f("        %s w = crc;\n", wtyp)
	case !opp: // big endian, not reflected
		if top := wbits - mx; top > 0 {
			c.f("        %s w = (%s)crc << %d;\n", wtyp, wtyp, top)
		} else {
			c.f("        %s w = crc;\n", wtyp)
		}
	case m.Ref: // little CRC on big-endian word order
		switch {
		case tbits == wbits:
			c.f("        %s w = %s(crc);\n", wtyp, swap)
		case tbits > 8:
			c.f("        %s w = (%s)%s(crc) << %d;\n", wtyp, wtyp, swap,
				wbits-tbits)
		default:
			c.f("        %s w = (%s)crc << %d;\n", wtyp, wtyp, wbits-8)
		}
	default: // big CRC on little-endian word order
		if smallTop := tbits - mx; tbits > 8 && smallTop > 0 {
			c.f("        %s w = %s((%s)(crc << %d));\n", wtyp, swap, typ,
				smallTop)
		} else if tbits > 8 {
			c.f("        %s w = %s(crc);\n", wtyp, swap)
		} else {
			c.f("        %s w = crc;\n", wtyp)
		}
	}
	c.s("        do {\n")
	c.f("            w ^= *(%s const *)data;\n", wtyp)
	c.s("            w = ")
	for j := 0; j < wchars; j++ {
		lane := wchars - 1 - j // little-endian lane order
		if !little {
			lane = j
		}
		if j > 0 {
			c.s(" ^\n                ")
		}
		switch {
		case j == 0:
			c.f("table_word[%d][w & 0xff]", lane)
		case j == wchars-1:
			c.f("table_word[%d][w >> %d]", lane, 8*j)
		default:
			c.f("table_word[%d][(w >> %d) & 0xff]", lane, 8*j)
		}
	}
	c.s(";\n")
	c.f("            data += %d;\n", wchars)
	c.f("            len -= %d;\n", wchars)
	c.f("        } while (len >= %d);\n", wchars)
	switch {
	case !opp && m.Ref:
		c.f("        crc = (%s)w;\n", typ)
	case !opp:
		if top := wbits - mx; top > 0 {
			c.f("        crc = (%s)(w >> %d);\n", typ, top)
		} else {
			c.f("        crc = (%s)w;\n", typ)
		}
	case m.Ref:
		switch {
		case tbits == wbits:
			c.f("        crc = %s(w);\n", swap)
		case tbits > 8:
			c.f("        crc = %s((%s)(w >> %d));\n", swap, typ, wbits-tbits)
		default:
			c.f("        crc = (%s)(w >> %d);\n", typ, wbits-8)
		}
	default:
		if smallTop := tbits - mx; tbits > 8 && smallTop > 0 {
			c.f("        crc = (%s)(%s((%s)w) >> %d);\n", typ, swap, typ,
				smallTop)
		} else if tbits > 8 {
			c.f("        crc = %s((%s)w);\n", swap, typ)
		} else {
			c.f("        crc = (%s)w;\n", typ)
		}
	}
	c.s("    }\n")

	// remaining bytes
	c.s("    while (len--) {\n")
	byteStep("        ")
	c.s("    }\n")
	if !m.Ref {
		if shift > 0 {
			c.f("    crc >>= %d;\n", shift)
		}
		if m.Width > 8 && maskNeeded {
			c.f("    crc &= %s;\n", hx(ones(m.Width)))
		}
	}
	if m.Rev {
		c.s("    crc = revlow(crc);\n")
	}
	c.s("    return crc;\n}\n")
}

// genComb emits the CRC combination routine along with its polynomial
// multiplication helper and the table of x^(2^k) powers.
func genComb(c emitter, m *model.Model, name, typ string, maskNeeded bool) {
	// multiply modulo the polynomial
	c.f("\nstatic %s multmodp(%s a, %s b) {\n", typ, typ, typ)
	c.f("    %s prod = 0;\n", typ)
	c.s("    if (a == 0)\n        return 0;\n")
	if m.Ref {
		c.s("    for (;;) {\n")
		c.f("        if (a & %s) {\n", hx(uint64(1)<<uint(m.Width-1)))
		c.s("            prod ^= b;\n")
		c.f("            a ^= %s;\n", hx(uint64(1)<<uint(m.Width-1)))
		c.s("            if (a == 0)\n                break;\n")
		c.s("        }\n")
		c.f("        a = (%s)(a << 1);\n", typ)
		c.f("        b = b & 1 ? (b >> 1) ^ %s : b >> 1;\n", hx(m.Poly))
		c.s("    }\n")
	} else {
		c.f("    %s m = 1;\n", typ)
		c.s("    for (;;) {\n")
		c.s("        if (a & m) {\n")
		c.s("            prod ^= b;\n")
		c.s("            a ^= m;\n")
		c.s("            if (a == 0)\n                break;\n")
		c.s("        }\n")
		c.f("        m = (%s)(m << 1);\n", typ)
		if maskNeeded {
			c.f("        b = b & %s ? ((%s)(b << 1) & %s) ^ %s : (%s)(b << 1);\n",
				hx(uint64(1)<<uint(m.Width-1)), typ, hx(ones(m.Width)),
				hx(m.Poly), typ)
		} else {
			c.f("        b = b & %s ? (%s)(b << 1) ^ %s : (%s)(b << 1);\n",
				hx(uint64(1)<<uint(m.Width-1)), typ, hx(m.Poly), typ)
		}
		c.s("    }\n")
	}
	c.s("    return prod;\n}\n")

	// powers of x table
	c.f("\nstatic %s const table_comb[] = {\n", typ)
	emitRows(c, m.TableComb[:m.Cycle], (m.Width+3)>>2, "   ")
	c.s("};\n")

	// x^(8n) modulo the polynomial
	x0 := uint64(1)
	if m.Ref {
		x0 = 1 << uint(m.Width-1)
	}
	// the squaring sequence may cycle before entry 3, so the x^8 starting
	// index is resolved through the cycle here
	start := 0
	for i := 0; i < 3; i++ {
		if start++; start == m.Cycle && m.Back >= 0 {
			start = m.Back
		}
	}
	c.f("\nstatic %s x8nmodp(uintmax_t n) {\n", typ)
	c.f("    %s xp = %s;\n", typ, hx(x0))
	c.f("    unsigned k = %d;\n", start)
	c.s("    for (;;) {\n")
	c.s("        if (n & 1)\n")
	c.s("            xp = multmodp(table_comb[k], xp);\n")
	c.s("        n >>= 1;\n")
	c.s("        if (n == 0)\n            break;\n")
	if m.Back >= 0 {
		c.f("        if (++k == %d)\n", m.Cycle)
		c.f("            k = %d;\n", m.Back)
	} else {
		c.f("        if (++k == %d)\n", m.Cycle)
		c.s("            return 0;\n")
	}
	c.s("    }\n")
	c.s("    return xp;\n}\n")

	// combination
	c.f("\n%s %s_comb(%s crc1, %s crc2, uintmax_t len2) {\n",
		typ, name, typ, typ)
	if m.Init != 0 {
		c.f("    crc1 ^= %s;\n", hx(m.Init))
	}
	if m.Rev {
		if maskNeeded {
			c.f("    crc1 &= %s;\n", hx(ones(m.Width)))
			c.f("    crc2 &= %s;\n", hx(ones(m.Width)))
		}
		c.s("    crc1 = revlow(crc1);\n")
		c.s("    crc2 = revlow(crc2);\n")
		c.s("    crc1 = multmodp(x8nmodp(len2), crc1) ^ crc2;\n")
		c.s("    return revlow(crc1);\n}\n")
		return
	}
	c.s("    return multmodp(x8nmodp(len2), crc1) ^ crc2;\n}\n")
}
