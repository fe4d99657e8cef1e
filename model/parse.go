package model

import (
	"bufio"
	"io"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// Parameter presence masks, in reporting order.
const (
	pWidth = 1 << iota
	pPoly
	pInit
	pRefIn
	pRefOut
	pXorOut
	pCheck
	pRes
	pName

	pAll = pWidth | pPoly | pInit | pRefIn | pRefOut | pXorOut | pCheck |
		pRes | pName
)

var paramNames = []string{
	"width", "poly", "init", "refin", "refout", "xorout", "check",
	"residue", "name",
}

// BadModelError collects everything wrong with one description line. The
// model is unusable when this is returned.
type BadModelError struct {
	Name     string // model name if one was parsed, else "<no name>"
	Problems []string
}

func (e *BadModelError) Error() string {
	return e.Name + ": " + strings.Join(e.Problems, ", ")
}

// readVar reads one name=value pair from s, skipping leading white space.
// The value may be double-quoted to include white space, with "" escaping a
// quote. It returns the name, the value, and the unconsumed remainder of s.
// ok is false at the end of the string. A malformed pair (no name, no "=",
// no value, or no closing quote) returns an error.
func readVar(s string) (name, value, rest string, ok bool, err error) {
	next := 0
	for next < len(s) && isSpace(s[next]) {
		next++
	}
	if next == len(s) {
		return "", "", "", false, nil
	}

	// get name
	start := next
	for next < len(s) && !isSpace(s[next]) && s[next] != '=' {
		next++
	}
	if next == len(s) || s[next] != '=' || next == start {
		return "", "", "", false,
			errors.Errorf("bad syntax (not 'parm=value') at: %q", s[start:])
	}
	name = s[start:next]
	next++

	// get value
	if next < len(s) && s[next] == '"' {
		next++
		var val strings.Builder
		for {
			q := strings.IndexByte(s[next:], '"')
			if q < 0 {
				return "", "", "", false,
					errors.Errorf("unclosed quote at: %q", s[start:])
			}
			val.WriteString(s[next : next+q])
			next += q + 1
			if next < len(s) && s[next] == '"' { // escaped quote
				val.WriteByte('"')
				next++
				continue
			}
			break
		}
		value = val.String()
	} else {
		start = next
		for next < len(s) && !isSpace(s[next]) {
			next++
		}
		if next == start {
			return "", "", "", false,
				errors.Errorf("missing value at: %q", s[start:])
		}
		value = s[start:next]
	}

	// skip terminating character if not end of string
	if next < len(s) {
		next++
	}
	return name, value, s[next:], true, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f' || c == '\r' ||
		c == '\n'
}

// strToBig converts a string of digits to a double-word unsigned integer.
// A "0x" or "0X" prefix selects hexadecimal, a "0" prefix octal, otherwise
// decimal (no leading zero). A leading "-" returns the 128-bit two's
// complement of the number that follows. An empty digit string, a stray
// character, or overflow of the double-length integer is an error.
func strToBig(s string) (hi, lo uint64, err error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		s = s[1:]
		neg = true
	}

	base := uint64(10)
	if strings.HasPrefix(s, "0") {
		s = s[1:]
		base = 8
		if strings.HasPrefix(s, "x") || strings.HasPrefix(s, "X") {
			s = s[1:]
			base = 16
		}
	} else if len(s) == 0 {
		return 0, 0, errors.New("empty number")
	}

	pos := 0
	for ; pos < len(s); pos++ {
		var d uint64
		switch c := s[pos]; {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case base == 16 && c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case base == 16 && c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, 0, errors.Errorf("invalid digit %q", c)
		}
		if d >= base {
			return 0, 0, errors.Errorf("invalid digit %q", s[pos])
		}
		var carry uint64
		switch base {
		case 8:
			carry = hi >> 61
			hi = hi<<3 | lo>>61
			lo = lo<<3 | d
		case 16:
			carry = hi >> 60
			hi = hi<<4 | lo>>60
			lo = lo<<4 | d
		default:
			// n = 2n + 8n + d, watching for 128-bit overflow
			carry = hi>>63 | hi>>61
			h2, l2 := hi<<1|lo>>63, lo<<1
			h8, l8 := hi<<3|lo>>61, lo<<3
			var c, c2 uint64
			lo, c = bits.Add64(l2, l8, 0)
			hi, c2 = bits.Add64(h2, h8, c)
			carry |= c2
			lo, c = bits.Add64(lo, d, 0)
			hi, c2 = bits.Add64(hi, 0, c)
			carry |= c2
		}
		if carry != 0 {
			return 0, 0, errors.New("number out of range")
		}
	}
	if pos == 0 && base != 8 {
		return 0, 0, errors.New("empty number")
	}

	if neg {
		lo = ^lo + 1
		hi = ^hi
		if lo == 0 {
			hi++
		}
	}
	return hi, lo, nil
}

// normalBig checks that the bits of hi/lo above width bits are either all
// zeros or all ones. All ones (a negative literal) are cleared to zeros.
// ok is false when the bits are neither.
func normalBig(hi, lo uint64, width int) (uint64, uint64, bool) {
	ones := ^uint64(0)
	var maskLo, maskHi uint64
	if width < WordBits {
		maskLo = ones << uint(width)
	}
	switch {
	case width <= WordBits:
		maskHi = ones
	case width < WordBits*2:
		maskHi = ones << uint(width-WordBits)
	}
	if lo&maskLo == maskLo && hi&maskHi == maskHi {
		return hi &^ maskHi, lo &^ maskLo, true
	}
	return hi, lo, lo&maskLo == 0 && hi&maskHi == 0
}

// Read parses a CRC model description from one line. The recognized
// parameters are width, poly, init, refin, refout, xorout, check, residue,
// and name, abbreviatable to w, p, i, r, refo, x, c, res, and n. Values
// follow an "=" with no surrounding space; name may be double-quoted.
// Numbers may be decimal, octal (leading 0), or hexadecimal (leading 0x),
// optionally negated for the two's complement within width bits.
//
// init, xorout, and residue default to zero; a missing refin or refout
// copies the other; all remaining parameters are required. Poly must be odd
// and all values must fit in width bits. The returned model has not been
// processed: Init still holds the initial register contents.
func Read(line string) (*Model, error) {
	var m Model
	var got, bad, rep uint
	var unknown []string
	syntax := ""

	num := func(bit uint, value string, lo, hi *uint64) {
		if got&bit != 0 {
			rep |= bit
			return
		}
		h, l, err := strToBig(value)
		if err != nil {
			bad |= bit
			return
		}
		*lo, *hi = l, h
		got |= bit
	}
	boolean := func(bit uint, value string, dst *bool) {
		if got&bit != 0 {
			rep |= bit
			return
		}
		if !hasPrefixFold("true", value) && !hasPrefixFold("false", value) {
			bad |= bit
			return
		}
		*dst = value[0] == 't' || value[0] == 'T'
		got |= bit
	}

	rest := line
	for {
		name, value, next, ok, err := readVar(rest)
		if err != nil {
			syntax = err.Error()
			break
		}
		if !ok {
			break
		}
		rest = next
		switch {
		case hasPrefixFold("width", name):
			if got&pWidth != 0 {
				rep |= pWidth
				break
			}
			hi, lo, err := strToBig(value)
			if err != nil || hi != 0 || lo > 2*WordBits {
				bad |= pWidth
				break
			}
			m.Width = int(lo)
			got |= pWidth
		case hasPrefixFold("poly", name):
			num(pPoly, value, &m.Poly, &m.PolyHi)
		case hasPrefixFold("init", name):
			num(pInit, value, &m.Init, &m.InitHi)
		case hasPrefixFold("refin", name):
			boolean(pRefIn, value, &m.Ref)
		case len(name) >= 4 && hasPrefixFold("refout", name):
			boolean(pRefOut, value, &m.Rev)
		case hasPrefixFold("xorout", name):
			num(pXorOut, value, &m.XorOut, &m.XorOutHi)
		case hasPrefixFold("check", name):
			num(pCheck, value, &m.Check, &m.CheckHi)
		case len(name) >= 3 && hasPrefixFold("residue", name):
			num(pRes, value, &m.Res, &m.ResHi)
		case hasPrefixFold("name", name):
			if got&pName != 0 {
				rep |= pName
				break
			}
			m.Name = value
			got |= pName
		default:
			unknown = append(unknown, name)
		}
	}

	// provide defaults for some parameters
	if got&pInit == 0 {
		got |= pInit
	}
	switch got & (pRefIn | pRefOut) {
	case pRefIn:
		m.Rev = m.Ref
		got |= pRefOut
	case pRefOut:
		m.Ref = m.Rev
		got |= pRefIn
	}
	if got&pXorOut == 0 {
		got |= pXorOut
	}
	if got&pRes == 0 {
		got |= pRes
	}

	// check for parameter values out of range
	if got&pWidth != 0 {
		if m.Width < 1 || m.Width > WordBits*2 {
			bad |= pWidth
		} else {
			var ok bool
			if got&pPoly != 0 {
				m.PolyHi, m.Poly, ok = normalBig(m.PolyHi, m.Poly, m.Width)
				if !ok || m.Poly&1 != 1 {
					bad |= pPoly
				}
			}
			if m.InitHi, m.Init, ok = normalBig(m.InitHi, m.Init, m.Width); !ok {
				bad |= pInit
			}
			if m.XorOutHi, m.XorOut, ok = normalBig(m.XorOutHi, m.XorOut, m.Width); !ok {
				bad |= pXorOut
			}
			if got&pCheck != 0 {
				if m.CheckHi, m.Check, ok = normalBig(m.CheckHi, m.Check, m.Width); !ok {
					bad |= pCheck
				}
			}
			if m.ResHi, m.Res, ok = normalBig(m.ResHi, m.Res, m.Width); !ok {
				bad |= pRes
			}
		}
	}

	// collect the noted problems
	if syntax == "" && len(unknown) == 0 && rep == 0 && bad == 0 &&
		got == pAll {
		return &m, nil
	}
	name := m.Name
	if name == "" {
		name = "<no name>"
	}
	e := &BadModelError{Name: name}
	if syntax != "" {
		e.Problems = append(e.Problems, syntax)
	}
	for _, u := range unknown {
		e.Problems = append(e.Problems, "unknown parameter "+u)
	}
	for k, p := range paramNames {
		if rep&(1<<uint(k)) != 0 {
			e.Problems = append(e.Problems, p+" repeated")
		}
	}
	for k, p := range paramNames {
		if bad&(1<<uint(k)) != 0 {
			e.Problems = append(e.Problems, p+" out of range")
		}
	}
	miss := (got ^ pAll) &^ bad
	for k, p := range paramNames {
		if miss&(1<<uint(k)) != 0 {
			e.Problems = append(e.Problems, p+" missing")
		}
	}
	return nil, e
}

// hasPrefixFold reports whether prefix is a leading, case-insensitive
// abbreviation of full (and not longer than full).
func hasPrefixFold(full, prefix string) bool {
	return len(prefix) > 0 && len(prefix) <= len(full) &&
		strings.EqualFold(full[:len(prefix)], prefix)
}

// LineReader reads newline- or EOF-terminated lines, deleting embedded NULs
// and stripping trailing white space, so catalogue files can be fed to the
// parser verbatim.
type LineReader struct {
	sc   *bufio.Scanner
	line string
}

func NewLineReader(r io.Reader) *LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	return &LineReader{sc: sc}
}

// Scan advances to the next line, returning false at EOF or on error.
func (lr *LineReader) Scan() bool {
	if !lr.sc.Scan() {
		return false
	}
	line := strings.ReplaceAll(lr.sc.Text(), "\x00", "")
	lr.line = strings.TrimRight(line, " \t\v\f\r\n")
	return true
}

// Line returns the most recently scanned line, possibly empty.
func (lr *LineReader) Line() string { return lr.line }

// Err returns the first error encountered, nil at a clean EOF.
func (lr *LineReader) Err() error {
	return errors.Wrap(lr.sc.Err(), "reading models")
}
