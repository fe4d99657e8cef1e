package model

import (
	"fmt"
	"strconv"
	"strings"
)

// minNum renders hi/lo in the fewest characters: decimal, hexadecimal with
// its 0x prefix, or the negated two's complement within width bits when that
// is shorter still.
func minNum(hi, lo uint64, width int) string {
	best := func(hi, lo uint64) string {
		hex := "0x" + strconv.FormatUint(lo, 16)
		if hi != 0 {
			hex = fmt.Sprintf("0x%x%016x", hi, lo)
			return hex // decimal beyond 64 bits is never shorter
		}
		dec := strconv.FormatUint(lo, 10)
		if len(hex) < len(dec) {
			return hex
		}
		return dec
	}
	s := best(hi, lo)
	if lo == 0 && hi == 0 {
		return s
	}

	// two's complement of the value in width bits
	nl := ^lo + 1
	nh := ^hi
	if nl == 0 {
		nh++
	}
	nh, nl, _ = normalBig(nh, nl, width)
	if neg := "-" + best(nh, nl); len(neg) < len(s) {
		return neg
	}
	return s
}

// quoteName returns name double-quoted only if it contains white space, with
// embedded quotes doubled.
func quoteName(name string) string {
	if strings.IndexFunc(name, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\v' || r == '\f' || r == '\r' ||
			r == '\n'
	}) < 0 {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// MinLine renders the model as its minimum-length parameter line:
// abbreviated parameter names, optional parameters dropped when at their
// default, numbers in whichever base is shorter, and the name quoted only
// when it must be. The model must not have been processed. Parsing the
// result yields an equivalent model.
func (m *Model) MinLine() string {
	var b strings.Builder
	fmt.Fprintf(&b, "w=%d ", m.Width)
	fmt.Fprintf(&b, "p=%s ", minNum(m.PolyHi, m.Poly, m.Width))
	if m.Init != 0 || m.InitHi != 0 {
		fmt.Fprintf(&b, "i=%s ", minNum(m.InitHi, m.Init, m.Width))
	}
	fmt.Fprintf(&b, "r=%s ", tf(m.Ref))
	if m.Ref != m.Rev {
		fmt.Fprintf(&b, "refo=%s ", tf(m.Rev))
	}
	if m.XorOut != 0 || m.XorOutHi != 0 {
		fmt.Fprintf(&b, "x=%s ", minNum(m.XorOutHi, m.XorOut, m.Width))
	}
	fmt.Fprintf(&b, "c=%s ", minNum(m.CheckHi, m.Check, m.Width))
	if m.Res != 0 || m.ResHi != 0 {
		fmt.Fprintf(&b, "res=%s ", minNum(m.ResHi, m.Res, m.Width))
	}
	fmt.Fprintf(&b, "n=%s", quoteName(m.Name))
	return b.String()
}

func tf(v bool) string {
	if v {
		return "t"
	}
	return "f"
}
