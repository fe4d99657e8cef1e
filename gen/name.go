// Package gen generates standalone C sources computing one fixed CRC model:
// bit-wise, small-bit, byte-wise, word-wise, and combination routines with
// all constants inlined and all tables emitted as static arrays. The output
// depends only on <stddef.h> and <stdint.h>.
package gen

import (
	"fmt"
	"strings"

	"github.com/bemasher/anycrc/model"
)

// Norm makes the base name for a model's routines and source files. All
// names start with "crc" and the number of bits in the CRC, followed by the
// lowercased model name with any leading "crc[-0-9]*[/]" stripped, dashes
// turned into underscores, other non-alphanumerics dropped, and an
// underscore prepended if the suffix would start with a digit. The
// transformation is tuned to the names in the RevEng CRC catalogue.
func Norm(m *model.Model) string {
	var b strings.Builder
	fmt.Fprintf(&b, "crc%d", m.Width)

	id := m.Name
	if len(id) >= 3 && strings.EqualFold(id[:3], "crc") {
		id = id[3:]
		id = strings.TrimPrefix(id, "-")
		for len(id) > 0 && id[0] >= '0' && id[0] <= '9' {
			id = id[1:]
		}
		id = strings.TrimPrefix(id, "/")
	}
	first := true
	for k := 0; k < len(id); k++ {
		switch c := id[k]; {
		case isAlnum(c):
			if first && c >= '0' && c <= '9' {
				b.WriteByte('_')
			}
			first = false
			b.WriteByte(lower(c))
		case c == '-':
			first = false
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Match strips a normalized name down to the alphanumerics after "crc", the
// form used for lookups in the generated allcrcs table.
func Match(norm string) string {
	var b strings.Builder
	for k := 3; k < len(norm); k++ {
		if isAlnum(norm[k]) {
			b.WriteByte(norm[k])
		}
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
