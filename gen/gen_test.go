package gen

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/bemasher/anycrc/model"
	"github.com/pkg/errors"
)

func readFile(path string) (string, error) {
	buf, err := os.ReadFile(path)
	return string(buf), err
}

func readModel(t *testing.T, line string) *model.Model {
	t.Helper()
	m, err := model.Read(line)
	if err != nil {
		t.Fatal(err)
	}
	m.Process()
	return m
}

var (
	kermitLine = `width=16 poly=0x1021 init=0x0000 refin=true refout=true ` +
		`xorout=0x0000 check=0x2189 residue=0x0000 name="CRC-16/KERMIT"`
	smbusLine = `width=8 poly=0x07 init=0x00 refin=false refout=false ` +
		`xorout=0x00 check=0xf4 residue=0x00 name="CRC-8/SMBUS"`
	hdlcLine = `width=32 poly=0x04c11db7 init=0xffffffff refin=true ` +
		`refout=true xorout=0xffffffff check=0xcbf43926 ` +
		`residue=0xdebb20e3 name="CRC-32/ISO-HDLC"`
	bzip2Line = `width=32 poly=0x04c11db7 init=0xffffffff refin=false ` +
		`refout=false xorout=0xffffffff check=0xfc891918 ` +
		`residue=0xc704dd7b name="CRC-32/BZIP2"`
	umtsLine = `width=12 poly=0x80f init=0x000 refin=false refout=true ` +
		`xorout=0x000 check=0xdaf residue=0x000 name="CRC-12/UMTS"`
)

func TestNorm(t *testing.T) {
	cases := []struct {
		width int
		name  string
		want  string
	}{
		{16, "CRC-16/KERMIT", "crc16kermit"},
		{32, "CRC-32/ISO-HDLC", "crc32iso_hdlc"},
		{82, "CRC-82/DARC", "crc82darc"},
		{16, "CRC-A", "crc16a"},
		{8, "CRC-8/I-432-1", "crc8i_432_1"},
		{16, "XMODEM", "crc16xmodem"},
		{8, "3GPP", "crc8_3gpp"},
		{32, "CRC-32", "crc32"},
		{16, "A.B C", "crc16abc"},
	}
	for _, c := range cases {
		m := &model.Model{Width: c.width, Name: c.name}
		if got := Norm(m); got != c.want {
			t.Errorf("Norm(%d, %q) = %q, want %q",
				c.width, c.name, got, c.want)
		}
	}
}

func TestMatch(t *testing.T) {
	if got := Match("crc16kermit"); got != "16kermit" {
		t.Errorf("Match = %q", got)
	}
	if got := Match("crc32iso_hdlc"); got != "32isohdlc" {
		t.Errorf("Match = %q", got)
	}
}

func generate(t *testing.T, line string, little bool, wbits int) (string, string) {
	t.Helper()
	m := readModel(t, line)
	var head, code bytes.Buffer
	if err := Generate(m, Norm(m), little, wbits, &head, &code); err != nil {
		t.Fatal(err)
	}
	return head.String(), code.String()
}

func contains(t *testing.T, src, what string) {
	t.Helper()
	if !strings.Contains(src, what) {
		t.Errorf("generated source lacks %q", what)
	}
}

func TestGenerateKermit(t *testing.T) {
	head, code := generate(t, kermitLine, true, 64)

	contains(t, head, "uint16_t crc16kermit_bit(uint16_t crc, void const *mem, size_t len);")
	contains(t, head, "uint16_t crc16kermit_rem(uint16_t crc, unsigned val, unsigned bits);")
	contains(t, head, "uint16_t crc16kermit_comb(uint16_t crc1, uint16_t crc2, uintmax_t len2);")

	// reflected CRC on a little-endian target shares the byte table
	if strings.Contains(code, "table_byte") {
		t.Error("shared table case still emits table_byte")
	}
	contains(t, code, "table_word[0][(crc ^ *data++) & 0xff]")
	// reflected poly and x^1
	contains(t, code, "0x8408")
	contains(t, code, "0x4000")
	contains(t, code, "static uint16_t x8nmodp(uintmax_t n)")
	// zero init needs no exclusive-or in _comb
	if strings.Contains(code, "crc1 ^=") {
		t.Error("zero init emitted an exclusive-or in _comb")
	}
}

func TestGenerateSmbus(t *testing.T) {
	head, code := generate(t, smbusLine, true, 64)

	contains(t, head, "uint8_t crc8smbus_bit(uint8_t crc, void const *mem, size_t len);")
	contains(t, code, "static uint8_t const table_byte[] = {")
	contains(t, code, "static uint64_t const table_word[][256] = {")
	contains(t, code, "return 0;") // the empty-message CRC
	// refin == refout, so no revlow is needed
	if strings.Contains(code, "revlow") {
		t.Error("revlow emitted for refin == refout")
	}
}

func TestGenerateHdlc(t *testing.T) {
	_, code := generate(t, hdlcLine, true, 64)

	// xorout of all ones folds to a bitwise complement, and the folded
	// init is the zero CRC of an empty message
	contains(t, code, "crc = (uint32_t)~crc;")
	contains(t, code, "return 0;")
	// reflected multiply steps the recurrence right
	contains(t, code, "b = b & 1 ? (b >> 1) ^ 0xedb88320 : b >> 1;")
}

func TestGenerateBigEndian(t *testing.T) {
	_, code := generate(t, bzip2Line, false, 64)

	// not reflected on big endian: no swap, lanes walk up from byte 0
	if strings.Contains(code, "swaplow") || strings.Contains(code, "swapmax") {
		t.Error("swap helper emitted where table order matches the load")
	}
	contains(t, code, "table_word[0][w & 0xff]")
	contains(t, code, "table_word[7][w >> 56]")
}

func TestGenerateLittleEndianNonReflected(t *testing.T) {
	_, code := generate(t, bzip2Line, true, 64)

	contains(t, code, "static inline uint32_t swaplow(uint32_t x)")
	contains(t, code, "table_word[7][w & 0xff]")
	contains(t, code, "table_word[0][w >> 56]")
}

func TestGenerateWord32(t *testing.T) {
	_, code := generate(t, kermitLine, true, 32)

	contains(t, code, "static uint32_t const table_word[][256] = {")
	contains(t, code, "table_word[3][w & 0xff]")
	contains(t, code, "table_word[0][w >> 24]")
}

func TestGenerateWideFallsBack(t *testing.T) {
	_, code := generate(t, `width=64 poly=0x42f0e1eba9ea3693 init=0 `+
		`refin=false refout=false xorout=0 check=0x6c40df5f0b497347 `+
		`residue=0 name="CRC-64/ECMA-182"`, true, 32)
	contains(t, code, "return crc64ecma_182_byte(crc, mem, len);")
	if strings.Contains(code, "table_word") {
		t.Error("word tables emitted for a CRC wider than the word")
	}
}

func TestGenerateReversed(t *testing.T) {
	_, code := generate(t, umtsLine, true, 64)

	contains(t, code, "static inline uint16_t revlow(uint16_t crc)")
	contains(t, code, "crc = revlow(crc);")
	contains(t, code, "return crc >> 4;")
}

func TestCreateSource(t *testing.T) {
	dir := t.TempDir() + "/src"
	head, code, err := CreateSource(dir, "crc16kermit")
	if err != nil {
		t.Fatal(err)
	}
	head.Close()
	code.Close()

	_, _, err = CreateSource(dir, "crc16kermit")
	if errors.Cause(err) != ErrExists {
		t.Fatalf("recreating sources: %v", err)
	}
}

func TestAll(t *testing.T) {
	dir := t.TempDir() + "/src"
	all, err := NewAll(dir)
	if err != nil {
		t.Fatal(err)
	}
	m := readModel(t, kermitLine)
	if err := all.Add(m, Norm(m)); err != nil {
		t.Fatal(err)
	}
	if err := all.Close(); err != nil {
		t.Fatal(err)
	}

	for name, want := range map[string]string{
		"test_src.h": `#include "crc16kermit.h"`,
		"test_src.c": "combine mismatch for crc16kermit",
		"allcrcs.h":  `{"CRC-16/KERMIT", "16kermit", 16, crc16kermit},`,
		"allcrcs.c":  "return crc16kermit_word(crc, mem, len);",
	} {
		buf, err := readFile(dir + "/" + name)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf, want) {
			t.Errorf("%s lacks %q", name, want)
		}
	}
}
