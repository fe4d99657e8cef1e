package model

import "testing"

var roundTrip = []string{
	`width=3 poly=0x3 init=0x0 refin=false refout=false xorout=0x7 check=0x4 residue=0x2 name="CRC-3/GSM"`,
	`width=16 poly=0x1021 init=0x0000 refin=true refout=true xorout=0x0000 check=0x2189 residue=0x0000 name="CRC-16/KERMIT"`,
	`width=12 poly=0x80f init=0x000 refin=false refout=true xorout=0x000 check=0xdaf residue=0x000 name="CRC-12/UMTS"`,
	`width=32 poly=0x04c11db7 init=0xffffffff refin=true refout=true xorout=0xffffffff check=0xcbf43926 residue=0xdebb20e3 name="CRC-32/ISO-HDLC"`,
	`width=64 poly=0x42f0e1eba9ea3693 init=0xffffffffffffffff refin=true refout=true xorout=0xffffffffffffffff check=0x995dc9bbdf1939fa residue=0x49958c9abd7d353f name="CRC-64/XZ"`,
	`width=82 poly=0x0308c0111011401440411 init=0 refin=true refout=true xorout=0 check=0x09ea83f625023801fd612 residue=0 name="CRC-82/DARC"`,
	`width=8 poly=0x07 init=0x00 refin=false refout=false xorout=0x00 check=0xf4 residue=0x00 name="a spaced name"`,
}

// TestMinRoundTrip parses a line, re-emits it minimized, parses the result,
// and expects an equivalent model.
func TestMinRoundTrip(t *testing.T) {
	for _, line := range roundTrip {
		m, err := Read(line)
		if err != nil {
			t.Fatal(err)
		}
		min := m.MinLine()
		if len(min) > len(line) {
			t.Errorf("minimized %q longer than %q", min, line)
		}
		back, err := Read(min)
		if err != nil {
			t.Fatalf("re-reading %q: %v", min, err)
		}
		if *back != *m {
			t.Errorf("round trip of %q through %q changed the model",
				line, min)
		}
	}
}

func TestMinLine(t *testing.T) {
	cases := []struct {
		line, want string
	}{
		{
			"w=16 p=0x1021 r=t c=0x2189 n=KERMIT",
			"w=16 p=4129 r=t c=8585 n=KERMIT",
		},
		{
			// all-ones values come out as -1, decimal beats hex here
			"w=32 p=0x04c11db7 i=0xffffffff r=t x=0xffffffff c=0xcbf43926 n=C",
			"w=32 p=79764919 i=-1 r=t x=-1 c=3421780262 n=C",
		},
		{
			// defaults are dropped, differing refout is kept
			"w=12 p=0x80f i=0 r=f refo=t x=0 c=0xdaf n=U",
			"w=12 p=2063 r=f refo=t c=3503 n=U",
		},
		{
			`w=8 p=7 r=f c=0xf4 n="plain"`,
			"w=8 p=7 r=f c=244 n=plain",
		},
		{
			`w=8 p=7 r=f c=0xf4 n="with space"`,
			`w=8 p=7 r=f c=244 n="with space"`,
		},
	}
	for _, c := range cases {
		m, err := Read(c.line)
		if err != nil {
			t.Fatal(err)
		}
		if got := m.MinLine(); got != c.want {
			t.Errorf("MinLine of %q = %q, want %q", c.line, got, c.want)
		}
	}
}

func TestMinNum(t *testing.T) {
	cases := []struct {
		hi, lo uint64
		width  int
		want   string
	}{
		{0, 0, 8, "0"},
		{0, 7, 8, "7"},
		{0, 4129, 16, "4129"},
		{0, 0x04c11db7, 32, "79764919"},
		{0, 0xffffffffff, 41, "0xffffffffff"},
		{0, 0xffffffff, 32, "-1"},
		{0, 0xfffffffe, 32, "-2"},
		{0x09ea8, 0x3f625023801fd612, 82, "0x9ea83f625023801fd612"},
	}
	for _, c := range cases {
		if got := minNum(c.hi, c.lo, c.width); got != c.want {
			t.Errorf("minNum(0x%X, 0x%X, %d) = %q, want %q",
				c.hi, c.lo, c.width, got, c.want)
		}
	}
}
