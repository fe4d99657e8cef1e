package model

import (
	"strings"
	"testing"
)

func TestReadKermit(t *testing.T) {
	line := `width=16 poly=0x1021 init=0x0000 refin=true refout=true ` +
		`xorout=0x0000 check=0x2189 residue=0x0000 name="KERMIT"`
	m, err := Read(line)
	if err != nil {
		t.Fatal(err)
	}
	if m.Width != 16 || m.Poly != 0x1021 || !m.Ref || !m.Rev ||
		m.Check != 0x2189 || m.Name != "KERMIT" {
		t.Fatalf("parsed %+v", m)
	}
}

func TestReadAbbreviated(t *testing.T) {
	m, err := Read("w=16 p=4129 r=t c=8585 n=KERMIT")
	if err != nil {
		t.Fatal(err)
	}
	if m.Width != 16 || m.Poly != 0x1021 || !m.Ref || !m.Rev ||
		m.Check != 0x2189 || m.Name != "KERMIT" {
		t.Fatalf("parsed %+v", m)
	}
	// refout copies the missing refin as well
	m, err = Read("w=16 p=4129 refo=t c=8585 n=KERMIT")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Ref || !m.Rev {
		t.Fatalf("refin not copied from refout: %+v", m)
	}
}

func TestReadBases(t *testing.T) {
	// octal, decimal, and hexadecimal all describe the same polynomial
	for _, p := range []string{"0x1021", "4129", "010041"} {
		m, err := Read("w=16 p=" + p + " r=t c=0x2189 n=K")
		if err != nil {
			t.Fatal(err)
		}
		if m.Poly != 0x1021 {
			t.Fatalf("p=%s parsed as 0x%X", p, m.Poly)
		}
	}
}

func TestReadNegative(t *testing.T) {
	m, err := Read("w=32 p=0x04c11db7 i=-1 r=t x=-1 c=0xcbf43926 n=CRC-32")
	if err != nil {
		t.Fatal(err)
	}
	if m.Init != 0xffffffff || m.XorOut != 0xffffffff {
		t.Fatalf("init 0x%X xorout 0x%X", m.Init, m.XorOut)
	}
}

func TestReadQuoted(t *testing.T) {
	m, err := Read(`w=8 p=7 r=f c=0xf4 n="a ""quoted"" name"`)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != `a "quoted" name` {
		t.Fatalf("name %q", m.Name)
	}
}

func TestReadDoubleWide(t *testing.T) {
	m, err := Read(`width=82 poly=0x0308c0111011401440411 init=0 ` +
		`refin=true refout=true xorout=0 ` +
		`check=0x09ea83f625023801fd612 residue=0 name="CRC-82/DARC"`)
	if err != nil {
		t.Fatal(err)
	}
	if m.PolyHi != 0x0308c || m.Poly != 0x0111011401440411 {
		t.Fatalf("poly 0x%X%016X", m.PolyHi, m.Poly)
	}
	if m.CheckHi != 0x09ea8 || m.Check != 0x3f625023801fd612 {
		t.Fatalf("check 0x%X%016X", m.CheckHi, m.Check)
	}
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"w=16 p=4129 r=t c=8585", "name missing"},
		{"w=16 p=4129 c=8585 n=K", "refin missing"},
		{"w=16 r=t c=8585 n=K", "poly missing"},
		{"w=16 p=4129 p=4129 r=t c=8585 n=K", "poly repeated"},
		{"w=16 p=4128 r=t c=8585 n=K", "poly out of range"},
		{"w=16 p=0x11021 r=t c=8585 n=K", "poly out of range"},
		{"w=0 p=1 r=t c=0 n=K", "width out of range"},
		{"w=129 p=1 r=t c=0 n=K", "width out of range"},
		{"w=16 p=4129 r=maybe c=8585 n=K", "refin out of range"},
		{"w=16 p=4129 r=t c=8585 n=K bogus=1", "unknown parameter bogus"},
		{"w=16 p=4129 r=t c=8585 n=K junk", "bad syntax"},
		{`w=16 p=4129 r=t c=8585 n="K`, "unclosed quote"},
	}
	for _, c := range cases {
		_, err := Read(c.line)
		if err == nil {
			t.Errorf("%q: no error", c.line)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%q: error %q does not mention %q",
				c.line, err, c.want)
		}
	}
}

func TestProcess(t *testing.T) {
	m, err := Read(`width=32 poly=0x04c11db7 init=0xffffffff refin=true ` +
		`refout=true xorout=0xffffffff check=0xcbf43926 name="CRC-32"`)
	if err != nil {
		t.Fatal(err)
	}
	m.Process()
	if m.Poly != 0xedb88320 {
		t.Errorf("reflected poly 0x%X", m.Poly)
	}
	// init now holds the CRC of an empty message
	if m.Init != 0 {
		t.Errorf("empty-message init 0x%X", m.Init)
	}
	if m.Rev {
		t.Error("rev set with refin == refout")
	}
}

func TestLineReader(t *testing.T) {
	in := "first  \t\nsecond\x00line\n\nthird"
	lr := NewLineReader(strings.NewReader(in))
	var lines []string
	for lr.Scan() {
		lines = append(lines, lr.Line())
	}
	if err := lr.Err(); err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "secondline", "", "third"}
	if len(lines) != len(want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, lines[i], want[i])
		}
	}
}
