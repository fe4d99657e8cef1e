package gen

import (
	"os"

	"github.com/bemasher/anycrc/model"
	"github.com/pkg/errors"
)

// All accumulates the aggregate sources written alongside the per-model
// files: test_src.[ch], a runtime verification of every generated CRC
// against its check value, a random buffer, sub-byte feeding, and a split
// combination; and allcrcs.[ch], a table of {name, match, width, function}
// for discovering the generated routines at run time.
type All struct {
	defs, test, allh, allc *os.File
}

// NewAll creates the four aggregate files in dir and writes their
// prologues. Existing files are not overwritten; the error then wraps
// ErrExists.
func NewAll(dir string) (a *All, err error) {
	a = &All{}
	a.defs, a.test, err = CreateSource(dir, "test_src")
	if err != nil {
		return nil, err
	}
	a.allh, a.allc, err = CreateSource(dir, "allcrcs")
	if err != nil {
		a.defs.Close()
		a.test.Close()
		return nil, err
	}

	defer recoverEmit(&err)
	d := emitter{a.defs}
	d.s("// test_src.h -- headers of the CRC routines under test\n")
	d.s("// Generated by anycrc. Do not edit.\n\n")

	t := emitter{a.test}
	t.s("// test_src.c -- verify the generated CRC routines\n")
	t.s("// Generated by anycrc. Do not edit.\n\n")
	t.s("#include <stdio.h>\n")
	t.s("#include <stdlib.h>\n")
	t.s("#include <stdint.h>\n")
	t.s("#include <time.h>\n")
	t.s("#include \"test_src.h\"\n")
	t.s("\nint main(void) {\n")
	t.s("    unsigned char data[31];\n")
	t.s("    {\n")
	t.s("        unsigned max = (unsigned)RAND_MAX + 1;\n")
	t.s("        int shft = 0;\n")
	t.s("        do {\n")
	t.s("            max >>= 1;\n")
	t.s("            shft++;\n")
	t.s("        } while (max > 256);\n")
	t.s("        srand(time(NULL));\n")
	t.s("        for (int i = 0; i < 997; i++)\n")
	t.s("            (void)rand();\n")
	t.s("        size_t n = sizeof(data);\n")
	t.s("        do {\n")
	t.s("            data[--n] = rand() >> shft;\n")
	t.s("        } while (n);\n")
	t.s("    }\n")
	t.s("    uintmax_t init, blot, crc;\n")
	t.s("    int err = 0;\n")

	h := emitter{a.allh}
	h.s("// allcrcs.h -- table of all generated CRC functions\n")
	h.s("// Generated by anycrc. Do not edit.\n\n")
	h.s("typedef uintmax_t (*crc_f)(uintmax_t, void const *, size_t);\n")
	h.s("\nstruct {\n")
	h.s("    char const *name;\n")
	h.s("    char const *match;\n")
	h.s("    unsigned short width;\n")
	h.s("    crc_f func;\n")
	h.s("} const all[] = {\n")

	c := emitter{a.allc}
	c.s("// allcrcs.c -- uniform access to all generated CRC functions\n")
	c.s("// Generated by anycrc. Do not edit.\n\n")
	c.s("#include <stdint.h>\n")
	c.s("#include <stddef.h>\n")
	return a, nil
}

// Add appends the verification code and the discovery row for one generated
// model. name must be the Norm of the model.
func (a *All) Add(m *model.Model, name string) (err error) {
	defer recoverEmit(&err)

	d := emitter{a.defs}
	d.f("#include \"%s.h\"\n", name)

	t := emitter{a.test}
	t.f("\n    // %s\n", m.Name)
	t.f("    init = %s_bit(0, NULL, 0);\n", name)
	t.f("    blot = init | ~((((uintmax_t)1 << (%d - 1)) << 1) - 1);\n",
		m.Width)
	t.f("    if (%s_bit(blot, \"123456789\", 9) != %s)\n", name, hx(m.Check))
	t.f("        fputs(\"bit-wise mismatch for %s\\n\", stderr), err++;\n",
		name)
	t.f("    crc = %s_bit(blot, data + 1, sizeof(data) - 1);\n", name)
	if m.Ref {
		t.f("    if (%s_bit(blot, \"\\xda\", 1) !=\n", name)
		t.f("        %s_rem(%s_rem(blot, 0xda, 3), 0x1b, 5))\n", name, name)
	} else {
		t.f("    if (%s_bit(blot, \"\\xda\", 1) !=\n", name)
		t.f("        %s_rem(%s_rem(blot, 0xda, 3), 0xd0, 5))\n", name, name)
	}
	t.f("        fputs(\"small bits mismatch for %s\\n\", stderr), err++;\n",
		name)
	t.f("    if (%s_byte(0, NULL, 0) != init ||\n", name)
	t.f("        %s_byte(blot, \"123456789\", 9) != %s ||\n", name,
		hx(m.Check))
	t.f("        %s_byte(blot, data + 1, sizeof(data) - 1) != crc)\n", name)
	t.f("        fputs(\"byte-wise mismatch for %s\\n\", stderr), err++;\n",
		name)
	t.f("    if (%s_word(0, NULL, 0) != init ||\n", name)
	t.f("        %s_word(blot, \"123456789\", 9) != %s ||\n", name,
		hx(m.Check))
	t.f("        %s_word(blot, data + 1, sizeof(data) - 1) != crc)\n", name)
	t.f("        fputs(\"word-wise mismatch for %s\\n\", stderr), err++;\n",
		name)
	t.f("    if (%s_comb(%s_bit(init, data + 1, 15),\n", name, name)
	t.f("                %s_bit(init, data + 16, 15), 15) != crc)\n", name)
	t.f("        fputs(\"combine mismatch for %s\\n\", stderr), err++;\n",
		name)

	c := emitter{a.allc}
	c.f("\n#include \"%s.h\"\n", name)
	c.f("uintmax_t %s(uintmax_t crc, void const *mem, size_t len) {\n", name)
	c.f("    return %s_word(crc, mem, len);\n", name)
	c.s("}\n")

	h := emitter{a.allh}
	h.f("    {%q, %q, %d, %s},\n", m.Name, Match(name), m.Width, name)
	return nil
}

// Close writes the epilogues and closes the four files.
func (a *All) Close() (err error) {
	defer func() {
		for _, f := range []*os.File{a.defs, a.test, a.allh, a.allc} {
			if e := f.Close(); e != nil && err == nil {
				err = errors.Wrap(e, "closing aggregate sources")
			}
		}
	}()
	defer recoverEmit(&err)

	t := emitter{a.test}
	t.s("\n    // done\n")
	t.s("    fputs(err ? \"** verification failed\\n\" :\n")
	t.s("                \"-- all good\\n\", stderr);\n")
	t.s("    return err ? 1 : 0;\n")
	t.s("}\n")

	h := emitter{a.allh}
	h.s("    {\"\", \"\", 0, NULL}\n")
	h.s("};\n")

	c := emitter{a.allc}
	c.s("\n#include \"allcrcs.h\"\n")
	return nil
}
