// ANYCRC - A universal CRC calculator and code generator.
// Copyright (C) 2017 Douglas Hall
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// crcgen reads CRC model descriptions on stdin, one per line, and generates
// C tables and routines to compute each one. Each CRC goes into its own .h
// and .c source files in the "src" subdirectory of the current directory,
// which also receives test_src.[ch], a runtime test of every generated CRC,
// and allcrcs.[ch], a table of the generated functions. Existing files are
// never overwritten.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bemasher/anycrc/gen"
	"github.com/bemasher/anycrc/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Subdirectory for generated source files.
const src = "src"

var (
	bigEndian = flag.Bool("b", false, "generate for a big-endian target")
	litEndian = flag.Bool("l", false, "generate for a little-endian target (the default)")
	wordFour  = flag.Bool("4", false, "use 32-bit words for the word-wise tables")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: crcgen [-b] [-l] [-4] < crc-defs")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	little := !*bigEndian || *litEndian
	wbits := 64
	if *wordFour {
		wbits = 32
	}

	all, err := gen.NewAll(src)
	if err != nil {
		log.Fatalf("could not create test code files: %v", err)
	}

	lr := model.NewLineReader(os.Stdin)
	for lr.Scan() {
		if lr.Line() == "" {
			continue
		}
		m, err := model.Read(lr.Line())
		if err != nil {
			log.Errorf("unusable model, skipping: %v", err)
			continue
		}
		if m.Width > model.WordBits {
			log.Errorf("%s is too wide (%d bits), skipping",
				m.Name, m.Width)
			continue
		}
		m.Process()

		name := gen.Norm(m)
		head, code, err := gen.CreateSource(src, name)
		if err != nil {
			if errors.Cause(err) == gen.ErrExists {
				log.Errorf("%s/%s.[ch] exists, skipping", src, name)
			} else {
				log.Errorf("%s/%s.[ch] create error, skipping: %v",
					src, name, err)
			}
			continue
		}
		err = gen.Generate(m, name, little, wbits, head, code)
		code.Close()
		head.Close()
		if err != nil {
			log.Errorf("%s/%s.[ch] write error, skipping: %v",
				src, name, err)
			continue
		}
		if err := all.Add(m, name); err != nil {
			log.Fatalf("writing test code: %v", err)
		}
	}
	if err := lr.Err(); err != nil {
		log.Fatal(err)
	}
	if err := all.Close(); err != nil {
		log.Fatal(err)
	}
}
