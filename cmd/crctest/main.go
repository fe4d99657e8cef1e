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

// crctest reads CRC model descriptions on stdin, one per line, and verifies
// the check value of each using the bit-wise, byte-wise, and word-wise
// algorithms, along with the model's residue and the combination of a split
// check string. Models wider than the word pass through the bit-wise and
// residue tests only. The exit status is non-zero if any test failed.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bemasher/anycrc/crc"
	"github.com/bemasher/anycrc/model"
	log "github.com/sirupsen/logrus"
)

const (
	tBit = 1 << iota
	tRes
	tWide
	tByte
	tWord
	tComb

	tAll = tBit | tRes | tByte | tWord | tComb
)

func main() {
	// the check string, on and one off a word boundary
	test := make([]byte, 32)
	copy(test, "123456789")
	copy(test[15:], "123456789")

	var inval, num, good, goodres, numall, goodbyte, goodword, goodcomb int

	lr := model.NewLineReader(os.Stdin)
	for lr.Scan() {
		if lr.Line() == "" {
			continue
		}
		m, err := model.Read(lr.Line())
		if err != nil {
			log.Errorf("unusable model: %v", err)
			inval++
			continue
		}
		m.Process()

		tests := 0

		// bit-wise
		hi, lo := crc.BitwiseDbl(m, 0, 0, nil)
		hi, lo = crc.BitwiseDbl(m, hi, lo, test[:9])
		if lo == m.Check && hi == m.CheckHi {
			tests |= tBit
			good++
		}

		// residue
		if hi, lo := crc.Residue(m); lo == m.Res && hi == m.ResHi {
			tests |= tRes
			goodres++
		}

		if m.Width > model.WordBits {
			tests |= tWide
		} else {
			// initialize tables for byte-wise and word-wise
			crc.TableWordwise(m, true, model.WordBits)

			// byte-wise
			c := crc.Bytewise(m, 0, nil)
			if crc.Bytewise(m, c, test[:9]) == m.Check {
				tests |= tByte
				goodbyte++
			}

			// word-wise, on and off a word boundary to exercise all loops
			c = crc.Wordwise(m, 0, nil)
			if crc.Wordwise(m, c, test[:9]) == m.Check {
				c = crc.Wordwise(m, 0, nil)
				if crc.Wordwise(m, c, test[15:24]) == m.Check {
					tests |= tWord
					goodword++
				}
			}

			// combination of the split check string
			init := crc.Bitwise(m, 0, nil)
			crc1 := crc.Bitwise(m, init, test[:5])
			crc2 := crc.Bitwise(m, init, test[5:9])
			if crc.Combine(m, crc1, crc2, 4) == m.Check {
				tests |= tComb
				goodcomb++
			}
			numall++
		}
		num++

		var fails []string
		if tests&tBit == 0 {
			fails = append(fails, "bit fail")
		}
		if tests&tRes == 0 {
			fails = append(fails, "residue fail")
		}
		if tests&tWide == 0 {
			if tests&tByte == 0 {
				fails = append(fails, "byte fail")
			}
			if tests&tWord == 0 {
				fails = append(fails, "word fail")
			}
			if tests&tComb == 0 {
				fails = append(fails, "combine fail")
			}
		}
		switch {
		case tests&tWide != 0 && tests&(tBit|tRes) == tBit|tRes:
			fmt.Printf("%s: bit, residue passed (CRC too long for others)\n",
				m.Name)
		case tests&tWide != 0:
			fmt.Printf("%s: %s (CRC too long for others)\n",
				m.Name, strings.Join(fails, ", "))
		case tests == tAll:
			// passing models only appear in the summary counts
		case tests == 0:
			fmt.Printf("%s: all tests failed\n", m.Name)
		default:
			fmt.Printf("%s: %s\n", m.Name, strings.Join(fails, ", "))
		}
	}
	if err := lr.Err(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d models verified bit-wise out of %d usable "+
		"(%d unusable models)\n", good, num, inval)
	fmt.Printf("%d model residues verified out of %d usable\n", goodres, num)
	fmt.Printf("%d models verified byte-wise out of %d usable\n",
		goodbyte, numall)
	fmt.Printf("%d models verified word-wise out of %d usable\n",
		goodword, numall)
	fmt.Printf("%d model combinations verified out of %d usable\n",
		goodcomb, numall)
	if good == num && goodres == num && goodbyte == numall &&
		goodword == numall && goodcomb == numall {
		fmt.Println("-- all good")
		return
	}
	fmt.Println("** verification failed")
	os.Exit(1)
}
