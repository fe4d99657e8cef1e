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

// mincrc reads CRC model descriptions on stdin, one per line, and writes
// each back out maximally compressed: abbreviated parameter names, default
// parameters dropped, the name quoted only when necessary, and numbers in
// decimal, hexadecimal, or negated form, whichever is shortest.
package main

import (
	"fmt"
	"os"

	"github.com/bemasher/anycrc/model"
	log "github.com/sirupsen/logrus"
)

func main() {
	lr := model.NewLineReader(os.Stdin)
	for lr.Scan() {
		if lr.Line() == "" {
			continue
		}
		m, err := model.Read(lr.Line())
		if err != nil {
			log.Errorf("unusable model: %v", err)
			continue
		}
		fmt.Println(m.MinLine())
	}
	if err := lr.Err(); err != nil {
		log.Fatal(err)
	}
}
