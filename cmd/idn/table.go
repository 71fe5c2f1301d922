// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// stringWidth returns the number of terminal cells |text| occupies on its widest line. Each grapheme
// cluster is as wide as its first rune of non-zero width, so combining marks take no space.
func stringWidth(text string) int {
	var maxWidth int
	for _, line := range strings.Split(text, "\n") {
		var width int
		g := uniseg.NewGraphemes(line)
		for g.Next() {
			var chWidth int
			for _, r := range g.Runes() {
				chWidth = runewidth.RuneWidth(r)
				if chWidth > 0 {
					break
				}
			}
			width += chWidth
		}
		if width > maxWidth {
			maxWidth = width
		}
	}
	return maxWidth
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// writeTable prints |rows| under |cols| as a boxed fixed width table.
func writeTable(w io.Writer, cols []string, rows [][]string) {
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = stringWidth(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := stringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var sep strings.Builder
	sep.WriteString("+")
	for _, width := range widths {
		sep.WriteString(strings.Repeat("-", width+2))
		sep.WriteString("+")
	}

	writeRow := func(cells []string) {
		var sb strings.Builder
		sb.WriteString("|")
		for i, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[i]-stringWidth(cell)+1))
			sb.WriteString("|")
		}
		fmt.Fprintln(w, sb.String())
	}

	fmt.Fprintln(w, sep.String())
	writeRow(cols)
	fmt.Fprintln(w, sep.String())
	for _, row := range rows {
		writeRow(row)
	}
	fmt.Fprintln(w, sep.String())
}
