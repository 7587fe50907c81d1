// Package dataset holds the flat, insertion-ordered table of quote rows that
// a collection run accumulates, along with its CSV and text renderings.
package dataset

import (
	"fmt"
	"strings"
)

// Dataset is an ordered sequence of rows. Rows may repeat; nothing enforces
// uniqueness of symbol and date. Methods never modify the receiver.
type Dataset struct {
	rows []Row
	// cols is the column order read from a file; it leads Columns so a
	// reloaded table keeps its header order.
	cols []string
}

func New(rows ...Row) Dataset {
	return Dataset{rows: append([]Row(nil), rows...)}
}

func (d Dataset) Len() int { return len(d.rows) }

// Rows returns a copy of the rows in insertion order.
func (d Dataset) Rows() []Row {
	return append([]Row(nil), d.rows...)
}

// Append returns a new dataset with rows added after the existing ones.
func (d Dataset) Append(rows ...Row) Dataset {
	out := make([]Row, 0, len(d.rows)+len(rows))
	out = append(out, d.rows...)
	out = append(out, rows...)
	return Dataset{rows: out, cols: d.cols}
}

// Concat returns d followed by other.
func (d Dataset) Concat(other Dataset) Dataset {
	out := d.Append(other.rows...)
	if len(other.cols) > 0 {
		out.cols = unionKeys(d.cols, other.cols)
	}
	return out
}

// Tail returns the last n rows, or all of them when fewer exist.
func (d Dataset) Tail(n int) Dataset {
	if n <= 0 {
		return Dataset{cols: d.cols}
	}
	if n > len(d.rows) {
		n = len(d.rows)
	}
	out := New(d.rows[len(d.rows)-n:]...)
	out.cols = d.cols
	return out
}

// Columns returns the union of row keys in first-seen order.
func (d Dataset) Columns() []string {
	lists := make([][]string, 0, len(d.rows)+1)
	lists = append(lists, d.cols)
	for _, r := range d.rows {
		lists = append(lists, r.keys)
	}
	return unionKeys(lists...)
}

func unionKeys(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range lists {
		for _, k := range l {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// String renders the dataset as a fixed-width text table without a row
// index. Cells are right-aligned; columns are separated by two spaces.
func (d Dataset) String() string {
	cols := d.Columns()
	if len(d.rows) == 0 {
		return "Empty table"
	}

	widths := make([]int, len(cols))
	cells := make([][]string, len(d.rows))
	for j, c := range cols {
		widths[j] = len([]rune(c))
	}
	for i, r := range d.rows {
		cells[i] = make([]string, len(cols))
		for j, c := range cols {
			s := r.Text(c)
			cells[i][j] = s
			if n := len([]rune(s)); n > widths[j] {
				widths[j] = n
			}
		}
	}

	var b strings.Builder
	writeLine(&b, cols, widths)
	for _, line := range cells {
		b.WriteByte('\n')
		writeLine(&b, line, widths)
	}
	return b.String()
}

func writeLine(b *strings.Builder, cells []string, widths []int) {
	for j, s := range cells {
		if j > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(b, "%*s", widths[j], s)
	}
}
