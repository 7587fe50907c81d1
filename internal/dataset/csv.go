package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the dataset with a leading row-index column. The header's
// first cell is empty, matching the layout spreadsheet tools and pandas
// produce; missing cells are written empty.
func (d Dataset) WriteCSV(w io.Writer) error {
	cols := d.Columns()
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(cols)+1)
	header = append(header, "")
	header = append(header, cols...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range d.rows {
		rec := make([]string, 0, len(cols)+1)
		rec = append(rec, strconv.Itoa(i))
		for _, c := range cols {
			rec = append(rec, r.Text(c))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV. An empty first header cell is
// taken as the index column and dropped. Empty cells are left out of the row.
func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, nil
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("reading header: %w", err)
	}

	offset := 0
	if len(header) > 0 && header[0] == "" {
		offset = 1
	}
	cols := header[offset:]

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("reading line %d: %w", line, err)
		}
		fields := make([]Field, 0, len(cols))
		for j, c := range cols {
			cell := rec[j+offset]
			if cell == "" {
				continue
			}
			fields = append(fields, Field{Key: c, Value: parseCell(cell)})
		}
		rows = append(rows, NewRow(fields...))
	}
	return Dataset{rows: rows, cols: append([]string(nil), cols...)}, nil
}
