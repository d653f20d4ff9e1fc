package remedytable

import (
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/remedex/internal/domain/remedy"
)

// ReadParquet reads a remedy table from a Parquet file with the same column names as the CSV.
// Columns are read through the generic row reader; nulls become empty strings.
func ReadParquet(r io.ReaderAt, size int64) (*Table, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	cols := pf.Schema().Columns()
	header := make([]string, len(cols))
	for i, path := range cols {
		if len(path) > 0 {
			header[i] = path[0]
		}
	}

	l, err := resolveLayout(header)
	if err != nil {
		return nil, err
	}

	var records []remedy.Record
	for _, rg := range pf.RowGroups() {
		rows := parquet.NewRowGroupReader(rg)
		buf := make([]parquet.Row, 256)

		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				records = append(records, l.build(rowCells(buf[i], len(header))))
			}

			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return nil, fmt.Errorf("read parquet rows: %w", readErr)
			}
		}
	}

	return New(records), nil
}

func rowCells(row parquet.Row, width int) []string {
	cells := make([]string, width)
	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= width || v.IsNull() {
			continue
		}
		cells[col] = v.String()
	}
	return cells
}
