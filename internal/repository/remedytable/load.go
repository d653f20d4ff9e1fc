package remedytable

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Formats accepted by Load.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Source describes where the remedy table lives.
type Source struct {
	Path    string
	Format  string // csv | parquet; empty means detect by extension
	Charset string // csv only
}

// Load reads the remedy table once. The context only guards the start of the load.
func Load(ctx context.Context, src Source) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load remedy table: %w", err)
	}

	format := strings.ToLower(src.Format)
	if format == "" {
		format = detectFormat(src.Path)
	}

	f, err := os.Open(filepath.Clean(src.Path))
	if err != nil {
		return nil, fmt.Errorf("open remedy table: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatCSV:
		t, err := ReadCSV(f, src.Charset)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", src.Path, err)
		}
		return t, nil
	case FormatParquet:
		stat, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", src.Path, err)
		}
		t, err := ReadParquet(f, stat.Size())
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", src.Path, err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported remedy table format %q", format)
	}
}

func detectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return FormatParquet
	}
	return FormatCSV
}
