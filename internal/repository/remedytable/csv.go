package remedytable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/kailas-cloud/remedex/internal/domain"
	"github.com/kailas-cloud/remedex/internal/domain/remedy"
)

// Supported source charsets.
const (
	CharsetUTF8        = "utf-8"
	CharsetWindows1252 = "windows-1252"
	CharsetISO88591    = "iso-8859-1"
)

// decoderFor returns the decoder for charset, nil for UTF-8.
func decoderFor(charset string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
		return nil, nil
	case CharsetWindows1252, "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case CharsetISO88591, "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
}

// ReadCSV parses a comma-separated remedy table with a header row.
func ReadCSV(r io.Reader, charset string) (*Table, error) {
	dec, err := decoderFor(charset)
	if err != nil {
		return nil, err
	}
	if dec != nil {
		r = dec.Reader(r)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv: %w", domain.ErrDatasetSchema)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	l, err := resolveLayout(header)
	if err != nil {
		return nil, err
	}

	var records []remedy.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		records = append(records, l.build(row))
	}

	return New(records), nil
}
