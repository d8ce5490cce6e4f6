package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrEmptyInput is returned for a delimited source with no header row.
var ErrEmptyInput = errors.New("no header row")

// DelimitedOptions controls how ReadDelimited splits and decodes its input.
type DelimitedOptions struct {
	// Comma is the field separator.
	Comma rune
	// Encoding decodes the source bytes to UTF-8. Nil means the input is
	// already UTF-8.
	Encoding encoding.Encoding
}

// LedgerOptions describes the semicolon separated, ISO-8859-1 enrollment ledger.
var LedgerOptions = DelimitedOptions{
	Comma:    ';',
	Encoding: charmap.ISO8859_1,
}

// ReadDelimited parses r into a Table. Quotes are handled leniently and rows
// may have a varying number of fields. Headers are trimmed; no other cleanup
// is applied.
func ReadDelimited(r io.Reader, opts DelimitedOptions) (*Table, error) {
	if opts.Encoding != nil {
		r = transform.NewReader(r, opts.Encoding.NewDecoder())
	}

	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited input: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	t := newTable(records)
	t.TrimHeaders()
	return t, nil
}

// ReadDelimitedFile opens path and reads it with ReadDelimited.
func ReadDelimitedFile(path string, opts DelimitedOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadDelimited(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
