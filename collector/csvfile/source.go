// Package csvfile reads validator addresses from and writes reports to CSV files
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// Sentinel errors for file failures
var (
	ErrSourceNotFound   = errors.New("input file not found")
	ErrSourceUnreadable = errors.New("input file unreadable")
	ErrWriteFailed      = errors.New("report write failed")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// addressRow is one input row; other columns are ignored
type addressRow struct {
	Address string `csv:"address"`
}

// Source lists the addresses of the "address" column of a CSV file
type Source struct {
	path string
}

// NewSource creates a Source reading path
func NewSource(path string) *Source {
	return &Source{path: path}
}

// List returns trimmed, non-empty addresses in file order. Duplicates are kept.
func (s *Source) List(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	// rows may be shorter or longer than the header; only present columns are mapped
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var rows []*addressRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, s.path, err)
	}

	addresses := make([]string, 0, len(rows))
	for _, row := range rows {
		if address := strings.TrimSpace(row.Address); address != "" {
			addresses = append(addresses, address)
		}
	}
	return addresses, nil
}
