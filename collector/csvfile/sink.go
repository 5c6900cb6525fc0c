package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/screwyprof/validator-stats/collector"
)

// Sink writes collector records to a CSV report
type Sink struct {
	path string
}

// NewSink creates a Sink writing to path
func NewSink(path string) *Sink {
	return &Sink{path: path}
}

// Write replaces the report with a header and one row per record.
// The report is written to a temporary file first and renamed into place.
func (s *Sink) Write(_ context.Context, records []collector.Record) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = gocsv.Marshal(records, tmp); err != nil {
		return fmt.Errorf("%w: encoding records: %w", ErrWriteFailed, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
