package collector

import (
	"context"
	"errors"
	"time"

	"github.com/screwyprof/validator-stats/pkg/dashtec"
)

// Sentinel errors for fatal failure cases
var (
	ErrSourceFailed = errors.New("reading validator addresses failed")
	ErrWriteFailed  = errors.New("writing report failed")
)

// DefaultPacingDelay is the pause between two consecutive lookups
const DefaultPacingDelay = 500 * time.Millisecond

// Client looks validators up in the search API
// ---------------------------------------------
type Client interface {
	Search(ctx context.Context, address string) (dashtec.SearchResult, error)
}

// Source supplies the ordered validator addresses to process
type Source interface {
	List(ctx context.Context) ([]string, error)
}

// Sink persists the ordered records of one run
type Sink interface {
	Write(ctx context.Context, records []Record) error
}

// Clock abstracts time for production and testing
// ------------------------------------------------
type Clock interface {
	After(d time.Duration) <-chan time.Time
	Now() time.Time
}

// Event represents a run lifecycle event
// --------------------------------------
type Event any

type RunStarted struct {
	StartedAt time.Time
	Total     int
}

type AddressProcessed struct {
	Position int // 1-based
	Total    int
	Record   Record
}

type ReportWritten struct {
	Records  int
	Failed   int
	NotFound int
	Duration time.Duration
}
