package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/screwyprof/validator-stats/pkg/clock"
)

// Option configures the Service
// ------------------------------------------------
type Option func(*Service)

// WithClock injects a custom Clock (e.g., for testing)
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithPacingDelay sets the pause between consecutive lookups; zero disables it
func WithPacingDelay(d time.Duration) Option {
	return func(s *Service) { s.pacingDelay = d }
}

// WithSubscriber registers the receiver of run events
func WithSubscriber(sub *Subscriber) Option {
	return func(s *Service) { s.subscriber = sub }
}

// Service runs the fetch-normalize-record pipeline
// ------------------------------------------------
type Service struct {
	api         Client
	source      Source
	sink        Sink
	clock       Clock
	pacingDelay time.Duration
	subscriber  *Subscriber
}

// NewService constructs a Service with required dependencies and options
// ---------------------------------------------------------------------
// By default, it uses a real clock and a 500ms pacing delay.
func NewService(api Client, source Source, sink Sink, opts ...Option) *Service {
	s := &Service{
		api:         api,
		source:      source,
		sink:        sink,
		clock:       clock.SystemClock{},
		pacingDelay: DefaultPacingDelay,
		subscriber:  NewSubscriber(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run looks up every address of the source, in order, and hands the records to the sink.
//
// Exactly one record is produced per address. Lookup failures are recorded, never returned.
// Run fails before any lookup if the source fails, and returns the collected records
// together with ErrWriteFailed if the sink fails. A cancelled context stops the run
// without writing a partial report.
func (s *Service) Run(ctx context.Context) ([]Record, error) {
	start := s.clock.Now()

	addresses, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceFailed, err)
	}

	total := len(addresses)
	s.subscriber.Notify(RunStarted{StartedAt: start, Total: total})

	records := make([]Record, 0, total)
	for i, address := range addresses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, fetchErr := s.api.Search(ctx, address)
		record := Normalize(address, result, fetchErr)
		records = append(records, record)

		observeRecord(record)
		s.subscriber.Notify(AddressProcessed{Position: i + 1, Total: total, Record: record})

		if i < total-1 {
			if err := s.pause(ctx); err != nil {
				return nil, err
			}
		}
	}

	if err := s.sink.Write(ctx, records); err != nil {
		return records, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	s.subscriber.Notify(summarize(records, s.clock.Now().Sub(start)))
	return records, nil
}

// pause waits for the pacing delay, respecting cancellation
func (s *Service) pause(ctx context.Context) error {
	if s.pacingDelay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(s.pacingDelay):
		return nil
	}
}

func summarize(records []Record, d time.Duration) ReportWritten {
	ev := ReportWritten{Records: len(records), Duration: d}
	for _, r := range records {
		switch outcome(r) {
		case outcomeNotFound:
			ev.NotFound++
		case outcomeError:
			ev.Failed++
		}
	}
	return ev
}
