package collector

// Subscriber dispatches run events to the registered handlers.
// Handlers run on the pipeline goroutine, so a slow handler slows the run down.
type Subscriber struct {
	runStartedHandler       func(RunStarted)
	addressProcessedHandler func(AddressProcessed)
	reportWrittenHandler    func(ReportWritten)
}

// OnRunStarted sets the handler for RunStarted events
func OnRunStarted(fn func(RunStarted)) func(*Subscriber) {
	return func(s *Subscriber) { s.runStartedHandler = fn }
}

// OnAddressProcessed sets the handler for AddressProcessed events
func OnAddressProcessed(fn func(AddressProcessed)) func(*Subscriber) {
	return func(s *Subscriber) { s.addressProcessedHandler = fn }
}

// OnReportWritten sets the handler for ReportWritten events
func OnReportWritten(fn func(ReportWritten)) func(*Subscriber) {
	return func(s *Subscriber) { s.reportWrittenHandler = fn }
}

// NewSubscriber creates a Subscriber with the given handlers.
//
// Example:
//
//	sub := collector.NewSubscriber(
//	  collector.OnAddressProcessed(func(e collector.AddressProcessed) { ... }),
//	)
//	svc := collector.NewService(client, source, sink, collector.WithSubscriber(sub))
func NewSubscriber(opts ...func(*Subscriber)) *Subscriber {
	s := &Subscriber{
		runStartedHandler:       func(RunStarted) {},       // nop by default
		addressProcessedHandler: func(AddressProcessed) {}, // nop by default
		reportWrittenHandler:    func(ReportWritten) {},    // nop by default
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Notify routes the event to its handler; unknown events are ignored
func (s *Subscriber) Notify(ev Event) {
	switch e := ev.(type) {
	case RunStarted:
		s.runStartedHandler(e)
	case AddressProcessed:
		s.addressProcessedHandler(e)
	case ReportWritten:
		s.reportWrittenHandler(e)
	}
}
