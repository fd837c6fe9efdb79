package engine

import (
	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/text"
)

// QuicksortStrategy selects the algorithm behind the quicksort operation.
type QuicksortStrategy string

const (
	// QuicksortPartition returns a new slice built by three-way partitioning.
	QuicksortPartition QuicksortStrategy = "partition"
	// QuicksortInPlace sorts a decoded copy of the input with the Lomuto scheme.
	QuicksortInPlace QuicksortStrategy = "in_place"
)

// Valid reports whether s names a known strategy.
func (s QuicksortStrategy) Valid() bool {
	return s == QuicksortPartition || s == QuicksortInPlace
}

type options struct {
	quicksort    QuicksortStrategy
	maxRunLength int
	events       bool
	concurrency  int
}

func defaultOptions() options {
	return options{
		quicksort:    QuicksortPartition,
		maxRunLength: text.DefaultMaxRunLength,
		events:       true,
		concurrency:  0,
	}
}

func (o options) validate() error {
	if !o.quicksort.Valid() {
		return core.InvalidArgument("unknown quicksort strategy %q", o.quicksort)
	}
	if o.maxRunLength < 1 {
		return core.InvalidArgument("max run length should be positive, got %d", o.maxRunLength)
	}
	if o.concurrency < 0 {
		return core.InvalidArgument("concurrency should not be negative, got %d", o.concurrency)
	}
	return nil
}

// Option configures an Engine.
type Option func(*options)

// WithQuicksortStrategy selects the algorithm used by the quicksort operation.
func WithQuicksortStrategy(s QuicksortStrategy) Option {
	return func(o *options) { o.quicksort = s }
}

// WithMaxRunLength bounds the run counts accepted by the decompress operation.
func WithMaxRunLength(n int) Option {
	return func(o *options) { o.maxRunLength = n }
}

// WithEvents enables or disables the event bus. A disabled engine emits
// nothing and refuses subscriptions.
func WithEvents(enabled bool) Option {
	return func(o *options) { o.events = enabled }
}

// WithConcurrency limits how many invocations ExecuteBatch runs at once.
// Zero means no limit.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}
