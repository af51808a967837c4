// Package simtrace reads trace files written by the epidemic simulator.
//
// Example usage:
//
//	r, err := simtrace.Open("output.sim")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for {
//	    frame, err := r.Next(ctx)
//	    if errors.Is(err, simtrace.ErrEndOfStream) {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(frame.Index, frame.Counts.Sick)
//	}
package simtrace

import (
	"io"

	"github.com/bft-labs/simtrace/internal/domain"
	"github.com/bft-labs/simtrace/pkg/log"
	"github.com/bft-labs/simtrace/pkg/trace"
)

// Reader pulls frames from a trace one at a time.
type Reader = trace.Reader

// Option configures a Reader.
type Option = trace.Option

// Logger is the logging interface accepted by WithLogger.
type Logger = log.Logger

type (
	Header         = domain.Header
	GatheringPoint = domain.GatheringPoint
	Point          = domain.Point
	Frame          = domain.Frame
	HealthCounts   = domain.HealthCounts
	HealthState    = domain.HealthState
	History        = domain.History
	Summary        = domain.Summary
	Peak           = domain.Peak
	FormatError    = domain.FormatError
	ParseError     = domain.ParseError
)

// Health states.
const (
	Healthy = domain.Healthy
	Carrier = domain.Carrier
	Sick    = domain.Sick
	Immune  = domain.Immune
)

// Errors returned by the reader.
var (
	ErrEndOfStream   = trace.ErrEndOfStream
	ErrFormat        = domain.ErrFormat
	ErrParse         = domain.ErrParse
	ErrCountMismatch = domain.ErrCountMismatch
)

// Open opens the trace at path and parses its header and gathering points.
func Open(path string, opts ...Option) (*Reader, error) {
	return trace.Open(path, opts...)
}

// NewReader reads a trace from rc, which the Reader then owns.
func NewReader(rc io.ReadCloser, opts ...Option) (*Reader, error) {
	return trace.NewReader(rc, opts...)
}

// WithLogger sets the logger used by the Reader.
func WithLogger(logger Logger) Option {
	return trace.WithLogger(logger)
}

// NewHistory returns an empty History with room for n frames.
func NewHistory(n int) *History {
	return domain.NewHistory(n)
}

// Summarize builds a Summary from a header and the recorded history.
func Summarize(h Header, points []GatheringPoint, hist *History) Summary {
	return domain.Summarize(h, points, hist)
}
