package ports

import (
	"context"
	"io"

	"github.com/bft-labs/simtrace/internal/domain"
)

// FrameSource provides frames from a simulation trace in order.
type FrameSource interface {
	// Header returns the trace's simulation parameters.
	Header() domain.Header

	// GatheringPoints returns the trace's fixed points of interest.
	GatheringPoints() []domain.GatheringPoint

	// Next returns the next frame.
	// Returns io.EOF once the stream is exhausted; every later call does too.
	// Returns other errors for invalid data the caller must not ignore.
	Next(ctx context.Context) (domain.Frame, error)

	// Close releases the underlying resource. Safe to call more than once.
	Close() error
}

// ErrEndOfStream indicates that there are no more frames to read.
var ErrEndOfStream = io.EOF
