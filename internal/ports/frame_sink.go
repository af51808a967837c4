package ports

import (
	"context"

	"github.com/bft-labs/simtrace/internal/domain"
)

// FrameSink receives frames from the playback driver, one per tick.
// Frames are shared with the driver and must not be mutated.
type FrameSink interface {
	// Begin is called once before the first frame.
	Begin(ctx context.Context, h domain.Header, points []domain.GatheringPoint) error

	// Frame is called for every frame in order.
	Frame(ctx context.Context, f domain.Frame) error

	// End is called once after the last frame with the final summary.
	End(ctx context.Context, s domain.Summary) error
}
