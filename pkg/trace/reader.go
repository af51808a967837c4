package trace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bft-labs/simtrace/internal/domain"
	"github.com/bft-labs/simtrace/pkg/log"
)

// ErrEndOfStream is returned by Next once no more frames can be produced.
var ErrEndOfStream = io.EOF

// Re-exported domain types so callers of this package need no other import.
type (
	Header         = domain.Header
	GatheringPoint = domain.GatheringPoint
	Frame          = domain.Frame
	HealthCounts   = domain.HealthCounts
)

// State is the read state of a Reader.
type State int

const (
	// StateReady means the file is open and more frames may follow.
	StateReady State = iota
	// StateExhausted means the data ran out or was invalid; the file is closed.
	StateExhausted
	// StateClosed means Close was called.
	StateClosed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateExhausted:
		return "Exhausted"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Reader pulls frames from a trace one block at a time.
type Reader struct {
	rc     io.Closer
	lines  *lineReader
	header domain.Header
	points []domain.GatheringPoint
	state  State
	frames int
	name   string
	logger log.Logger
}

// Open opens the trace file at path and parses its header and gathering
// points. On error the file is closed and no Reader is returned.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	return NewReader(f, append([]Option{WithName(path)}, opts...)...)
}

// NewReader parses the header and gathering points from rc and returns a
// Reader that owns rc. On error rc is closed.
func NewReader(rc io.ReadCloser, opts ...Option) (*Reader, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Reader{
		rc:     rc,
		lines:  newLineReader(rc, o.bufferSize),
		name:   o.name,
		logger: o.logger,
	}

	h, err := readHeader(r.lines)
	if err != nil {
		rc.Close()
		return nil, err
	}
	points, err := readGatheringPoints(r.lines, h.GatheringPointCount)
	if err != nil {
		rc.Close()
		return nil, err
	}
	r.header = h
	r.points = points

	r.logger.Info("trace opened",
		log.String("trace", r.name),
		log.Int("agents", h.AgentCount),
		log.Float64("domain_size", h.DomainSize),
		log.Int("iterations", h.Iterations),
		log.Int("gathering_points", h.GatheringPointCount),
	)
	return r, nil
}

// Header returns the parsed simulation parameters.
func (r *Reader) Header() domain.Header {
	return r.header
}

// GatheringPoints returns a copy of the gathering point list.
func (r *Reader) GatheringPoints() []domain.GatheringPoint {
	return append([]domain.GatheringPoint{}, r.points...)
}

// State returns the current read state.
func (r *Reader) State() State {
	return r.state
}

// FramesRead returns the number of frames produced so far.
func (r *Reader) FramesRead() int {
	return r.frames
}

// Next reads the next frame block.
//
// It returns io.EOF when the trace is exhausted: at a clean end of file, when
// a block is cut short, or when a line does not have exactly three fields.
// No partial frame is ever returned. A *domain.ParseError is returned for a
// record with an unknown health code or a non-numeric coordinate. Either way
// the file is closed and every later call returns io.EOF without touching it.
func (r *Reader) Next(ctx context.Context) (domain.Frame, error) {
	if r.state != StateReady {
		return domain.Frame{}, io.EOF
	}

	select {
	case <-ctx.Done():
		return domain.Frame{}, ctx.Err()
	default:
	}

	index := r.frames + 1
	tally := domain.NewTally(r.header.AgentCount)

	for i := 0; i < r.header.AgentCount; i++ {
		line, err := r.lines.next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.exhaust()
				return domain.Frame{}, fmt.Errorf("read frame %d: %w", index, err)
			}
			if i == 0 {
				r.logger.Info("end of trace", log.String("trace", r.name), log.Int("frames", r.frames))
			} else {
				r.logger.Warn("trace ends inside a frame block",
					log.String("trace", r.name),
					log.Int("frame", index),
					log.Int("agents_read", i),
					log.Int("agents_expected", r.header.AgentCount),
				)
			}
			r.exhaust()
			return domain.Frame{}, io.EOF
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			lineNo := r.lines.line
			if i == 0 && len(fields) == 0 && r.lines.onlyBlankLeft() {
				r.logger.Info("end of trace", log.String("trace", r.name), log.Int("frames", r.frames))
			} else {
				r.logger.Warn("malformed agent record, ending trace",
					log.String("trace", r.name),
					log.Int("line", lineNo),
					log.Int("fields", len(fields)),
				)
			}
			r.exhaust()
			return domain.Frame{}, io.EOF
		}

		p, s, err := parseAgent(fields, r.lines.line)
		if err != nil {
			r.logger.Error("invalid agent record", log.String("trace", r.name), log.Err(err))
			r.exhaust()
			return domain.Frame{}, err
		}
		tally.Add(p, s)
	}

	f, err := tally.Frame(index)
	if err != nil {
		r.exhaust()
		return domain.Frame{}, err
	}
	r.frames++

	if r.frames == r.header.Iterations+1 {
		r.logger.Warn("trace has more frames than its header announced",
			log.String("trace", r.name),
			log.Int("iterations", r.header.Iterations),
		)
	}
	r.logger.Debug("frame read",
		log.Int("frame", index),
		log.Int("healthy", f.Counts.Healthy),
		log.Int("carrier", f.Counts.Carrier),
		log.Int("sick", f.Counts.Sick),
		log.Int("immune", f.Counts.Immune),
	)
	return f, nil
}

// Close releases the underlying file. It is safe to call more than once and
// after the stream was exhausted; only the first release can return an error.
func (r *Reader) Close() error {
	if r.state == StateClosed {
		return nil
	}
	r.state = StateClosed
	return r.release()
}

// exhaust ends the stream and releases the file.
func (r *Reader) exhaust() {
	r.state = StateExhausted
	if err := r.release(); err != nil {
		r.logger.Warn("close trace", log.String("trace", r.name), log.Err(err))
	}
}

func (r *Reader) release() error {
	if r.rc == nil {
		return nil
	}
	err := r.rc.Close()
	r.rc = nil
	r.logger.Debug("trace closed", log.String("trace", r.name), log.Int("frames", r.frames))
	return err
}

// parseAgent parses an "x y health" record that already has three fields.
// Only the first byte of the health token is significant.
func parseAgent(fields []string, lineNo int) (domain.Point, domain.HealthState, error) {
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return domain.Point{}, 0, &domain.ParseError{Line: lineNo, Field: "x coordinate", Token: fields[0]}
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return domain.Point{}, 0, &domain.ParseError{Line: lineNo, Field: "y coordinate", Token: fields[1]}
	}
	s, ok := domain.ParseHealthCode(fields[2][0])
	if !ok {
		return domain.Point{}, 0, &domain.ParseError{Line: lineNo, Field: "health code", Token: fields[2]}
	}
	return domain.Point{X: x, Y: y}, s, nil
}
