package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/simtrace/internal/domain"
	"github.com/bft-labs/simtrace/internal/ports"
	"github.com/bft-labs/simtrace/pkg/log"
)

// PlayerConfig contains configuration for the playback loop.
type PlayerConfig struct {
	// Interval is the delay between frames. Zero plays as fast as the
	// source can be read.
	Interval time.Duration

	// MaxFrames stops playback after this many frames. Zero means no limit.
	MaxFrames int
}

// Player drives a FrameSource: it pulls one frame per tick, records its
// health counts and hands it to every sink. The player owns the source and
// closes it when playback ends, whatever the reason.
type Player struct {
	config  PlayerConfig
	source  ports.FrameSource
	sinks   []ports.FrameSink
	logger  log.Logger
	history *domain.History

	lifecycle *Lifecycle

	mu      sync.Mutex
	done    chan struct{}
	summary domain.Summary
	err     error
}

// NewPlayer creates a player for source. emitter may be nil.
func NewPlayer(config PlayerConfig, source ports.FrameSource, logger log.Logger, emitter EventEmitter, sinks ...ports.FrameSink) *Player {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Player{
		config:    config,
		source:    source,
		sinks:     sinks,
		logger:    logger,
		history:   domain.NewHistory(source.Header().Iterations),
		lifecycle: NewLifecycle(logger, emitter),
	}
}

// Run plays the trace synchronously until the source is exhausted, the
// frame limit is reached, or ctx is canceled. It returns the summary of
// what was played. A source error aborts playback without calling End on
// the sinks; the partial summary is still returned.
func (p *Player) Run(ctx context.Context) (domain.Summary, error) {
	defer p.closeSource()

	h := p.source.Header()
	points := p.source.GatheringPoints()

	for _, s := range p.sinks {
		if err := s.Begin(ctx, h, points); err != nil {
			return p.snapshot(h, points), fmt.Errorf("begin sink: %w", err)
		}
	}

	var tick <-chan time.Time
	if p.config.Interval > 0 {
		ticker := time.NewTicker(p.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := 0; ; n++ {
		if p.config.MaxFrames > 0 && n >= p.config.MaxFrames {
			p.logger.Info("frame limit reached", log.Int("frames", n))
			break
		}

		// The first frame is shown immediately, later ones wait for a tick.
		if n > 0 && tick != nil {
			select {
			case <-ctx.Done():
				return p.snapshot(h, points), ctx.Err()
			case <-tick:
			}
		}

		frame, err := p.source.Next(ctx)
		if err != nil {
			if errors.Is(err, ports.ErrEndOfStream) {
				break
			}
			p.logger.Error("playback aborted", log.Int("frame", n+1), log.Err(err))
			return p.snapshot(h, points), err
		}

		p.history.Record(frame)
		for _, s := range p.sinks {
			if err := s.Frame(ctx, frame); err != nil {
				return p.snapshot(h, points), fmt.Errorf("sink frame %d: %w", frame.Index, err)
			}
		}
	}

	summary := p.snapshot(h, points)
	if !summary.Complete {
		p.logger.Warn("trace ended early",
			log.Int("frames", summary.FramesRead),
			log.Int("iterations", h.Iterations),
		)
	}
	for _, s := range p.sinks {
		if err := s.End(ctx, summary); err != nil {
			return summary, fmt.Errorf("end sink: %w", err)
		}
	}
	return summary, nil
}

// Start plays the trace in the background. It returns immediately; use
// Wait for the result or Stop to end playback early.
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done != nil {
		return domain.ErrPlayerUsed
	}
	if !p.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := p.lifecycle.TransitionTo(StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.lifecycle.SetCancel(cancel)
	p.done = make(chan struct{})

	p.lifecycle.AddWorker()
	go func() {
		defer p.lifecycle.WorkerDone()
		defer close(p.done)
		defer cancel()

		if err := p.lifecycle.TransitionTo(StateRunning, "playback starting"); err != nil {
			// Stop() won the race during startup.
			p.closeSource()
			_ = p.lifecycle.TransitionTo(StateStopped, "stopped before playback")
			return
		}

		summary, err := p.Run(runCtx)

		p.mu.Lock()
		p.summary = summary
		p.err = err
		p.mu.Unlock()

		if err != nil && !errors.Is(err, context.Canceled) {
			_ = p.lifecycle.TransitionTo(StateCrashed, err.Error())
			return
		}
		_ = p.lifecycle.TransitionTo(StateStopping, "playback finished")
		_ = p.lifecycle.TransitionTo(StateStopped, "playback finished")
	}()

	return nil
}

// Stop cancels background playback and waits for it to end.
// Returns ErrNotRunning if playback is not in progress.
func (p *Player) Stop() error {
	if !p.lifecycle.CanStop() {
		return domain.ErrNotRunning
	}
	if err := p.lifecycle.TransitionTo(StateStopping, "Stop() called"); err != nil {
		return err
	}
	p.lifecycle.Cancel()
	return p.lifecycle.WaitWithTimeout(ShutdownTimeout)
}

// Wait blocks until background playback ends or ctx is done and returns
// the playback result. Cancellation by Stop is not reported as an error.
func (p *Player) Wait(ctx context.Context) (domain.Summary, error) {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done == nil {
		return domain.Summary{}, domain.ErrNotRunning
	}

	select {
	case <-done:
	case <-ctx.Done():
		return domain.Summary{}, ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if errors.Is(p.err, context.Canceled) {
		return p.summary, nil
	}
	return p.summary, p.err
}

// Status returns the current lifecycle state.
func (p *Player) Status() State {
	return p.lifecycle.State()
}

// History returns the recorded health counts. It must only be read once
// playback has ended.
func (p *Player) History() *domain.History {
	return p.history
}

func (p *Player) snapshot(h domain.Header, points []domain.GatheringPoint) domain.Summary {
	return domain.Summarize(h, points, p.history)
}

func (p *Player) closeSource() {
	if err := p.source.Close(); err != nil {
		p.logger.Warn("close trace", log.Err(err))
	}
}
