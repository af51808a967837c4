package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/simtrace/internal/domain"
	"github.com/bft-labs/simtrace/pkg/trace"
)

// fakeSource serves prepared frames and then io.EOF, or failErr at failAt.
type fakeSource struct {
	header  domain.Header
	frames  []domain.Frame
	failAt  int
	failErr error

	mu     sync.Mutex
	next   int
	closes int
}

func newFakeSource(counts ...domain.HealthCounts) *fakeSource {
	src := &fakeSource{failAt: -1}
	for i, c := range counts {
		src.frames = append(src.frames, domain.Frame{Index: i + 1, Counts: c})
	}
	agents := 0
	if len(counts) > 0 {
		agents = counts[0].Total()
	}
	src.header = domain.Header{AgentCount: agents, DomainSize: 10, Iterations: len(counts)}
	return src
}

func (s *fakeSource) Header() domain.Header                    { return s.header }
func (s *fakeSource) GatheringPoints() []domain.GatheringPoint { return nil }

func (s *fakeSource) Next(ctx context.Context) (domain.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next == s.failAt {
		return domain.Frame{}, s.failErr
	}
	if s.next >= len(s.frames) {
		return domain.Frame{}, io.EOF
	}
	f := s.frames[s.next]
	s.next++
	return f, nil
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *fakeSource) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

// recordingSink records every call it receives.
type recordingSink struct {
	mu      sync.Mutex
	begun   int
	frames  []int
	ended   int
	summary domain.Summary
}

func (r *recordingSink) Begin(ctx context.Context, h domain.Header, points []domain.GatheringPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.begun++
	return nil
}

func (r *recordingSink) Frame(ctx context.Context, f domain.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f.Index)
	return nil
}

func (r *recordingSink) End(ctx context.Context, s domain.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended++
	r.summary = s
	return nil
}

func (r *recordingSink) frameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func TestPlayer_RunPlaysAllFrames(t *testing.T) {
	src := newFakeSource(
		domain.HealthCounts{Healthy: 9, Carrier: 1},
		domain.HealthCounts{Healthy: 7, Carrier: 1, Sick: 2},
		domain.HealthCounts{Healthy: 6, Sick: 1, Immune: 3},
	)
	sink := &recordingSink{}
	p := NewPlayer(PlayerConfig{}, src, mockLogger{}, nil, sink)

	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !summary.Complete || summary.FramesRead != 3 {
		t.Errorf("summary = %+v, want 3 complete frames", summary)
	}
	if summary.PeakSick != (domain.Peak{Count: 2, Frame: 2}) {
		t.Errorf("PeakSick = %+v", summary.PeakSick)
	}
	if sink.begun != 1 || sink.ended != 1 {
		t.Errorf("sink begun=%d ended=%d, want 1 and 1", sink.begun, sink.ended)
	}
	if len(sink.frames) != 3 || sink.frames[0] != 1 || sink.frames[2] != 3 {
		t.Errorf("sink frames = %v, want [1 2 3]", sink.frames)
	}
	if p.History().Len() != 3 {
		t.Errorf("History().Len() = %d, want 3", p.History().Len())
	}
	if src.closeCount() != 1 {
		t.Errorf("source closes = %d, want 1", src.closeCount())
	}
}

func TestPlayer_RunMaxFrames(t *testing.T) {
	src := newFakeSource(
		domain.HealthCounts{Healthy: 2},
		domain.HealthCounts{Healthy: 2},
		domain.HealthCounts{Healthy: 2},
	)
	sink := &recordingSink{}
	p := NewPlayer(PlayerConfig{MaxFrames: 2}, src, nil, nil, sink)

	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.FramesRead != 2 || summary.Complete {
		t.Errorf("summary = %+v, want 2 incomplete frames", summary)
	}
	if src.closeCount() != 1 {
		t.Errorf("source closes = %d, want 1", src.closeCount())
	}
}

func TestPlayer_RunSourceErrorAborts(t *testing.T) {
	src := newFakeSource(domain.HealthCounts{Sick: 1}, domain.HealthCounts{Sick: 1})
	src.failAt = 1
	src.failErr = &domain.ParseError{Line: 4, Field: "health code", Token: "9"}
	sink := &recordingSink{}
	p := NewPlayer(PlayerConfig{}, src, nil, nil, sink)

	summary, err := p.Run(context.Background())
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("Run() error = %v, want ErrParse", err)
	}
	if summary.FramesRead != 1 {
		t.Errorf("FramesRead = %d, want 1", summary.FramesRead)
	}
	if sink.ended != 0 {
		t.Error("End called on aborted playback")
	}
	if src.closeCount() != 1 {
		t.Errorf("source closes = %d, want 1", src.closeCount())
	}
}

func TestPlayer_StartWaitWithTraceReader(t *testing.T) {
	data := "2 10.0 2 1\n5 5\n" +
		"1 1 0\n2 2 1\n" +
		"1 1 2\n2 2 3\n"
	r, err := trace.NewReader(io.NopCloser(strings.NewReader(data)))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	emitter := &eventRecorder{}
	sink := &recordingSink{}
	p := NewPlayer(PlayerConfig{Interval: time.Millisecond}, r, nil, emitter, sink)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	summary, err := p.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if summary.FramesRead != 2 || !summary.Complete {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Final != (domain.HealthCounts{Sick: 1, Immune: 1}) {
		t.Errorf("Final = %+v", summary.Final)
	}
	if len(summary.GatheringPoints) != 1 {
		t.Errorf("GatheringPoints = %v", summary.GatheringPoints)
	}
	if p.Status() != StateStopped {
		t.Errorf("Status() = %v, want Stopped", p.Status())
	}
	if r.State() != trace.StateClosed && r.State() != trace.StateExhausted {
		t.Errorf("reader state = %v, want released", r.State())
	}

	want := []State{StateStarting, StateRunning, StateStopping, StateStopped}
	if got := emitter.States(); !sameStates(got, want) {
		t.Errorf("states = %v, want %v", got, want)
	}

	if err := p.Start(context.Background()); !errors.Is(err, domain.ErrPlayerUsed) {
		t.Errorf("second Start() error = %v, want ErrPlayerUsed", err)
	}
}

func TestPlayer_StopDuringPlayback(t *testing.T) {
	src := newFakeSource(
		domain.HealthCounts{Healthy: 1},
		domain.HealthCounts{Healthy: 1},
		domain.HealthCounts{Healthy: 1},
	)
	sink := &recordingSink{}
	p := NewPlayer(PlayerConfig{Interval: time.Hour}, src, nil, nil, sink)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for sink.frameCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first frame not played")
		}
		time.Sleep(time.Millisecond)
	}

	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	summary, err := p.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if summary.FramesRead != 1 {
		t.Errorf("FramesRead = %d, want 1", summary.FramesRead)
	}
	if p.Status() != StateStopped {
		t.Errorf("Status() = %v, want Stopped", p.Status())
	}
	if src.closeCount() == 0 {
		t.Error("source not closed after Stop")
	}
	if err := p.Stop(); !errors.Is(err, domain.ErrNotRunning) {
		t.Errorf("second Stop() error = %v, want ErrNotRunning", err)
	}
}

func TestPlayer_CrashOnSourceError(t *testing.T) {
	src := newFakeSource(domain.HealthCounts{Healthy: 1})
	src.failAt = 0
	src.failErr = &domain.ParseError{Line: 2, Field: "health code", Token: "7"}
	p := NewPlayer(PlayerConfig{}, src, nil, nil)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	_, err := p.Wait(context.Background())
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("Wait() error = %v, want ErrParse", err)
	}
	if p.Status() != StateCrashed {
		t.Errorf("Status() = %v, want Crashed", p.Status())
	}
}

func TestPlayer_WaitBeforeStart(t *testing.T) {
	p := NewPlayer(PlayerConfig{}, newFakeSource(), nil, nil)
	if _, err := p.Wait(context.Background()); !errors.Is(err, domain.ErrNotRunning) {
		t.Errorf("Wait() error = %v, want ErrNotRunning", err)
	}
}

func TestPlayer_HugeIterationCount(t *testing.T) {
	data := "1 10.0 1000000000000000000 0\n1 1 0\n"
	r, err := trace.NewReader(io.NopCloser(strings.NewReader(data)))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	p := NewPlayer(PlayerConfig{}, r, nil, nil)
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.FramesRead != 1 || summary.Complete {
		t.Errorf("summary = %+v, want one frame of an incomplete run", summary)
	}
}
