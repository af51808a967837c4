// Package tracewatcher re-runs a callback whenever a trace file changes.
// It watches the file's directory so a simulator that truncates or replaces
// the trace between runs is still picked up.
package tracewatcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/simtrace/pkg/log"
)

// Config holds configuration options for the trace watcher.
type Config struct {
	// DebounceDelay is how long the file must stay quiet after a change
	// before the callback runs.
	// Default: 200 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 200 * time.Millisecond}
}

// ChangeFunc is called after the trace changed. Calls never overlap.
type ChangeFunc func(ctx context.Context)

// Plugin watches a single trace file.
type Plugin struct {
	debounceDelay time.Duration
	path          string
	onChange      ChangeFunc
	logger        log.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	watcher *fsnotify.Watcher
}

// New creates a watcher for path. logger may be nil.
func New(cfg Config, path string, onChange ChangeFunc, logger log.Logger) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultConfig().DebounceDelay
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		path:          filepath.Clean(path),
		onChange:      onChange,
		logger:        logger,
	}
}

// Start begins watching. It returns an error if the watch cannot be set up.
func (p *Plugin) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.watcher != nil {
		return errors.New("tracewatcher: already started")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(p.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.watcher = watcher
	p.cancel = cancel

	p.logger.Info("watching trace", log.String("trace", p.path), log.Duration("debounce", p.debounceDelay))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)
	return nil
}

// Shutdown stops the watcher and waits for a running callback to return.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(p.debounceDelay)
				fire = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(p.debounceDelay)

		case <-fire:
			p.logger.Debug("trace changed", log.String("trace", p.path))
			p.onChange(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("trace watcher error", log.Err(err))
		}
	}
}
