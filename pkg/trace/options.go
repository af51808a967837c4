package trace

import "github.com/bft-labs/simtrace/pkg/log"

const defaultBufferSize = 64 * 1024

// Option configures a Reader.
type Option func(*options)

type options struct {
	logger     log.Logger
	bufferSize int
	name       string
}

func defaultOptions() options {
	return options{
		logger:     log.NewNoopLogger(),
		bufferSize: defaultBufferSize,
	}
}

// WithLogger sets the logger used for open, exhaustion and close events.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBufferSize sets the read buffer size. Values below 4KiB are ignored.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n >= 4096 {
			o.bufferSize = n
		}
	}
}

// WithName sets the name reported in log fields. Open uses the file path.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
