package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (SIMTRACE_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("trace", os.Getenv("SIMTRACE_TRACE"), &cfg.TracePath)
	s.setString("format", os.Getenv("SIMTRACE_FORMAT"), &cfg.Format)
	s.setString("log-level", os.Getenv("SIMTRACE_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("interval", os.Getenv("SIMTRACE_INTERVAL"), &cfg.Interval); err != nil {
		return err
	}
	if err := s.setDuration("watch-debounce", os.Getenv("SIMTRACE_WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}
	if err := s.setIntFromString("max-frames", os.Getenv("SIMTRACE_MAX_FRAMES"), &cfg.MaxFrames); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("SIMTRACE_WATCH"), &cfg.Watch)

	return nil
}
