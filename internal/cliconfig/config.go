package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTracePath is the file the simulator writes unless told otherwise.
const DefaultTracePath = "output.sim"

// Config holds CLI configuration for simtrace.
type Config struct {
	TracePath string

	Interval  time.Duration
	MaxFrames int

	Format   string
	LogLevel string

	Watch         bool
	WatchDebounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TracePath:     DefaultTracePath,
		Interval:      250 * time.Millisecond,
		LogLevel:      "info",
		WatchDebounce: 200 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	c.TracePath = strings.TrimSpace(c.TracePath)
	if c.TracePath == "" {
		return fmt.Errorf("trace path is required")
	}

	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative")
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("max frames must not be negative")
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case "", "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q (must be table, json, or yaml)", c.Format)
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Watch && c.WatchDebounce <= 0 {
		return fmt.Errorf("watch debounce must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
// "0s" is accepted so a file can turn pacing off.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if positive.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
