// Package ports defines the interfaces that connect the playback driver to
// its collaborators.
//
// # Port Interfaces
//
//   - [FrameSource]: produces frames one at a time (the trace reader)
//   - [FrameSink]: consumes each frame (renderers, recorders)
//
// The application layer (internal/app) depends only on these interfaces, so
// it can be tested with in-memory sources and recording sinks.
package ports
