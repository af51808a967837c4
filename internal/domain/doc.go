// Package domain contains the core entities and value objects for simtrace.
//
// This package has no dependencies on infrastructure concerns (file system,
// logging, CLI) and contains only the rules that describe a simulation trace.
//
// # Entities
//
//   - [Header]: static simulation parameters from the first trace line
//   - [GatheringPoint]: a fixed point of interest in the simulation domain
//   - [Frame]: one iteration's positions and health states for every agent
//   - [HealthCounts]: population per health category for one frame
//   - [History]: ordered sequence of HealthCounts, one per recorded frame
//
// # Invariants
//
// A Frame always carries exactly Header.AgentCount agents, its position and
// health slices are index-aligned, and its counts sum to the agent count.
// [Tally] enforces this when a frame is assembled.
package domain
