package domain

import "fmt"

// Tally assembles one frame from agent records in input order.
// It keeps the position and health sequences index-aligned and counts
// each agent into exactly one health category.
type Tally struct {
	expected  int
	positions []Point
	health    []HealthState
	counts    HealthCounts
}

// NewTally creates a tally sized for agentCount agents.
func NewTally(agentCount int) *Tally {
	n := boundedCap(agentCount)
	return &Tally{
		expected:  agentCount,
		positions: make([]Point, 0, n),
		health:    make([]HealthState, 0, n),
	}
}

// Add records one agent.
func (t *Tally) Add(p Point, s HealthState) {
	t.positions = append(t.positions, p)
	t.health = append(t.health, s)
	t.counts.inc(s)
}

// Frame returns the assembled frame. The tally must not be used afterwards
// since the frame shares its slices. It fails with ErrCountMismatch unless
// exactly the expected number of agents were added and every one of them
// landed in a category.
func (t *Tally) Frame(index int) (Frame, error) {
	n := len(t.positions)
	if n != t.expected || len(t.health) != n || t.counts.Total() != n {
		return Frame{}, fmt.Errorf("%w: frame %d has %d positions, %d states, %d counted, want %d",
			ErrCountMismatch, index, n, len(t.health), t.counts.Total(), t.expected)
	}
	return Frame{
		Index:     index,
		Positions: t.positions,
		Health:    t.health,
		Counts:    t.counts,
	}, nil
}
