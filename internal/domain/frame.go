package domain

// HealthCounts is the population per health category for one frame.
type HealthCounts struct {
	Healthy int `json:"healthy" yaml:"healthy"`
	Carrier int `json:"carrier" yaml:"carrier"`
	Sick    int `json:"sick" yaml:"sick"`
	Immune  int `json:"immune" yaml:"immune"`
}

// Total returns the sum of all four categories.
func (c HealthCounts) Total() int {
	return c.Healthy + c.Carrier + c.Sick + c.Immune
}

// Get returns the count for a single state.
func (c HealthCounts) Get(s HealthState) int {
	switch s {
	case Healthy:
		return c.Healthy
	case Carrier:
		return c.Carrier
	case Sick:
		return c.Sick
	case Immune:
		return c.Immune
	default:
		return 0
	}
}

func (c *HealthCounts) inc(s HealthState) {
	switch s {
	case Healthy:
		c.Healthy++
	case Carrier:
		c.Carrier++
	case Sick:
		c.Sick++
	case Immune:
		c.Immune++
	}
}

// Frame is one iteration's worth of per-agent state.
// Positions and Health are index-aligned: agent i is at Positions[i]
// with state Health[i]. A Frame must not be mutated once produced.
type Frame struct {
	// Index is the 1-based frame number within the trace.
	Index int

	Positions []Point
	Health    []HealthState
	Counts    HealthCounts
}

// Len returns the number of agents in the frame.
func (f Frame) Len() int {
	return len(f.Positions)
}

// Weights returns the display weight of each agent, index-aligned with Positions.
func (f Frame) Weights() []int {
	w := make([]int, len(f.Health))
	for i, s := range f.Health {
		w[i] = s.DisplayWeight()
	}
	return w
}
