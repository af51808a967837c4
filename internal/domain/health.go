package domain

// HealthState is the health category of a single agent.
type HealthState uint8

const (
	Healthy HealthState = iota
	Carrier
	Sick
	Immune
)

// NumHealthStates is the number of recognized health categories.
const NumHealthStates = 4

// HealthStates lists every category in code order.
var HealthStates = [NumHealthStates]HealthState{Healthy, Carrier, Sick, Immune}

// ParseHealthCode maps a trace health code ('0'..'3') to its state.
func ParseHealthCode(c byte) (HealthState, bool) {
	if c < '0' || c > '3' {
		return 0, false
	}
	return HealthState(c - '0'), true
}

// Code returns the single-character trace code for the state.
func (s HealthState) Code() byte {
	return '0' + byte(s)
}

// String returns a human-readable representation of the state.
func (s HealthState) String() string {
	switch s {
	case Healthy:
		return "Healthy"
	case Carrier:
		return "Carrier"
	case Sick:
		return "Sick"
	case Immune:
		return "Immune"
	default:
		return "Unknown"
	}
}

// DisplayWeight is the colour-map value a scatter plot assigns to the state.
func (s HealthState) DisplayWeight() int {
	switch s {
	case Carrier:
		return 100
	case Sick:
		return 30
	case Immune:
		return 40
	default:
		return 0
	}
}
