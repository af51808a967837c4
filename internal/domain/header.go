package domain

// Header holds the static simulation parameters from the first trace line.
// It is immutable once parsed.
type Header struct {
	// AgentCount is the number of agents in every frame.
	AgentCount int `json:"agent_count" yaml:"agent_count"`

	// DomainSize is the side length of the square simulation area.
	DomainSize float64 `json:"domain_size" yaml:"domain_size"`

	// Iterations is the number of frames the simulator announced.
	Iterations int `json:"iterations" yaml:"iterations"`

	// GatheringPointCount is the number of gathering point lines after the header.
	GatheringPointCount int `json:"gathering_points" yaml:"gathering_points"`
}

// Point is an (x, y) coordinate in the simulation domain.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// GatheringPoint is a fixed point of interest, constant across all frames.
type GatheringPoint = Point
