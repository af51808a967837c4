package render

import "github.com/bft-labs/simtrace/internal/domain"

// HeaderView is the static part of a trace.
type HeaderView struct {
	Header          domain.Header           `json:"header" yaml:"header"`
	GatheringPoints []domain.GatheringPoint `json:"gathering_points" yaml:"gathering_points"`
}

// FrameRow is one frame's population counts.
type FrameRow struct {
	Frame   int `json:"frame" yaml:"frame"`
	Healthy int `json:"healthy" yaml:"healthy"`
	Carrier int `json:"carrier" yaml:"carrier"`
	Sick    int `json:"sick" yaml:"sick"`
	Immune  int `json:"immune" yaml:"immune"`
}

// NewFrameRow builds the row for f.
func NewFrameRow(f domain.Frame) FrameRow {
	return FrameRow{
		Frame:   f.Index,
		Healthy: f.Counts.Healthy,
		Carrier: f.Counts.Carrier,
		Sick:    f.Counts.Sick,
		Immune:  f.Counts.Immune,
	}
}
