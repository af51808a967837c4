package domain

// Peak is the highest value a health category reached and when.
type Peak struct {
	Count int `json:"count" yaml:"count"`
	Frame int `json:"frame" yaml:"frame"`
}

// Summary describes a fully or partially read trace.
type Summary struct {
	Header          Header           `json:"header" yaml:"header"`
	GatheringPoints []GatheringPoint `json:"gathering_points" yaml:"gathering_points"`
	FramesRead      int              `json:"frames_read" yaml:"frames_read"`
	Complete        bool             `json:"complete" yaml:"complete"`
	Final           HealthCounts     `json:"final" yaml:"final"`
	PeakCarrier     Peak             `json:"peak_carrier" yaml:"peak_carrier"`
	PeakSick        Peak             `json:"peak_sick" yaml:"peak_sick"`
}

// Summarize builds a Summary from a header, its gathering points and the
// history of frames read so far.
func Summarize(h Header, points []GatheringPoint, hist *History) Summary {
	s := Summary{
		Header:          h,
		GatheringPoints: append([]GatheringPoint{}, points...),
		FramesRead:      hist.Len(),
		Complete:        hist.Len() >= h.Iterations,
	}
	if last, ok := hist.Last(); ok {
		s.Final = last
	}
	if c, f, ok := hist.Peak(Carrier); ok {
		s.PeakCarrier = Peak{Count: c, Frame: f}
	}
	if c, f, ok := hist.Peak(Sick); ok {
		s.PeakSick = Peak{Count: c, Frame: f}
	}
	return s
}
