package domain

import "testing"

func frameWithCounts(index int, c HealthCounts) Frame {
	return Frame{Index: index, Counts: c}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(0)

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
	if _, ok := h.Last(); ok {
		t.Error("Last() ok = true on empty history")
	}
	if _, _, ok := h.Peak(Sick); ok {
		t.Error("Peak() ok = true on empty history")
	}
}

func TestHistory_RecordAndSeries(t *testing.T) {
	h := NewHistory(3)
	h.Record(frameWithCounts(1, HealthCounts{Healthy: 9, Carrier: 1}))
	h.Record(frameWithCounts(2, HealthCounts{Healthy: 6, Carrier: 2, Sick: 2}))
	h.Record(frameWithCounts(3, HealthCounts{Healthy: 5, Carrier: 1, Sick: 2, Immune: 2}))

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	sick := h.Series(Sick)
	want := []int{0, 2, 2}
	for i := range want {
		if sick[i] != want[i] {
			t.Errorf("Series(Sick)[%d] = %d, want %d", i, sick[i], want[i])
		}
	}

	last, ok := h.Last()
	if !ok || last.Immune != 2 {
		t.Errorf("Last() = %+v, %v", last, ok)
	}

	// Ties keep the first frame that reached the peak.
	count, frame, ok := h.Peak(Sick)
	if !ok || count != 2 || frame != 2 {
		t.Errorf("Peak(Sick) = %d, %d, %v, want 2, 2, true", count, frame, ok)
	}
	count, frame, _ = h.Peak(Carrier)
	if count != 2 || frame != 2 {
		t.Errorf("Peak(Carrier) = %d, %d, want 2, 2", count, frame)
	}

	// Counts returns a copy.
	cs := h.Counts()
	cs[0].Healthy = 0
	if h.At(0).Healthy != 9 {
		t.Error("Counts() did not return a copy")
	}
}

func TestSummarize(t *testing.T) {
	hdr := Header{AgentCount: 10, DomainSize: 50, Iterations: 3, GatheringPointCount: 1}
	points := []GatheringPoint{{X: 5, Y: 5}}

	h := NewHistory(3)
	h.Record(frameWithCounts(1, HealthCounts{Healthy: 9, Carrier: 1}))
	h.Record(frameWithCounts(2, HealthCounts{Healthy: 7, Carrier: 1, Sick: 2}))

	s := Summarize(hdr, points, h)
	if s.Complete {
		t.Error("Complete = true with 2 of 3 frames")
	}
	if s.FramesRead != 2 {
		t.Errorf("FramesRead = %d, want 2", s.FramesRead)
	}
	if s.Final.Sick != 2 {
		t.Errorf("Final.Sick = %d, want 2", s.Final.Sick)
	}
	if s.PeakSick != (Peak{Count: 2, Frame: 2}) {
		t.Errorf("PeakSick = %+v", s.PeakSick)
	}
	if s.PeakCarrier != (Peak{Count: 1, Frame: 1}) {
		t.Errorf("PeakCarrier = %+v", s.PeakCarrier)
	}

	h.Record(frameWithCounts(3, HealthCounts{Healthy: 7, Immune: 3}))
	if !Summarize(hdr, points, h).Complete {
		t.Error("Complete = false with all frames read")
	}
}

func TestNewHistory_CapacityBounds(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{"negative", -5, 0},
		{"small", 10, 10},
		{"huge", 1 << 62, preallocLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.capacity)
			if got := cap(h.counts); got != tt.want {
				t.Errorf("cap = %d, want %d", got, tt.want)
			}
			h.Record(frameWithCounts(1, HealthCounts{Sick: 1}))
			if h.Len() != 1 {
				t.Errorf("Len() = %d, want 1", h.Len())
			}
		})
	}
}
