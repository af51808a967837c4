package domain

// History is the ordered sequence of health counts, one entry per recorded
// frame. It replaces growing per-category series with a single value that
// callers own.
type History struct {
	counts []HealthCounts
	first  int
}

// preallocLimit bounds capacities taken from a trace header. Counts come
// from untrusted input; slices beyond this grow with append.
const preallocLimit = 4096

// boundedCap clamps a capacity hint to [0, preallocLimit].
func boundedCap(n int) int {
	return max(0, min(n, preallocLimit))
}

// NewHistory creates an empty history sized for up to capacity frames.
func NewHistory(capacity int) *History {
	return &History{counts: make([]HealthCounts, 0, boundedCap(capacity))}
}

// Record appends the counts of f. The first recorded frame fixes the index
// of entry 0; frames are expected to arrive in order.
func (h *History) Record(f Frame) {
	if len(h.counts) == 0 {
		h.first = f.Index
	}
	h.counts = append(h.counts, f.Counts)
}

// Len returns the number of recorded frames.
func (h *History) Len() int {
	return len(h.counts)
}

// At returns the counts recorded at position i.
func (h *History) At(i int) HealthCounts {
	return h.counts[i]
}

// Last returns the most recent counts and false if nothing was recorded.
func (h *History) Last() (HealthCounts, bool) {
	if len(h.counts) == 0 {
		return HealthCounts{}, false
	}
	return h.counts[len(h.counts)-1], true
}

// Series returns the count of one health category for every recorded frame.
func (h *History) Series(s HealthState) []int {
	out := make([]int, len(h.counts))
	for i, c := range h.counts {
		out[i] = c.Get(s)
	}
	return out
}

// Peak returns the highest count reached by a category and the frame index
// where it was first reached. ok is false for an empty history.
func (h *History) Peak(s HealthState) (count, frame int, ok bool) {
	if len(h.counts) == 0 {
		return 0, 0, false
	}
	count = -1
	for i, c := range h.counts {
		if v := c.Get(s); v > count {
			count = v
			frame = h.first + i
		}
	}
	return count, frame, true
}

// Counts returns a copy of all recorded counts.
func (h *History) Counts() []HealthCounts {
	return append([]HealthCounts(nil), h.counts...)
}
