package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bft-labs/simtrace/internal/domain"
)

const frameRowFormat = "%6v  %8v  %8v  %8v  %8v\n"

func (r *Renderer) renderTable(data any) error {
	switch v := data.(type) {
	case HeaderView:
		return r.tabulate(func(w io.Writer) {
			writeHeader(w, v.Header)
			writePoints(w, v.GatheringPoints)
		})
	case domain.Summary:
		return r.tabulate(func(w io.Writer) { writeSummary(w, v) })
	case FrameRow:
		_, err := fmt.Fprintf(r.out, frameRowFormat, v.Frame, v.Healthy, v.Carrier, v.Sick, v.Immune)
		return err
	case []FrameRow:
		if err := r.writeFrameTitle(); err != nil {
			return err
		}
		for _, row := range v {
			if err := r.renderTable(row); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(r.out, "%v\n", data)
		return err
	}
}

// writeFrameTitle prints the column titles for frame rows. Rows use fixed
// widths so they line up while being streamed.
func (r *Renderer) writeFrameTitle() error {
	_, err := fmt.Fprintf(r.out, frameRowFormat, "FRAME", "HEALTHY", "CARRIER", "SICK", "IMMUNE")
	return err
}

func (r *Renderer) tabulate(fn func(w io.Writer)) error {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fn(w)
	return w.Flush()
}

func writeHeader(w io.Writer, h domain.Header) {
	fmt.Fprintf(w, "agents:\t%d\n", h.AgentCount)
	fmt.Fprintf(w, "domain size:\t%g\n", h.DomainSize)
	fmt.Fprintf(w, "iterations:\t%d\n", h.Iterations)
	fmt.Fprintf(w, "gathering points:\t%d\n", h.GatheringPointCount)
}

func writePoints(w io.Writer, points []domain.GatheringPoint) {
	for i, p := range points {
		fmt.Fprintf(w, "  #%d\t(%g, %g)\n", i+1, p.X, p.Y)
	}
}

func writeSummary(w io.Writer, s domain.Summary) {
	writeHeader(w, s.Header)
	fmt.Fprintf(w, "frames read:\t%d\n", s.FramesRead)
	fmt.Fprintf(w, "complete:\t%t\n", s.Complete)
	fmt.Fprintf(w, "final:\thealthy=%d carrier=%d sick=%d immune=%d\n",
		s.Final.Healthy, s.Final.Carrier, s.Final.Sick, s.Final.Immune)
	fmt.Fprintf(w, "peak carrier:\t%d (frame %d)\n", s.PeakCarrier.Count, s.PeakCarrier.Frame)
	fmt.Fprintf(w, "peak sick:\t%d (frame %d)\n", s.PeakSick.Count, s.PeakSick.Frame)
}
