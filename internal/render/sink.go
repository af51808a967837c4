package render

import (
	"context"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/bft-labs/simtrace/internal/domain"
)

// FrameSink streams one counts row per frame and the summary at the end.
// json output is one compact object per line; yaml output is a stream of
// documents.
type FrameSink struct {
	r    *Renderer
	json *json.Encoder
	yaml *yaml.Encoder
}

// NewFrameSink creates a sink that writes through r.
func NewFrameSink(r *Renderer) *FrameSink {
	return &FrameSink{r: r}
}

// Begin prepares the encoder and writes column titles for table output.
func (s *FrameSink) Begin(ctx context.Context, h domain.Header, points []domain.GatheringPoint) error {
	switch s.r.format {
	case FormatTable:
		return s.r.writeFrameTitle()
	case FormatJSON:
		s.json = json.NewEncoder(s.r.out)
	case FormatYAML:
		s.yaml = yaml.NewEncoder(s.r.out)
		s.yaml.SetIndent(2)
	}
	return nil
}

// Frame writes the counts row for f.
func (s *FrameSink) Frame(ctx context.Context, f domain.Frame) error {
	return s.write(NewFrameRow(f))
}

// End writes the summary.
func (s *FrameSink) End(ctx context.Context, sum domain.Summary) error {
	if s.r.format == FormatTable {
		if _, err := s.r.out.Write([]byte("\n")); err != nil {
			return err
		}
		return s.r.Render(sum)
	}
	if err := s.write(sum); err != nil {
		return err
	}
	if s.yaml != nil {
		return s.yaml.Close()
	}
	return nil
}

func (s *FrameSink) write(v any) error {
	switch {
	case s.json != nil:
		return s.json.Encode(v)
	case s.yaml != nil:
		return s.yaml.Encode(v)
	default:
		return s.r.Render(v)
	}
}
