package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bft-labs/simtrace/internal/domain"
)

// ParseHeader parses the first trace line: agent count, domain size,
// iteration count and gathering point count. Tokens past the fourth are
// ignored.
func ParseHeader(line string) (domain.Header, error) {
	return parseHeader(line, 1)
}

func parseHeader(line string, lineNo int) (domain.Header, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return domain.Header{}, &domain.FormatError{
			Line:  lineNo,
			Field: fmt.Sprintf("header needs 4 fields, got %d", len(fields)),
		}
	}

	var (
		h   domain.Header
		err error
	)
	if h.AgentCount, err = strconv.Atoi(fields[0]); err != nil {
		return domain.Header{}, &domain.FormatError{Line: lineNo, Field: "agent count", Err: err}
	}
	if h.DomainSize, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return domain.Header{}, &domain.FormatError{Line: lineNo, Field: "domain size", Err: err}
	}
	if h.Iterations, err = strconv.Atoi(fields[2]); err != nil {
		return domain.Header{}, &domain.FormatError{Line: lineNo, Field: "iteration count", Err: err}
	}
	if h.GatheringPointCount, err = strconv.Atoi(fields[3]); err != nil {
		return domain.Header{}, &domain.FormatError{Line: lineNo, Field: "gathering point count", Err: err}
	}

	switch {
	case h.AgentCount <= 0:
		return domain.Header{}, &domain.FormatError{Line: lineNo, Field: fmt.Sprintf("agent count must be positive, got %d", h.AgentCount)}
	case !(h.DomainSize > 0) || math.IsInf(h.DomainSize, 0):
		return domain.Header{}, &domain.FormatError{Line: lineNo, Field: fmt.Sprintf("domain size must be positive, got %v", h.DomainSize)}
	case h.Iterations <= 0:
		return domain.Header{}, &domain.FormatError{Line: lineNo, Field: fmt.Sprintf("iteration count must be positive, got %d", h.Iterations)}
	case h.GatheringPointCount < 0:
		return domain.Header{}, &domain.FormatError{Line: lineNo, Field: fmt.Sprintf("gathering point count must not be negative, got %d", h.GatheringPointCount)}
	}

	return h, nil
}

// ParseGatheringPoint parses a single "x y" gathering point line.
// lineNo is only used in the returned error.
func ParseGatheringPoint(line string, lineNo int) (domain.GatheringPoint, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return domain.GatheringPoint{}, &domain.FormatError{
			Line:  lineNo,
			Field: fmt.Sprintf("gathering point needs 2 fields, got %d", len(fields)),
		}
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return domain.GatheringPoint{}, &domain.FormatError{Line: lineNo, Field: "gathering point x", Err: err}
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return domain.GatheringPoint{}, &domain.FormatError{Line: lineNo, Field: "gathering point y", Err: err}
	}
	return domain.GatheringPoint{X: x, Y: y}, nil
}

// lineReader reads newline-terminated lines and tracks the 1-based number
// of the last line returned.
type lineReader struct {
	br   *bufio.Reader
	line int
}

func newLineReader(r io.Reader, size int) *lineReader {
	return &lineReader{br: bufio.NewReaderSize(r, size)}
}

// next returns the next line without its terminator. A final line with no
// trailing newline is still returned; io.EOF is only reported once nothing
// is left.
func (l *lineReader) next() (string, error) {
	s, err := l.br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || s == "" {
			return "", err
		}
	}
	l.line++
	return strings.TrimRight(s, "\r\n"), nil
}

// onlyBlankLeft consumes lines up to the first non-blank one and reports
// whether the input ended before any was found.
func (l *lineReader) onlyBlankLeft() bool {
	for {
		s, err := l.next()
		if err != nil {
			return errors.Is(err, io.EOF)
		}
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
}

// readHeader consumes the header line.
func readHeader(lr *lineReader) (domain.Header, error) {
	line, err := lr.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Header{}, &domain.FormatError{Line: 1, Field: "missing header line"}
		}
		return domain.Header{}, fmt.Errorf("read header: %w", err)
	}
	return parseHeader(line, lr.line)
}

// readGatheringPoints consumes exactly n gathering point lines.
func readGatheringPoints(lr *lineReader, n int) ([]domain.GatheringPoint, error) {
	points := make([]domain.GatheringPoint, 0, n)
	for i := 0; i < n; i++ {
		line, err := lr.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &domain.FormatError{
					Line:  lr.line + 1,
					Field: fmt.Sprintf("missing gathering point %d of %d", i+1, n),
				}
			}
			return nil, fmt.Errorf("read gathering point %d: %w", i+1, err)
		}
		p, err := ParseGatheringPoint(line, lr.line)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}
