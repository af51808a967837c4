package simtrace_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bft-labs/simtrace"
)

func TestReadAndSummarize(t *testing.T) {
	const data = "2 10.0 3 0\n" +
		"1 1 1\n2 2 0\n" +
		"1 1 2\n2 2 1\n" +
		"1 1 3\n2 2 3\n"

	r, err := simtrace.NewReader(io.NopCloser(strings.NewReader(data)))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer r.Close()

	hist := simtrace.NewHistory(r.Header().Iterations)
	for {
		f, err := r.Next(context.Background())
		if errors.Is(err, simtrace.ErrEndOfStream) {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		hist.Record(f)
	}

	sum := simtrace.Summarize(r.Header(), r.GatheringPoints(), hist)
	if !sum.Complete || sum.FramesRead != 3 {
		t.Errorf("FramesRead = %d, Complete = %v; want 3, true", sum.FramesRead, sum.Complete)
	}
	if sum.Final.Immune != 2 {
		t.Errorf("Final.Immune = %d, want 2", sum.Final.Immune)
	}
	if sum.PeakCarrier != (simtrace.Peak{Count: 1, Frame: 1}) {
		t.Errorf("PeakCarrier = %+v, want {1 1}", sum.PeakCarrier)
	}
}

func TestOpenFormatError(t *testing.T) {
	_, err := simtrace.NewReader(io.NopCloser(strings.NewReader("10 abc 5 0\n")))
	if !errors.Is(err, simtrace.ErrFormat) {
		t.Fatalf("error = %v, want ErrFormat", err)
	}
	var fe *simtrace.FormatError
	if !errors.As(err, &fe) || fe.Line != 1 {
		t.Errorf("FormatError = %+v, want line 1", fe)
	}
}
