package metrics

import (
	"errors"
	"testing"

	coremetrics "github.com/betsim/betroute/core/metrics"
)

type fakeSink struct {
	records []coremetrics.StagingResult
	fleet   int
	err     error
}

func (f *fakeSink) RecordStaging(res coremetrics.StagingResult) error {
	f.records = append(f.records, res)
	return f.err
}

func (f *fakeSink) RecordFleetSize(size int) error {
	f.fleet = size
	return f.err
}

func TestMultiSinkFansOut(t *testing.T) {
	a := &fakeSink{}
	b := &fakeSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordStaging(coremetrics.StagingResult{PersonID: "p1"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(a.records) != 1 || len(b.records) != 1 {
		t.Fatalf("expected both sinks to record")
	}
	if err := m.RecordFleetSize(5); err != nil {
		t.Fatalf("fleet: %v", err)
	}
	if a.fleet != 5 || b.fleet != 5 {
		t.Fatalf("expected both sinks to track fleet size")
	}
}

func TestMultiSinkCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeSink{err: boom}
	b := &fakeSink{}
	m := NewMultiSink(a, b)
	err := m.RecordStaging(coremetrics.StagingResult{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error got %v", err)
	}
	if len(b.records) != 1 {
		t.Fatalf("second sink must still record")
	}
}
