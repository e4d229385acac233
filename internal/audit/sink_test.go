package audit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSinkAppendAndRecent(t *testing.T) {
	s := NewSink(10)

	for i := 0; i < 3; i++ {
		s.Append(Record{Operation: fmt.Sprintf("op_%d", i), Status: "SUCCESS"})
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	got := s.Recent(0)
	if len(got) != 3 {
		t.Fatalf("Recent(0) returned %d records, want 3", len(got))
	}
	for i, r := range got {
		if r.Operation != fmt.Sprintf("op_%d", i) {
			t.Errorf("record %d is %q, want oldest-first order", i, r.Operation)
		}
		if r.Timestamp.IsZero() {
			t.Errorf("record %d has a zero timestamp", i)
		}
	}

	last := s.Recent(2)
	if len(last) != 2 {
		t.Fatalf("Recent(2) returned %d records, want 2", len(last))
	}
	if last[0].Operation != "op_1" || last[1].Operation != "op_2" {
		t.Errorf("Recent(2) = %q, %q, want the two newest oldest-first", last[0].Operation, last[1].Operation)
	}
}

func TestSinkCapacityBound(t *testing.T) {
	s := NewSink(5)

	for i := 0; i < 12; i++ {
		s.Append(Record{Operation: fmt.Sprintf("op_%d", i), Status: "SUCCESS"})
	}

	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want capacity 5", s.Len())
	}
	if s.Total() != 12 {
		t.Fatalf("Total() = %d, want 12", s.Total())
	}

	got := s.Recent(0)
	for i, r := range got {
		want := fmt.Sprintf("op_%d", 7+i)
		if r.Operation != want {
			t.Errorf("record %d is %q, want %q", i, r.Operation, want)
		}
	}
}

func TestSinkKeepsCallerTimestamp(t *testing.T) {
	s := NewSink(5)
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.Append(Record{Operation: "op", Status: "SUCCESS", Timestamp: ts})

	got := s.Recent(1)
	if !got[0].Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want the caller's %v", got[0].Timestamp, ts)
	}
}

func TestSinkDefaultCapacity(t *testing.T) {
	s := NewSink(0)
	for i := 0; i < DefaultCapacity+5; i++ {
		s.Append(Record{Operation: "op", Status: "SUCCESS"})
	}
	if s.Len() != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", s.Len(), DefaultCapacity)
	}
}

func TestSinkConcurrentAppend(t *testing.T) {
	s := NewSink(64)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Append(Record{Operation: "op", Status: "SUCCESS"})
				s.Recent(10)
			}
		}()
	}
	wg.Wait()

	if s.Total() != 800 {
		t.Errorf("Total() = %d, want 800", s.Total())
	}
	if s.Len() != 64 {
		t.Errorf("Len() = %d, want 64", s.Len())
	}
}
