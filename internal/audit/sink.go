// Package audit is the append-only diagnostic sink shared by every ledger
// operation. It replaces an unbounded process-global list with a bounded,
// concurrency-safe ring buffer that is passed explicitly to each component.
package audit

import (
	"sync"
	"time"
)

// Record is one structured diagnostic entry: which operation ran, with which
// parameters, what it did against the store, and how it ended.
type Record struct {
	Timestamp  time.Time      `json:"timestamp"`
	Operation  string         `json:"operation"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Query      string         `json:"query,omitempty"`
	Status     string         `json:"status"`
	Summary    string         `json:"result_summary,omitempty"`
	Error      string         `json:"error_message,omitempty"`
}

// Sink is a bounded ring buffer of diagnostic records. Safe for concurrent
// append and read. Once capacity is reached the oldest records are dropped.
type Sink struct {
	mu    sync.RWMutex
	buf   []Record
	next  int
	full  bool
	total uint64
}

// DefaultCapacity bounds the sink when the caller passes a non-positive size.
const DefaultCapacity = 1000

// NewSink creates a sink holding at most capacity records.
func NewSink(capacity int) *Sink {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Sink{buf: make([]Record, capacity)}
}

// Append records one entry, stamping the time if unset.
func (s *Sink) Append(r Record) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	s.mu.Lock()
	s.buf[s.next] = r
	s.next++
	if s.next == len(s.buf) {
		s.next = 0
		s.full = true
	}
	s.total++
	s.mu.Unlock()
}

// Recent returns up to n records, oldest first. n <= 0 returns everything
// currently held.
func (s *Sink) Recent(n int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	if s.full {
		out = append(out, s.buf[s.next:]...)
		out = append(out, s.buf[:s.next]...)
	} else {
		out = append(out, s.buf[:s.next]...)
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// Len returns the number of records currently held.
func (s *Sink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.full {
		return len(s.buf)
	}
	return s.next
}

// Total returns the number of records ever appended, including dropped ones.
func (s *Sink) Total() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}
