package audit

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu      sync.Mutex
	records []Record
	block   chan struct{}
}

func (s *recordingSink) Persist(_ context.Context, rec Record) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func TestTrailDrainsQueue(t *testing.T) {
	sink := &recordingSink{}
	trail := NewTrail(sink, nil, nopLogger{}, 8)
	trail.Start()

	for i := 0; i < 5; i++ {
		trail.Emit(Record{EventType: EventVoteCast, SubjectID: "session-1"})
	}
	trail.Close()

	if got := sink.count(); got != 5 {
		t.Fatalf("persisted %d records, want 5", got)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.records[0].OccurredAt.IsZero() {
		t.Fatal("OccurredAt should be stamped on emit")
	}
}

func TestTrailEmitNeverBlocks(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	trail := NewTrail(sink, nil, nopLogger{}, 2)
	trail.Start()

	done := make(chan struct{})
	go func() {
		// Worker is stuck on the first record; the queue holds two more.
		// Everything beyond that must be dropped, not block.
		for i := 0; i < 10; i++ {
			trail.Emit(Record{EventType: EventSubmissionCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked on a full queue")
	}

	close(sink.block)
	trail.Close()

	if got := sink.count(); got > 3 {
		t.Fatalf("persisted %d records, expected at most 3 (1 in flight + 2 queued)", got)
	}
}

func TestTrailAsEventPayload(t *testing.T) {
	rec := Record{
		EventType:   EventSessionTallied,
		ActorKind:   "system",
		SubjectType: "session",
		SubjectID:   "abc",
		Details:     map[string]interface{}{"status": "approved"},
		OccurredAt:  time.Now().UTC(),
	}
	evt := rec.asEvent()
	if evt.EventType() != EventSessionTallied {
		t.Fatalf("event type = %s", evt.EventType())
	}
	payload := evt.Payload()
	if payload["subject_id"] != "abc" {
		t.Fatalf("payload subject_id = %v", payload["subject_id"])
	}
}
