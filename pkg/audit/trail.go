package audit

import (
	"context"
	"communal-canon-be/internal/pkg/logger"
	"communal-canon-be/pkg/events"
	"communal-canon-be/pkg/nats"
	"time"
)

// Sink persists audit records. Implemented by the audit event repository.
type Sink interface {
	Persist(ctx context.Context, rec Record) error
}

// Trail is a buffered outbox for audit events. Emit never blocks the
// pipeline: when the queue is full the record is dropped and a warning
// is logged instead.
type Trail struct {
	queue     chan Record
	sink      Sink
	publisher *nats.Publisher // optional, nil when NATS is disabled
	log       logger.ILogger
	done      chan struct{}
}

func NewTrail(sink Sink, publisher *nats.Publisher, log logger.ILogger, queueSize int) *Trail {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Trail{
		queue:     make(chan Record, queueSize),
		sink:      sink,
		publisher: publisher,
		log:       log,
		done:      make(chan struct{}),
	}
}

// Start launches the worker goroutine that drains the queue.
func (t *Trail) Start() {
	go t.run()
}

func (t *Trail) run() {
	defer close(t.done)
	for rec := range t.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := t.sink.Persist(ctx, rec); err != nil {
			t.log.Error("AuditTrail", "failed to persist audit record", map[string]interface{}{
				"event_type": rec.EventType,
				"subject_id": rec.SubjectID,
				"error":      err.Error(),
			})
		}
		if t.publisher != nil {
			if err := t.publisher.Publish(ctx, rec.asEvent()); err != nil {
				t.log.Warn("AuditTrail", "failed to publish audit record", map[string]interface{}{
					"event_type": rec.EventType,
					"error":      err.Error(),
				})
			}
		}
		cancel()
	}
}

func (r Record) asEvent() events.Event {
	return events.BaseEvent{
		Type: r.EventType,
		Data: map[string]interface{}{
			"actor_kind":   r.ActorKind,
			"actor_id":     r.ActorID,
			"subject_type": r.SubjectType,
			"subject_id":   r.SubjectID,
			"details":      r.Details,
		},
		OccurredAt: r.OccurredAt,
	}
}

// Emit enqueues a record without blocking. Records carry the emission
// time so ordering survives queueing delays.
func (t *Trail) Emit(rec Record) {
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	}
	select {
	case t.queue <- rec:
	default:
		t.log.Warn("AuditTrail", "audit queue full, dropping record", map[string]interface{}{
			"event_type": rec.EventType,
			"subject_id": rec.SubjectID,
		})
	}
}

// Close stops accepting records and waits for the worker to drain.
func (t *Trail) Close() {
	close(t.queue)
	<-t.done
}
