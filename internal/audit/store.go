package audit

import (
	"context"
	"slices"
	"sync"

	"creditref/pkg/platform/sentinel"
)

// MemoryStore keeps events in process. Used when no broker is configured and
// in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByDraft returns the events recorded for one draft, oldest first.
func (s *MemoryStore) ListByDraft(_ context.Context, draftID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.DraftID == draftID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events), nil
}

// QueueStore hands events to a Worker without blocking the request path.
type QueueStore struct {
	queue chan<- Event
}

func NewQueueStore(queue chan<- Event) *QueueStore {
	return &QueueStore{queue: queue}
}

// Append returns sentinel.ErrUnavailable when the queue is full.
func (q *QueueStore) Append(ctx context.Context, event Event) error {
	select {
	case q.queue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return sentinel.ErrUnavailable
	}
}
