package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"creditref/internal/draft/models"
	"creditref/pkg/platform/sentinel"
	"creditref/pkg/requestcontext"
)

type memoryEntry struct {
	body      []byte
	expiresAt time.Time
}

// InMemoryStore keeps drafts in process. Drafts are stored encoded so callers
// never share maps with the store.
type InMemoryStore struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]memoryEntry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{drafts: make(map[uuid.UUID]memoryEntry)}
}

func (s *InMemoryStore) Save(ctx context.Context, draft *models.Draft, ttl time.Duration) error {
	body, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := requestcontext.Now(ctx)
	if existing, ok := s.drafts[draft.ID]; ok && now.Before(existing.expiresAt) {
		return fmt.Errorf("draft %s: %w", draft.ID, sentinel.ErrConflict)
	}
	s.drafts[draft.ID] = memoryEntry{body: body, expiresAt: now.Add(ttl)}
	return nil
}

func (s *InMemoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	s.mu.RLock()
	entry, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok || !requestcontext.Now(ctx).Before(entry.expiresAt) {
		return nil, fmt.Errorf("draft %s: %w", id, sentinel.ErrNotFound)
	}
	return decode(entry.body)
}

// RemoveExpiredAt drops drafts whose TTL has lapsed as of now.
func (s *InMemoryStore) RemoveExpiredAt(_ context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.drafts {
		if !now.Before(entry.expiresAt) {
			delete(s.drafts, id)
		}
	}
	return nil
}

func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

func decode(body []byte) (*models.Draft, error) {
	var draft models.Draft
	if err := json.Unmarshal(body, &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}
