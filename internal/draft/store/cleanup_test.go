package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditref/internal/draft/models"
	"creditref/pkg/requestcontext"
)

type failingCleaner struct {
	calls atomic.Int32
}

func (c *failingCleaner) RemoveExpiredAt(context.Context, time.Time) error {
	c.calls.Add(1)
	return errors.New("connection reset")
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunCleanupSurvivesFailedPasses(t *testing.T) {
	var logs lockedBuffer
	cleaner := &failingCleaner{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		RunCleanup(ctx, cleaner, 5*time.Millisecond, slog.New(slog.NewTextHandler(&logs, nil)))
	}()

	assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup loop did not stop after cancellation")
	}
	assert.Contains(t, logs.String(), "draft cleanup failed")
	assert.Contains(t, logs.String(), "connection reset")
}

func TestRunCleanupRemovesExpiredDrafts(t *testing.T) {
	memory := NewInMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	anHourAgo := requestcontext.WithTime(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, memory.Save(anHourAgo, &models.Draft{ID: uuid.New()}, time.Minute))
	require.Equal(t, 1, memory.Len())

	go RunCleanup(ctx, memory, 5*time.Millisecond, slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)))

	assert.Eventually(t, func() bool { return memory.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
}
