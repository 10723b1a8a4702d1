package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

type recordingRecorder struct {
	mu     sync.Mutex
	events []domain.ApplicationEvent
	fails  int
	calls  int
}

func (r *recordingRecorder) Record(_ context.Context, e domain.ApplicationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.fails > 0 {
		r.fails--
		return errors.New("store unavailable")
	}
	r.events = append(r.events, e)
	return nil
}

func (r *recordingRecorder) snapshot() ([]domain.ApplicationEvent, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ApplicationEvent(nil), r.events...), r.calls
}

type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (m *memDedup) IsDuplicate(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen[key], nil
}

func (m *memDedup) Mark(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[key] = true
	return nil
}

func transition(app string, from, to domain.ApplicationStatus) domain.ApplicationEvent {
	return domain.ApplicationEvent{ApplicationID: app, From: from, To: to, OccurredAt: time.Now()}
}

func TestDispatcher_PreservesPerApplicationOrder(t *testing.T) {
	rec := &recordingRecorder{}
	d := NewDispatcher(4, rec, nil, zerolog.Nop())
	d.Start(context.Background())

	d.Publish(transition("a-1", domain.ApplicationApplied, domain.ApplicationShortlisted))
	d.Publish(transition("a-2", domain.ApplicationApplied, domain.ApplicationRejected))
	d.Publish(transition("a-1", domain.ApplicationShortlisted, domain.ApplicationHired))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	events, _ := rec.snapshot()
	require.Len(t, events, 3)

	var a1 []domain.ApplicationStatus
	for _, e := range events {
		if e.ApplicationID == "a-1" {
			a1 = append(a1, e.To)
		}
	}
	assert.Equal(t, []domain.ApplicationStatus{domain.ApplicationShortlisted, domain.ApplicationHired}, a1)
}

func TestDispatcher_RetriesFailedRecording(t *testing.T) {
	rec := &recordingRecorder{fails: 1}
	d := NewDispatcher(1, rec, nil, zerolog.Nop())
	d.Start(context.Background())

	d.Publish(transition("a-1", domain.ApplicationApplied, domain.ApplicationRejected))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	events, calls := rec.snapshot()
	assert.Len(t, events, 1)
	assert.Equal(t, 2, calls)
}

func TestDispatcher_SkipsDuplicates(t *testing.T) {
	rec := &recordingRecorder{}
	dedup := &memDedup{seen: map[string]bool{}}
	d := NewDispatcher(1, rec, dedup, zerolog.Nop())
	d.Start(context.Background())

	e := transition("a-1", domain.ApplicationApplied, domain.ApplicationShortlisted)
	d.Publish(e)
	d.Publish(e)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	events, _ := rec.snapshot()
	assert.Len(t, events, 1)
}

func TestDispatcher_PublishNeverBlocks(t *testing.T) {
	d := NewDispatcher(1, &recordingRecorder{}, nil, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Publish(transition("a-1", domain.ApplicationApplied, domain.ApplicationRejected))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
	assert.Len(t, d.workers[0], channelBuffer)
}

func TestDispatcher_PublishAfterCloseIsDropped(t *testing.T) {
	rec := &recordingRecorder{}
	d := NewDispatcher(1, rec, nil, zerolog.Nop())
	d.Start(context.Background())
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() {
		d.Publish(transition("a-1", domain.ApplicationApplied, domain.ApplicationRejected))
	})
}

func TestShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingRecorder{}, nil, zerolog.Nop())
	first := d.shardIndex("a-42")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.shardIndex("a-42"))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 8)
}
