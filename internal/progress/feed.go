// Package progress records lesson completions and fans out live updates to
// subscribed history views.
package progress

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Feed notifies per-user subscribers that the completion history changed.
// Notifications carry no payload; subscribers re-read the history, so a late
// or coalesced notification can never apply a stale snapshot.
type Feed interface {
	// Publish signals that userID's history gained an event.
	Publish(ctx context.Context, userID string) error
	// Subscribe returns a notification channel and a release function. The
	// release must be called when the owning view goes away.
	Subscribe(ctx context.Context, userID string) (<-chan struct{}, func())
}

// RedisFeed distributes notifications over Redis pub/sub so every API
// replica sees completion writes from any of them.
type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

func feedChannel(userID string) string {
	return "progress:" + userID
}

func (f *RedisFeed) Publish(ctx context.Context, userID string) error {
	return f.client.Publish(ctx, feedChannel(userID), "completed").Err()
}

func (f *RedisFeed) Subscribe(ctx context.Context, userID string) (<-chan struct{}, func()) {
	pubsub := f.client.Subscribe(ctx, feedChannel(userID))
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		for range pubsub.Channel() {
			select {
			case out <- struct{}{}:
			default: // a pending notification already covers this update
			}
		}
	}()

	release := func() { _ = pubsub.Close() }
	return out, release
}

// MemoryFeed is the in-process fallback used when Redis is not configured
// and in tests. Single-replica semantics only.
type MemoryFeed struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: make(map[string]map[chan struct{}]struct{})}
}

func (f *MemoryFeed) Publish(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs[userID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (f *MemoryFeed) Subscribe(_ context.Context, userID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	f.mu.Lock()
	if f.subs[userID] == nil {
		f.subs[userID] = make(map[chan struct{}]struct{})
	}
	f.subs[userID][ch] = struct{}{}
	f.mu.Unlock()

	release := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if set, ok := f.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(f.subs, userID)
			}
		}
	}
	return ch, release
}
