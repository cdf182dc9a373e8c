// Package hub fans completed snapshots out to any number of concurrent
// consumers. Production cadence is independent of consumer count and
// speed: each subscription gets a bounded queue, and a lagging consumer
// only ever loses its own backlog.
package hub

import (
	"sync"
	"sync/atomic"

	"home_telemetry/model"
)

// Policy controls what happens when a subscription's queue is full.
type Policy int

const (
	// DropOldest evicts the oldest queued snapshot to admit the newest.
	// This is what a live dashboard wants.
	DropOldest Policy = iota
	// DropNewest keeps the queued backlog and discards the incoming
	// snapshot instead.
	DropNewest
)

const defaultQueueSize = 8

type Hub struct {
	latest atomic.Pointer[model.Snapshot]

	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

func New() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Publish stores s as the latest snapshot and offers it to every
// subscription. Never blocks.
func (h *Hub) Publish(s *model.Snapshot) {
	h.latest.Store(s)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for sub := range h.subs {
		select {
		case sub.ch <- s:
			continue
		default:
		}
		if sub.policy == DropNewest {
			continue
		}
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- s:
		default:
		}
	}
}

// Current returns the most recently published snapshot, or ok=false
// before the first tick completes.
func (h *Hub) Current() (*model.Snapshot, bool) {
	s := h.latest.Load()
	if s == nil {
		return nil, false
	}
	return s, true
}

// Subscribe registers a consumer. Snapshots published after this call are
// delivered in production order on C until Cancel or hub shutdown. On a
// closed hub the returned subscription's channel is already closed.
func (h *Hub) Subscribe(queueSize int, policy Policy) *Subscription {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	sub := &Subscription{
		hub:    h,
		ch:     make(chan *model.Snapshot, queueSize),
		policy: policy,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

// Close ends the stream for every subscription. Subsequent Publish calls
// are no-ops; Current keeps answering with the last snapshot.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

// SubscriberCount reports active subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Subscription is one consumer's handle on the snapshot stream.
type Subscription struct {
	hub    *Hub
	ch     chan *model.Snapshot
	policy Policy
}

// C yields snapshots in production order. It is closed by Cancel or by
// hub shutdown.
func (s *Subscription) C() <-chan *model.Snapshot {
	return s.ch
}

// Cancel releases the subscription. Idempotent; a second call is a no-op.
func (s *Subscription) Cancel() {
	h := s.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.ch)
}
