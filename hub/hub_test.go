package hub

import (
	"testing"

	"home_telemetry/model"
)

func snapN(n int64) *model.Snapshot {
	return &model.Snapshot{Timestamp: n}
}

func TestCurrentBeforeFirstTick(t *testing.T) {
	h := New()
	if _, ok := h.Current(); ok {
		t.Error("expected not-ready before any publish")
	}
}

func TestCurrentReturnsLatest(t *testing.T) {
	h := New()
	h.Publish(snapN(1))
	h.Publish(snapN(2))

	got, ok := h.Current()
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if got.Timestamp != 2 {
		t.Errorf("Current = %d, want latest (2)", got.Timestamp)
	}
	// Repeated pulls keep answering with the latest.
	if again, _ := h.Current(); again.Timestamp != 2 {
		t.Errorf("second pull = %d, want 2", again.Timestamp)
	}
}

func TestSubscribersReceiveInProductionOrder(t *testing.T) {
	h := New()
	a := h.Subscribe(10, DropOldest)
	b := h.Subscribe(10, DropOldest)

	for i := int64(1); i <= 5; i++ {
		h.Publish(snapN(i))
	}

	for name, sub := range map[string]*Subscription{"a": a, "b": b} {
		for want := int64(1); want <= 5; want++ {
			got := <-sub.C()
			if got.Timestamp != want {
				t.Errorf("subscriber %s: got %d, want %d", name, got.Timestamp, want)
			}
		}
	}
}

func TestSlowConsumerDoesNotAffectOthers(t *testing.T) {
	h := New()
	stalled := h.Subscribe(2, DropOldest)
	healthy := h.Subscribe(10, DropOldest)

	// The stalled consumer never reads while six snapshots go out.
	for i := int64(1); i <= 6; i++ {
		h.Publish(snapN(i))
	}

	for want := int64(1); want <= 6; want++ {
		got := <-healthy.C()
		if got.Timestamp != want {
			t.Errorf("healthy consumer: got %d, want %d", got.Timestamp, want)
		}
	}

	// The stalled consumer's backlog is bounded and keeps the newest.
	first := <-stalled.C()
	second := <-stalled.C()
	if first.Timestamp != 5 || second.Timestamp != 6 {
		t.Errorf("stalled backlog = %d,%d, want 5,6 (drop-oldest)", first.Timestamp, second.Timestamp)
	}
	select {
	case s := <-stalled.C():
		t.Errorf("unexpected extra snapshot %d", s.Timestamp)
	default:
	}
}

func TestDropNewestPolicy(t *testing.T) {
	h := New()
	sub := h.Subscribe(2, DropNewest)

	for i := int64(1); i <= 4; i++ {
		h.Publish(snapN(i))
	}

	first := <-sub.C()
	second := <-sub.C()
	if first.Timestamp != 1 || second.Timestamp != 2 {
		t.Errorf("backlog = %d,%d, want 1,2 (drop-newest)", first.Timestamp, second.Timestamp)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	h := New()
	sub := h.Subscribe(2, DropOldest)

	sub.Cancel()
	sub.Cancel() // second cancel is a no-op, must not panic

	if n := h.SubscriberCount(); n != 0 {
		t.Errorf("subscriber count = %d, want 0", n)
	}
	if _, open := <-sub.C(); open {
		t.Error("channel should be closed after cancel")
	}

	// Publishing after cancel must not reach the cancelled consumer.
	h.Publish(snapN(9))
}

func TestCancelDoesNotAffectOthers(t *testing.T) {
	h := New()
	gone := h.Subscribe(2, DropOldest)
	kept := h.Subscribe(2, DropOldest)

	gone.Cancel()
	h.Publish(snapN(1))

	got := <-kept.C()
	if got.Timestamp != 1 {
		t.Errorf("remaining subscriber got %d, want 1", got.Timestamp)
	}
}

func TestCloseEndsAllStreams(t *testing.T) {
	h := New()
	a := h.Subscribe(2, DropOldest)
	b := h.Subscribe(2, DropOldest)
	h.Publish(snapN(1))

	h.Close()
	h.Close() // idempotent

	<-a.C()
	if _, open := <-a.C(); open {
		t.Error("stream a should have ended")
	}
	<-b.C()
	if _, open := <-b.C(); open {
		t.Error("stream b should have ended")
	}

	// The last snapshot stays pullable after shutdown.
	if got, ok := h.Current(); !ok || got.Timestamp != 1 {
		t.Error("Current should keep answering after Close")
	}

	// Late subscribers get an already-ended stream, not a hang.
	late := h.Subscribe(2, DropOldest)
	if _, open := <-late.C(); open {
		t.Error("subscription on a closed hub should be closed")
	}
	late.Cancel()
}
