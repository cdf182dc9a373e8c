package sampler

import (
	"sync"
	"testing"
)

func TestSeriesAppendBelowCapacity(t *testing.T) {
	s := NewSeries(5)
	s.Append(1, 10)
	s.Append(2, 20)

	got := s.Snapshot()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Value != 10 || got[1].Value != 20 {
		t.Errorf("order = %v, want oldest first", got)
	}
}

func TestSeriesEviction(t *testing.T) {
	s := NewSeries(3)
	for i := int64(1); i <= 5; i++ {
		s.Append(i, float64(i))
	}

	got := s.Snapshot()
	if len(got) != 3 {
		t.Fatalf("len = %d, want capacity 3", len(got))
	}
	for i, want := range []float64{3, 4, 5} {
		if got[i].Value != want {
			t.Errorf("point %d = %v, want %v", i, got[i].Value, want)
		}
		if i > 0 && got[i].Timestamp < got[i-1].Timestamp {
			t.Errorf("timestamps out of order at %d", i)
		}
	}
}

func TestSeriesNeverExceedsCapacity(t *testing.T) {
	s := NewSeries(4)
	for i := int64(0); i < 100; i++ {
		s.Append(i, float64(i))
		if n := s.Len(); n > 4 {
			t.Fatalf("len %d exceeds capacity after %d appends", n, i+1)
		}
	}
	got := s.Snapshot()
	if got[0].Value != 96 || got[3].Value != 99 {
		t.Errorf("window = [%v..%v], want [96..99]", got[0].Value, got[3].Value)
	}
}

func TestSeriesSnapshotDoesNotMutate(t *testing.T) {
	s := NewSeries(3)
	s.Append(1, 1)
	first := s.Snapshot()
	second := s.Snapshot()
	if len(first) != len(second) {
		t.Errorf("snapshot mutated the series: %d vs %d", len(first), len(second))
	}
}

func TestSeriesConcurrentAppendSnapshot(t *testing.T) {
	s := NewSeries(8)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := int64(0); i < 500; i++ {
			s.Append(i, float64(i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if n := len(s.Snapshot()); n > 8 {
				t.Errorf("snapshot len %d exceeds capacity", n)
				return
			}
		}
	}()
	wg.Wait()
}

func TestHistorySnapshotKeys(t *testing.T) {
	h := NewHistory(10)
	h.CPU.Append(1, 42)

	got := h.Snapshot()
	for _, key := range []string{"cpu_percent", "memory_percent", "temperature_celsius"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing series %q", key)
		}
	}
	if len(got["cpu_percent"]) != 1 || got["cpu_percent"][0].Value != 42 {
		t.Errorf("cpu series = %v", got["cpu_percent"])
	}
}
