package sampler

import (
	"sync"

	"home_telemetry/model"
)

// Series is a fixed-capacity FIFO of scalar readings. When full, the
// oldest entry is evicted to admit the newest. Append and Snapshot are
// safe to call concurrently.
type Series struct {
	mu     sync.Mutex
	cap    int
	points []model.HistoryPoint
	head   int
}

func NewSeries(capacity int) *Series {
	if capacity <= 0 {
		capacity = 1
	}
	return &Series{cap: capacity, points: make([]model.HistoryPoint, 0, capacity)}
}

func (s *Series) Append(ts int64, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := model.HistoryPoint{Timestamp: ts, Value: value}
	if len(s.points) < s.cap {
		s.points = append(s.points, p)
		return
	}
	s.points[s.head] = p
	s.head = (s.head + 1) % s.cap
}

// Snapshot returns the series oldest-first without mutating it.
func (s *Series) Snapshot() []model.HistoryPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.HistoryPoint, 0, len(s.points))
	out = append(out, s.points[s.head:]...)
	out = append(out, s.points[:s.head]...)
	return out
}

func (s *Series) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// History groups the rolling series tracked for graphing.
type History struct {
	CPU         *Series
	Memory      *Series
	Temperature *Series
}

func NewHistory(capacity int) *History {
	return &History{
		CPU:         NewSeries(capacity),
		Memory:      NewSeries(capacity),
		Temperature: NewSeries(capacity),
	}
}

// Snapshot returns all series keyed by their wire names.
func (h *History) Snapshot() map[string][]model.HistoryPoint {
	return map[string][]model.HistoryPoint{
		"cpu_percent":         h.CPU.Snapshot(),
		"memory_percent":      h.Memory.Snapshot(),
		"temperature_celsius": h.Temperature.Snapshot(),
	}
}
