// Package sampler drives the periodic telemetry ticks: it invokes the
// metric readers, derives rate metrics from the previous raw sample,
// assembles immutable snapshots and feeds the rolling history.
package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/henrylee2cn/goutil/calendar/cron"
	"github.com/shirou/gopsutil/v3/cpu"

	"home_telemetry/hub"
	"home_telemetry/model"
	"home_telemetry/reader"
)

// Readers are the per-metric-family sources a Sampler polls. The struct
// exists so tests can substitute any source; production code uses
// DefaultReaders.
type Readers struct {
	Temperature func(zonePath string) (*float64, error)
	CPUTimes    func() (*cpu.TimesStat, error)
	Memory      func() (*model.Memory, error)
	Disk        func(mountPoint string) (*model.Disk, error)
	WiFi        func(ctx context.Context) (*model.WiFi, error)
	NetCounters func(name string) (*reader.NetStat, error)
	System      func() (*model.System, error)
	Throttling  func(ctx context.Context) (*model.Throttling, error)
}

func DefaultReaders() Readers {
	return Readers{
		Temperature: reader.Temperature,
		CPUTimes:    reader.CPUTimes,
		Memory:      reader.Memory,
		Disk:        reader.Disk,
		WiFi:        reader.WiFi,
		NetCounters: reader.NetCounters,
		System:      reader.System,
		Throttling:  reader.Throttling,
	}
}

// Options configure a Sampler.
type Options struct {
	// Interval between ticks, whole seconds, 1s..59s.
	Interval time.Duration
	// ReaderTimeout bounds external tool invocations (iwconfig,
	// vcgencmd). Must stay below Interval.
	ReaderTimeout time.Duration
	// DiskMount is the mount point reported in the disk category.
	DiskMount string
	// NetworkInterface pins the monitored interface; empty auto-detects.
	NetworkInterface string
	// ThermalZone is the sysfs temperature file.
	ThermalZone string
}

// rawSample holds the cumulative counters of one tick, kept only long
// enough to derive the next tick's rates. Owned exclusively by the
// Sampler goroutine.
type rawSample struct {
	cpu *cpu.TimesStat
	net *reader.NetStat
	at  time.Time
}

type Sampler struct {
	opts       Options
	readers    Readers
	hub        *hub.Hub
	history    *History
	onSnapshot func(*model.Snapshot)
	log        *slog.Logger

	prev     *rawSample // nil until the first tick completes (cold state)
	inFlight atomic.Bool
	cron     *cron.Cron
}

func New(opts Options, h *hub.Hub, hist *History, logger *slog.Logger, onSnapshot func(*model.Snapshot)) *Sampler {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.ReaderTimeout <= 0 || opts.ReaderTimeout >= opts.Interval {
		opts.ReaderTimeout = opts.Interval / 2
	}
	if opts.ThermalZone == "" {
		opts.ThermalZone = reader.DefaultThermalZone
	}
	if opts.DiskMount == "" {
		opts.DiskMount = "/"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sampler{
		opts:       opts,
		readers:    DefaultReaders(),
		hub:        h,
		history:    hist,
		onSnapshot: onSnapshot,
		log:        logger,
	}
}

// SetReaders replaces the metric sources. Call before Start.
func (s *Sampler) SetReaders(r Readers) {
	s.readers = r
}

// Start schedules ticks on the configured interval.
func (s *Sampler) Start() error {
	seconds := int(s.opts.Interval.Seconds())
	if seconds < 1 || seconds > 59 {
		return fmt.Errorf("sample interval %s out of range (1s..59s)", s.opts.Interval)
	}
	// The cron seconds field restarts each minute, so a step that does
	// not divide 60 would leave a short gap at every minute boundary.
	if 60%seconds != 0 {
		return fmt.Errorf("sample interval %s must divide a minute evenly", s.opts.Interval)
	}
	c := cron.New()
	if err := c.AddFunc(fmt.Sprintf("*/%d * * * * *", seconds), s.run); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	s.log.Info("sampler started", "interval", s.opts.Interval.String())
	return nil
}

func (s *Sampler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// run executes one tick. Ticks never overlap: if the previous one is
// still in flight this slot is skipped and sampling resumes on the next.
func (s *Sampler) run() {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.log.Warn("previous tick still in flight, skipping")
		return
	}
	defer s.inFlight.Store(false)

	snap := s.Tick()
	s.hub.Publish(snap)
	if s.onSnapshot != nil {
		s.onSnapshot(snap)
	}
}

// Tick samples all readers once and assembles a Snapshot. A failing
// reader leaves its category nil; every other category proceeds. The
// stored raw sample is replaced after rates are derived from it.
func (s *Sampler) Tick() *model.Snapshot {
	now := time.Now()
	snap := &model.Snapshot{Timestamp: now.Unix()}

	cur := &rawSample{at: now}
	if times, err := s.readers.CPUTimes(); err != nil {
		s.log.Warn("cpu times unavailable", "err", err)
	} else {
		cur.cpu = times
	}
	if stat, err := s.readers.NetCounters(s.opts.NetworkInterface); err != nil {
		s.log.Warn("network counters unavailable", "err", err)
	} else {
		cur.net = stat
	}

	cpuCat := &model.CPU{}
	haveCPU := false
	if temp, err := s.readers.Temperature(s.opts.ThermalZone); err != nil {
		s.log.Warn("cpu temperature unavailable", "err", err)
	} else if temp != nil {
		cpuCat.TemperatureCelsius = temp
		haveCPU = true
	}
	if cur.cpu != nil {
		haveCPU = true
		if s.prev != nil && s.prev.cpu != nil {
			cpuCat.UsagePercent = CPUUsagePercent(*s.prev.cpu, *cur.cpu)
		}
	}
	if haveCPU {
		snap.CPU = cpuCat
	}

	if m, err := s.readers.Memory(); err != nil {
		s.log.Warn("memory unavailable", "err", err)
	} else {
		snap.Memory = m
	}
	if d, err := s.readers.Disk(s.opts.DiskMount); err != nil {
		s.log.Warn("disk unavailable", "mount", s.opts.DiskMount, "err", err)
	} else {
		snap.Disk = d
	}
	// Each blocking reader gets its own timeout so a slow tool cannot
	// eat a sibling's budget.
	if w, err := readWithTimeout(s.opts.ReaderTimeout, s.readers.WiFi); err != nil {
		s.log.Warn("wifi unavailable", "err", err)
	} else {
		snap.WiFi = w
	}
	if sys, err := s.readers.System(); err != nil {
		s.log.Warn("system info unavailable", "err", err)
	} else {
		snap.System = sys
	}
	if th, err := readWithTimeout(s.opts.ReaderTimeout, s.readers.Throttling); err != nil {
		s.log.Warn("throttle state unreadable", "err", err)
	} else {
		snap.Throttling = th
	}

	if cur.net != nil {
		net := &model.Network{
			Interface: cur.net.Interface,
			BytesSent: cur.net.BytesSent,
			BytesRecv: cur.net.BytesRecv,
		}
		if s.prev != nil && s.prev.net != nil && s.prev.net.Interface == cur.net.Interface {
			elapsed := cur.at.Sub(s.prev.at).Seconds()
			net.SentBytesPerSec = BytesPerSec(s.prev.net.BytesSent, cur.net.BytesSent, elapsed)
			net.RecvBytesPerSec = BytesPerSec(s.prev.net.BytesRecv, cur.net.BytesRecv, elapsed)
		}
		snap.Network = net
	}

	s.prev = cur

	if s.history != nil {
		if cur.cpu != nil {
			s.history.CPU.Append(snap.Timestamp, cpuCat.UsagePercent)
		}
		if snap.Memory != nil {
			s.history.Memory.Append(snap.Timestamp, snap.Memory.UsedPercent)
		}
		if cpuCat.TemperatureCelsius != nil {
			s.history.Temperature.Append(snap.Timestamp, *cpuCat.TemperatureCelsius)
		}
	}
	return snap
}

func readWithTimeout[T any](timeout time.Duration, read func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return read(ctx)
}
