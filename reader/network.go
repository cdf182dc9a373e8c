package reader

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/net"
)

// NetStat holds cumulative byte counters for one interface. These are raw
// monotonic counters; per-second rates come from two successive samples.
type NetStat struct {
	Interface string
	BytesSent uint64
	BytesRecv uint64
}

// NetCounters reads the byte counters for the named interface, or for the
// busiest non-loopback interface when name is empty.
func NetCounters(name string) (*NetStat, error) {
	counters, err := net.IOCounters(true)
	if err != nil {
		return nil, err
	}
	if name != "" {
		for _, c := range counters {
			if c.Name == name {
				return &NetStat{Interface: c.Name, BytesSent: c.BytesSent, BytesRecv: c.BytesRecv}, nil
			}
		}
		return nil, fmt.Errorf("interface %s not found", name)
	}

	var pick *net.IOCountersStat
	for i := range counters {
		c := &counters[i]
		if c.Name == "lo" || strings.HasPrefix(c.Name, "veth") {
			continue
		}
		if pick == nil || c.BytesSent+c.BytesRecv > pick.BytesSent+pick.BytesRecv {
			pick = c
		}
	}
	if pick == nil {
		return nil, nil
	}
	return &NetStat{Interface: pick.Name, BytesSent: pick.BytesSent, BytesRecv: pick.BytesRecv}, nil
}
