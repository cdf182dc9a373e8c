package reader

import (
	stdnet "net"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"

	"home_telemetry/model"
)

// System reports hostname, OS and kernel strings, uptime and load
// averages. Load average failure leaves the zero value in place rather
// than failing the whole category.
func System() (*model.System, error) {
	info, err := host.Info()
	if err != nil {
		return nil, err
	}
	sys := &model.System{
		UptimeSeconds: float64(info.Uptime),
		UptimeHours:   round2(float64(info.Uptime) / 3600),
		Hostname:      info.Hostname,
		OS:            strings.TrimSpace(info.Platform + " " + info.PlatformVersion),
		Kernel:        info.KernelVersion,
		IPAddress:     primaryIP(),
	}
	if avg, err := load.Avg(); err == nil {
		sys.LoadAverage = model.LoadAverage{
			Load1:  round2(avg.Load1),
			Load5:  round2(avg.Load5),
			Load15: round2(avg.Load15),
		}
	}
	return sys, nil
}

// primaryIP returns the first IPv4 address of an up, non-loopback
// interface, or "" when the host has none.
func primaryIP() string {
	ifaces, err := stdnet.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&stdnet.FlagUp == 0 || iface.Flags&stdnet.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*stdnet.IPNet)
			if !ok || ipnet.IP.IsLoopback() {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return ""
}
