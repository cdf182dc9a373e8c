package reader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
)

// DefaultThermalZone is where the SoC temperature lives on Raspberry Pi
// and most ARM boards.
const DefaultThermalZone = "/sys/class/thermal/thermal_zone0/temp"

// Temperature reads the CPU temperature from a sysfs thermal zone.
// The zone reports millidegrees Celsius.
func Temperature(zonePath string) (*float64, error) {
	raw, err := os.ReadFile(zonePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", zonePath, err)
	}
	c, err := parseMillidegrees(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", zonePath, err)
	}
	return &c, nil
}

func parseMillidegrees(s string) (float64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return float64(v) / 1000.0, nil
}

// CPUTimes returns the cumulative per-state tick counters since boot.
// Usage percent is derived elsewhere from two successive samples.
func CPUTimes() (*cpu.TimesStat, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, errors.New("no cpu times reported")
	}
	t := times[0]
	return &t, nil
}
