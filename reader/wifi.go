package reader

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"home_telemetry/model"
)

const procWireless = "/proc/net/wireless"

// WiFi reads the wireless signal, trying /proc/net/wireless first and
// falling back to iwconfig. A host with no wireless hardware (or neither
// source readable) yields (nil, nil).
func WiFi(ctx context.Context) (*model.WiFi, error) {
	if raw, err := os.ReadFile(procWireless); err == nil {
		if w := parseProcWireless(string(raw)); w != nil {
			return w, nil
		}
	}
	out, err := exec.CommandContext(ctx, "iwconfig").Output()
	if err != nil {
		return nil, nil
	}
	return parseIwconfig(string(out)), nil
}

// parseProcWireless extracts link quality and signal level from the first
// interface row of /proc/net/wireless. The kernel reports quality out of
// 70, which is scaled to percent.
func parseProcWireless(content string) *model.WiFi {
	lines := strings.Split(content, "\n")
	if len(lines) < 3 {
		return nil
	}
	fields := strings.Fields(lines[2])
	if len(fields) < 4 {
		return nil
	}
	quality, qerr := strconv.Atoi(strings.TrimSuffix(fields[2], "."))
	level, lerr := strconv.Atoi(strings.TrimSuffix(fields[3], "."))
	if lerr != nil {
		return nil
	}
	w := &model.WiFi{SignalLevelDBm: &level}
	if qerr == nil {
		pct := round2(float64(quality) / 70.0 * 100)
		w.SignalQualityPercent = &pct
	} else {
		pct := qualityFromLevel(level)
		w.SignalQualityPercent = &pct
	}
	return w
}

// parseIwconfig scans iwconfig output for lines like
//
//	Link Quality=60/70  Signal level=-50 dBm
func parseIwconfig(output string) *model.WiFi {
	var w model.WiFi
	for _, line := range strings.Split(output, "\n") {
		if idx := strings.Index(line, "Link Quality="); idx >= 0 {
			part := strings.Fields(line[idx+len("Link Quality="):])
			if len(part) > 0 {
				if cur, max, ok := strings.Cut(part[0], "/"); ok {
					c, cerr := strconv.Atoi(cur)
					m, merr := strconv.Atoi(max)
					if cerr == nil && merr == nil && m > 0 {
						pct := round2(float64(c) / float64(m) * 100)
						w.SignalQualityPercent = &pct
					}
				}
			}
		}
		if idx := strings.Index(line, "Signal level="); idx >= 0 {
			part := strings.Fields(line[idx+len("Signal level="):])
			if len(part) > 0 {
				if lvl, err := strconv.Atoi(part[0]); err == nil {
					level := lvl
					w.SignalLevelDBm = &level
				}
			}
		}
	}
	if w.SignalLevelDBm == nil {
		return nil
	}
	if w.SignalQualityPercent == nil {
		pct := qualityFromLevel(*w.SignalLevelDBm)
		w.SignalQualityPercent = &pct
	}
	return &w
}

// qualityFromLevel maps a dBm signal level to a 0-100 quality percent when
// the driver reports no quality ratio: clamp to [-100, -50], then scale
// linearly (so -100 dBm = 0%, -50 dBm = 100%).
func qualityFromLevel(dbm int) float64 {
	if dbm <= -100 {
		return 0
	}
	if dbm >= -50 {
		return 100
	}
	return round2(float64(dbm+100) * 2)
}
