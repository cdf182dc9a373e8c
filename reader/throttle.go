package reader

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"home_telemetry/model"
)

// vcgencmd get_throttled state bits. Bits 16-19 are the sticky
// "occurred since boot" copies and are ignored: a Snapshot reports
// current state only.
const (
	maskUnderVoltage  = 1 << 0
	maskFreqCapped    = 1 << 1
	maskSoftTempLimit = 1 << 3
)

// Throttling queries the firmware throttle state via vcgencmd. Hosts
// without the tool yield (nil, nil), which callers must keep distinct
// from a present-and-clean zero-flag result.
func Throttling(ctx context.Context) (*model.Throttling, error) {
	out, err := exec.CommandContext(ctx, "vcgencmd", "get_throttled").Output()
	if err != nil {
		return nil, nil
	}
	mask, err := parseThrottleMask(string(out))
	if err != nil {
		return nil, fmt.Errorf("vcgencmd output: %w", err)
	}
	t := decodeThrottleMask(mask)
	return &t, nil
}

// parseThrottleMask parses output of the form "throttled=0x50005".
func parseThrottleMask(s string) (uint64, error) {
	_, value, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return 0, fmt.Errorf("unexpected format %q", strings.TrimSpace(s))
	}
	return strconv.ParseUint(strings.TrimPrefix(value, "0x"), 16, 64)
}

func decodeThrottleMask(mask uint64) model.Throttling {
	t := model.Throttling{
		UnderVoltage:    mask&maskUnderVoltage != 0,
		FrequencyCapped: mask&maskFreqCapped != 0,
		Overheated:      mask&maskSoftTempLimit != 0,
	}
	t.IsThrottled = t.UnderVoltage || t.FrequencyCapped || t.Overheated
	return t
}
