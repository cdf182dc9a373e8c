// Package alert evaluates thresholds over completed snapshots.
package alert

import (
	"fmt"

	"home_telemetry/model"
)

// Default thresholds.
const (
	HighTemperatureCelsius = 80.0
	DiskFullPercent        = 90.0
)

// Evaluate applies the threshold set to one snapshot and returns zero or
// more events, in threshold-declaration order: temperature, disk,
// throttling. A category that is unavailable in the snapshot skips its
// checks; absent data is never treated as a violation.
func Evaluate(s *model.Snapshot) []model.AlertEvent {
	if s == nil {
		return nil
	}
	var events []model.AlertEvent

	if s.CPU != nil && s.CPU.TemperatureCelsius != nil && *s.CPU.TemperatureCelsius > HighTemperatureCelsius {
		events = append(events, model.AlertEvent{
			Kind:      "high_temperature",
			Severity:  "critical",
			Message:   fmt.Sprintf("CPU temperature %.1f°C exceeds %.0f°C", *s.CPU.TemperatureCelsius, HighTemperatureCelsius),
			Value:     *s.CPU.TemperatureCelsius,
			Timestamp: s.Timestamp,
		})
	}

	if s.Disk != nil && s.Disk.UsedPercent > DiskFullPercent {
		events = append(events, model.AlertEvent{
			Kind:      "disk_full",
			Severity:  "warning",
			Message:   fmt.Sprintf("disk %s at %.1f%% used", s.Disk.MountPoint, s.Disk.UsedPercent),
			Value:     s.Disk.UsedPercent,
			Timestamp: s.Timestamp,
		})
	}

	if s.Throttling != nil && s.Throttling.IsThrottled {
		if s.Throttling.UnderVoltage {
			events = append(events, throttleEvent(s, "under_voltage", "critical", "under-voltage detected"))
		}
		if s.Throttling.FrequencyCapped {
			events = append(events, throttleEvent(s, "frequency_capped", "warning", "CPU frequency capped"))
		}
		if s.Throttling.Overheated {
			events = append(events, throttleEvent(s, "overheated", "critical", "soft temperature limit active"))
		}
	}
	return events
}

func throttleEvent(s *model.Snapshot, flag, severity, detail string) model.AlertEvent {
	return model.AlertEvent{
		Kind:      "throttling_" + flag,
		Severity:  severity,
		Message:   "throttling: " + detail,
		Value:     1,
		Timestamp: s.Timestamp,
	}
}
