package reader

import (
	"github.com/shirou/gopsutil/v3/mem"

	"home_telemetry/model"
)

const bytesPerMB = 1024 * 1024

// Memory reports RAM usage in MB. Used is total minus available rather
// than total minus free: available accounts for reclaimable cache, raw
// free would overstate memory pressure.
func Memory() (*model.Memory, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}
	return buildMemory(v.Total, v.Free, v.Available), nil
}

func buildMemory(total, free, available uint64) *model.Memory {
	m := &model.Memory{
		TotalMB:     round2(float64(total) / bytesPerMB),
		FreeMB:      round2(float64(free) / bytesPerMB),
		AvailableMB: round2(float64(available) / bytesPerMB),
	}
	m.UsedMB = round2(m.TotalMB - m.AvailableMB)
	if m.UsedMB < 0 {
		m.UsedMB = 0
	}
	if m.TotalMB > 0 {
		m.UsedPercent = round2(m.UsedMB / m.TotalMB * 100)
	}
	return m
}
