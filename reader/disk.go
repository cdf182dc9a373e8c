package reader

import (
	"github.com/shirou/gopsutil/v3/disk"

	"home_telemetry/model"
)

const bytesPerGB = 1024 * 1024 * 1024

// Disk reports filesystem usage in GB for one mount point.
func Disk(mountPoint string) (*model.Disk, error) {
	u, err := disk.Usage(mountPoint)
	if err != nil {
		return nil, err
	}
	d := &model.Disk{
		TotalGB:    round2(float64(u.Total) / bytesPerGB),
		UsedGB:     round2(float64(u.Used) / bytesPerGB),
		FreeGB:     round2(float64(u.Free) / bytesPerGB),
		MountPoint: mountPoint,
	}
	if u.Total > 0 {
		d.UsedPercent = round2(float64(u.Used) / float64(u.Total) * 100)
	}
	return d, nil
}
