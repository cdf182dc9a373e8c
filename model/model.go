package model

// Snapshot is one complete set of telemetry readings captured at a single
// instant. Category pointers are nil when that source was unavailable for
// the tick; the remaining categories are still populated.
type Snapshot struct {
	CPU        *CPU        `json:"cpu"`
	WiFi       *WiFi       `json:"wifi"`
	System     *System     `json:"system"`
	Memory     *Memory     `json:"memory"`
	Disk       *Disk       `json:"disk"`
	Network    *Network    `json:"network"`
	Throttling *Throttling `json:"throttling"`
	Timestamp  int64       `json:"timestamp"`
}

type CPU struct {
	// TemperatureCelsius is nil when no thermal zone is readable,
	// never 0, so threshold checks stay meaningful.
	TemperatureCelsius *float64 `json:"temperature_celsius"`
	UsagePercent       float64  `json:"usage_percent"`
}

type WiFi struct {
	SignalLevelDBm       *int     `json:"signal_level_dbm"`
	SignalQualityPercent *float64 `json:"signal_quality_percent"`
}

type System struct {
	UptimeSeconds float64     `json:"uptime_seconds"`
	UptimeHours   float64     `json:"uptime_hours"`
	LoadAverage   LoadAverage `json:"load_average"`
	Hostname      string      `json:"hostname"`
	OS            string      `json:"os"`
	Kernel        string      `json:"kernel"`
	IPAddress     string      `json:"ip_address"`
}

type LoadAverage struct {
	Load1  float64 `json:"load_1min"`
	Load5  float64 `json:"load_5min"`
	Load15 float64 `json:"load_15min"`
}

type Memory struct {
	TotalMB     float64 `json:"total_mb"`
	FreeMB      float64 `json:"free_mb"`
	AvailableMB float64 `json:"available_mb"`
	UsedMB      float64 `json:"used_mb"`
	UsedPercent float64 `json:"used_percent"`
}

type Disk struct {
	TotalGB     float64 `json:"total_gb"`
	UsedGB      float64 `json:"used_gb"`
	FreeGB      float64 `json:"free_gb"`
	UsedPercent float64 `json:"used_percent"`
	MountPoint  string  `json:"mount_point"`
}

type Network struct {
	Interface       string  `json:"interface"`
	BytesSent       uint64  `json:"bytes_sent"`
	BytesRecv       uint64  `json:"bytes_recv"`
	SentBytesPerSec float64 `json:"sent_bytes_per_sec"`
	RecvBytesPerSec float64 `json:"recv_bytes_per_sec"`
}

// Throttling mirrors the vcgencmd get_throttled state bits. A nil
// *Throttling in a Snapshot means the tool was unavailable, which is
// not the same as all flags false.
type Throttling struct {
	UnderVoltage    bool `json:"under_voltage"`
	FrequencyCapped bool `json:"frequency_capped"`
	Overheated      bool `json:"overheated"`
	IsThrottled     bool `json:"is_throttled"`
}

// AlertEvent is produced by the threshold evaluator and consumed
// immediately; it is not part of the snapshot stream.
type AlertEvent struct {
	Kind      string  `json:"kind"`
	Severity  string  `json:"severity"`
	Message   string  `json:"message"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
}

// HistoryPoint is one entry of a rolling scalar series.
type HistoryPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}
