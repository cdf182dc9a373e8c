package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if c.APIListen != ":8000" {
		t.Errorf("api_listen = %s", c.APIListen)
	}
	if c.SampleIntervalSeconds != 2 {
		t.Errorf("sample_interval_seconds = %d, want 2", c.SampleIntervalSeconds)
	}
	if c.HistoryCapacity != 30 {
		t.Errorf("history_capacity = %d, want 30 (60s at 2s ticks)", c.HistoryCapacity)
	}
	if c.DiskMount != "/" {
		t.Errorf("disk_mount = %s", c.DiskMount)
	}
	if err := c.validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
	if c.SampleInterval() != 2*time.Second {
		t.Errorf("SampleInterval = %s", c.SampleInterval())
	}
	if c.ReaderTimeoutDuration() != time.Second {
		t.Errorf("ReaderTimeoutDuration = %s", c.ReaderTimeoutDuration())
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "telemetry.yaml")
	content := `api_listen: ":9100"
sample_interval_seconds: 5
reader_timeout: "2s"
disk_mount: "/data"
network_interface: "wlan0"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	old := cfg
	defer func() { cfg = old }()

	LoadConfig(path)
	if cfg.APIListen != ":9100" {
		t.Errorf("api_listen = %s", cfg.APIListen)
	}
	if cfg.SampleIntervalSeconds != 5 {
		t.Errorf("sample_interval_seconds = %d", cfg.SampleIntervalSeconds)
	}
	if cfg.NetworkInterface != "wlan0" {
		t.Errorf("network_interface = %s", cfg.NetworkInterface)
	}
	// Untouched keys keep their defaults.
	if cfg.WSPath != "/ws" {
		t.Errorf("ws_path = %s, want default", cfg.WSPath)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()

	LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if cfg.APIListen != ":8000" {
		t.Errorf("missing file should fall back to defaults, got %s", cfg.APIListen)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"interval too small", func(c *Config) { c.SampleIntervalSeconds = 0 }},
		{"interval too large", func(c *Config) { c.SampleIntervalSeconds = 90 }},
		{"interval not dividing a minute", func(c *Config) { c.SampleIntervalSeconds = 7 }},
		{"unparseable timeout", func(c *Config) { c.ReaderTimeout = "soon" }},
		{"timeout above interval", func(c *Config) { c.ReaderTimeout = "5s" }},
		{"no history", func(c *Config) { c.HistoryCapacity = 0 }},
		{"no queue", func(c *Config) { c.SubscriberQueue = 0 }},
	}
	for _, tc := range cases {
		c := DefaultConfig()
		tc.mutate(c)
		if err := c.validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
