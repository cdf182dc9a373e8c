package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// APIListen is the REST API address.
	APIListen string `yaml:"api_listen"`
	// WSListen is the websocket push stream address.
	WSListen string `yaml:"ws_listen"`
	WSPath   string `yaml:"ws_path"`

	// SampleIntervalSeconds is the tick interval; it must divide a
	// minute evenly (1, 2, 3, 4, 5, 6, 10, 12, 15, 20 or 30).
	SampleIntervalSeconds int `yaml:"sample_interval_seconds"`
	// ReaderTimeout bounds external tool calls, duration string.
	ReaderTimeout string `yaml:"reader_timeout"`

	// HistoryCapacity is entries kept per graphed metric.
	HistoryCapacity int `yaml:"history_capacity"`
	// SubscriberQueue is snapshots buffered per push consumer.
	SubscriberQueue int `yaml:"subscriber_queue"`

	DiskMount        string `yaml:"disk_mount"`
	NetworkInterface string `yaml:"network_interface"`
	ThermalZone      string `yaml:"thermal_zone"`

	// EnableControl gates the reboot/shutdown endpoints.
	EnableControl bool `yaml:"enable_control"`
	// AlertRetention is how many recent alert events the live store keeps.
	AlertRetention int `yaml:"alert_retention"`
}

var cfg *Config

func DefaultConfig() *Config {
	return &Config{
		APIListen:             ":8000",
		WSListen:              ":8001",
		WSPath:                "/ws",
		SampleIntervalSeconds: 2,
		ReaderTimeout:         "1s",
		HistoryCapacity:       30,
		SubscriberQueue:       8,
		DiskMount:             "/",
		ThermalZone:           "/sys/class/thermal/thermal_zone0/temp",
		EnableControl:         true,
		AlertRetention:        100,
	}
}

// LoadConfig reads the yaml config at path over the defaults. A missing
// file is fine; a malformed or invalid one is fatal.
func LoadConfig(path string) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(raw, c); err != nil {
			log.Panicf("config %s: %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		log.Panicf("config %s: %v", path, err)
	}
	if err := c.validate(); err != nil {
		log.Panicf("config %s: %v", path, err)
	}
	cfg = c
}

func (c *Config) validate() error {
	if c.SampleIntervalSeconds < 1 || c.SampleIntervalSeconds > 59 {
		return fmt.Errorf("sample_interval_seconds %d out of range (1..59)", c.SampleIntervalSeconds)
	}
	if 60%c.SampleIntervalSeconds != 0 {
		return fmt.Errorf("sample_interval_seconds %d must divide a minute evenly", c.SampleIntervalSeconds)
	}
	timeout, err := time.ParseDuration(c.ReaderTimeout)
	if err != nil {
		return fmt.Errorf("reader_timeout: %w", err)
	}
	if timeout <= 0 || timeout >= c.SampleInterval() {
		return fmt.Errorf("reader_timeout %s must be positive and below the sample interval", c.ReaderTimeout)
	}
	if c.HistoryCapacity < 1 {
		return fmt.Errorf("history_capacity %d must be positive", c.HistoryCapacity)
	}
	if c.SubscriberQueue < 1 {
		return fmt.Errorf("subscriber_queue %d must be positive", c.SubscriberQueue)
	}
	return nil
}

func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.SampleIntervalSeconds) * time.Second
}

func (c *Config) ReaderTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.ReaderTimeout)
	if err != nil {
		return c.SampleInterval() / 2
	}
	return d
}
