package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"home_telemetry/alert"
	"home_telemetry/hub"
	"home_telemetry/model"
	"home_telemetry/sampler"
)

func main() {
	configPath := flag.String("config", "telemetry.yaml", "path to config file")
	flag.Parse()

	LoadConfig(*configPath)
	initDb()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	h := hub.New()
	hist := sampler.NewHistory(cfg.HistoryCapacity)

	alertLog := logger.With("component", "alert")
	s := sampler.New(sampler.Options{
		Interval:         cfg.SampleInterval(),
		ReaderTimeout:    cfg.ReaderTimeoutDuration(),
		DiskMount:        cfg.DiskMount,
		NetworkInterface: cfg.NetworkInterface,
		ThermalZone:      cfg.ThermalZone,
	}, h, hist, logger.With("component", "sampler"), func(snap *model.Snapshot) {
		if err := storeSnapshot(snap); err != nil {
			logger.Warn("live store update failed", "err", err)
		}
		events := alert.Evaluate(snap)
		if len(events) == 0 {
			return
		}
		for _, e := range events {
			alertLog.Warn(e.Message, "kind", e.Kind, "severity", e.Severity, "value", e.Value)
		}
		if err := storeAlerts(events); err != nil {
			logger.Warn("alert store update failed", "err", err)
		}
	})

	if err := s.Start(); err != nil {
		log.Panicf("sampler: %v", err)
	}

	engine := newWSServer(h, logger.With("component", "stream"))
	if err := engine.Start(); err != nil {
		log.Panicf("ws server: %v", err)
	}

	api := newAPIServer(h, hist, logger.With("component", "api"))
	go api.Spin()

	logger.Info("telemetry daemon up", "api", cfg.APIListen, "stream", cfg.WSListen+cfg.WSPath)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt

	logger.Info("shutting down")
	s.Stop()
	// Ends every subscriber's stream instead of leaving them hanging.
	h.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	engine.Shutdown(ctx)
	api.Shutdown(ctx)
}
