package main

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"home_telemetry/hub"
	"home_telemetry/model"
	"home_telemetry/sampler"
)

const version = "1.0.0"

// newAPIServer serves the synchronous side of the contract: current
// snapshot (whole or per category), rolling history, recent alerts and
// the two control actions.
func newAPIServer(h *hub.Hub, hist *sampler.History, logger *slog.Logger) *server.Hertz {
	srv := server.Default(server.WithHostPorts(cfg.APIListen))

	srv.GET("/", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, utils.H{
			"name":        "Home Telemetry API",
			"version":     version,
			"description": "Raspberry Pi system telemetry monitoring API",
			"endpoints": utils.H{
				"telemetry": "/telemetry - All telemetry data",
				"cpu":       "/telemetry/cpu - CPU temperature and usage",
				"wifi":      "/telemetry/wifi - Wi-Fi signal strength",
				"system":    "/telemetry/system - System uptime and load",
				"memory":    "/telemetry/memory - Memory information",
				"history":   "/telemetry/history - Rolling metric history",
				"alerts":    "/alerts - Recent threshold alerts",
				"stream":    cfg.WSPath + " - Snapshot push stream (separate listener)",
			},
		})
	})

	srv.GET("/health", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, utils.H{
			"status":  "healthy",
			"service": "telemetry-api",
		})
	})

	srv.GET("/telemetry", func(ctx context.Context, c *app.RequestContext) {
		snap, ok := currentSnapshot(h, c)
		if !ok {
			return
		}
		success(c, snap)
	})
	srv.GET("/telemetry/cpu", func(ctx context.Context, c *app.RequestContext) {
		snap, ok := currentSnapshot(h, c)
		if !ok {
			return
		}
		success(c, utils.H{"cpu": snap.CPU})
	})
	srv.GET("/telemetry/wifi", func(ctx context.Context, c *app.RequestContext) {
		snap, ok := currentSnapshot(h, c)
		if !ok {
			return
		}
		success(c, utils.H{"wifi": snap.WiFi})
	})
	srv.GET("/telemetry/system", func(ctx context.Context, c *app.RequestContext) {
		snap, ok := currentSnapshot(h, c)
		if !ok {
			return
		}
		success(c, utils.H{"system": snap.System})
	})
	srv.GET("/telemetry/memory", func(ctx context.Context, c *app.RequestContext) {
		snap, ok := currentSnapshot(h, c)
		if !ok {
			return
		}
		success(c, utils.H{"memory": snap.Memory})
	})

	srv.GET("/telemetry/history", func(ctx context.Context, c *app.RequestContext) {
		success(c, hist.Snapshot())
	})

	srv.GET("/alerts", func(ctx context.Context, c *app.RequestContext) {
		rows, err := recentAlerts(cfg.AlertRetention)
		if err != nil {
			logger.Warn("alert query failed", "err", err)
			failure(c, consts.StatusInternalServerError, "alert query failed")
			return
		}
		success(c, utils.H{"alerts": rows})
	})

	srv.POST("/control/reboot", func(ctx context.Context, c *app.RequestContext) {
		handleControl(c, actionReboot, logger)
	})
	srv.POST("/control/shutdown", func(ctx context.Context, c *app.RequestContext) {
		handleControl(c, actionShutdown, logger)
	})

	return srv
}

// currentSnapshot answers "no data yet" with 503 until the first tick
// completes, so clients never see a half-built record.
func currentSnapshot(h *hub.Hub, c *app.RequestContext) (*model.Snapshot, bool) {
	snap, ok := h.Current()
	if !ok {
		failure(c, consts.StatusServiceUnavailable, "no data yet")
		return nil, false
	}
	return snap, true
}

func success(c *app.RequestContext, data any) {
	c.JSON(consts.StatusOK, utils.H{
		"status": "success",
		"data":   data,
	})
}

func failure(c *app.RequestContext, status int, message string) {
	c.JSON(status, utils.H{
		"status":  "error",
		"message": message,
	})
}

func handleControl(c *app.RequestContext, action string, logger *slog.Logger) {
	if !cfg.EnableControl {
		failure(c, consts.StatusForbidden, "control actions disabled")
		return
	}
	scheduleControl(action, logger)
	c.JSON(consts.StatusAccepted, utils.H{
		"status": "accepted",
		"action": action,
	})
}
