package main

import (
	"log/slog"
	"os/exec"
)

const (
	actionReboot   = "reboot"
	actionShutdown = "shutdown"
)

// scheduleControl runs a power action on its own goroutine. Control never
// touches the sampling path: a tick in flight completes normally and the
// sampler is simply terminated with the rest of the process.
func scheduleControl(action string, logger *slog.Logger) {
	go func() {
		var cmd *exec.Cmd
		switch action {
		case actionReboot:
			cmd = exec.Command("shutdown", "-r", "now")
		case actionShutdown:
			cmd = exec.Command("shutdown", "-h", "now")
		default:
			logger.Warn("unknown control action", "action", action)
			return
		}
		logger.Info("executing control action", "action", action)
		if out, err := cmd.CombinedOutput(); err != nil {
			logger.Error("control action failed", "action", action, "err", err, "output", string(out))
		}
	}()
}
