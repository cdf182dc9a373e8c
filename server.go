package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/lesismal/nbio/nbhttp"
	"github.com/lesismal/nbio/nbhttp/websocket"

	"home_telemetry/hub"
)

// streamKeepalive bounds how long a stream connection may sit with no
// traffic in either direction. It must exceed the longest sample
// interval (59s): stream clients never send, so the read deadline is
// pushed forward on every successful write instead.
var streamKeepalive = time.Minute

// newWSServer serves the push stream: every completed tick is written to
// each connected client, in production order, starting at the next tick
// after connect.
func newWSServer(h *hub.Hub, logger *slog.Logger) *nbhttp.Engine {
	mux := &http.ServeMux{}
	mux.HandleFunc(cfg.WSPath, func(w http.ResponseWriter, r *http.Request) {
		ws(w, r, h, logger)
	})
	engine := nbhttp.NewEngine(nbhttp.Config{
		Network:                 "tcp",
		Addrs:                   []string{cfg.WSListen},
		MaxLoad:                 100000,
		ReleaseWebsocketPayload: true,
		Handler:                 mux,
	})
	return engine
}

func ws(w http.ResponseWriter, r *http.Request, h *hub.Hub, logger *slog.Logger) {
	upgrader := websocket.NewUpgrader()
	// nbio only refreshes the read deadline when a message arrives;
	// a push-only consumer is kept alive by the per-write refresh below.
	upgrader.KeepaliveTime = streamKeepalive
	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	upgrader.EnableCompression(true)
	upgrader.OnOpen(func(c *websocket.Conn) {
		logger.Info("stream client connected", "remote", c.RemoteAddr().String())
	})
	// Transport-level disconnect is an implicit unsubscribe.
	upgrader.OnClose(func(c *websocket.Conn, err error) {
		if sub, ok := c.Session().(*hub.Subscription); ok {
			sub.Cancel()
		}
		if err != nil {
			logger.Info("stream client closed", "remote", c.RemoteAddr().String(), "err", err.Error())
		} else {
			logger.Info("stream client closed", "remote", c.RemoteAddr().String())
		}
	})

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	sub := h.Subscribe(cfg.SubscriberQueue, hub.DropOldest)
	conn.SetSession(sub)

	// Drain off the production path; a stalled write here only costs
	// this subscriber its connection.
	go func() {
		defer conn.Close()
		for snap := range sub.C() {
			payload, err := json.Marshal(snap)
			if err != nil {
				logger.Warn("snapshot marshal failed", "err", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Info("stream write failed, dropping client", "remote", conn.RemoteAddr().String(), "err", err.Error())
				sub.Cancel()
				return
			}
			conn.SetReadDeadline(time.Now().Add(streamKeepalive))
		}
	}()
}
