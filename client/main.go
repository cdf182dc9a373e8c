// Command client is a terminal watcher for the telemetry push stream: it
// dials the daemon's websocket endpoint and prints one line per snapshot.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"home_telemetry/model"
)

func main() {
	url := flag.String("url", "ws://127.0.0.1:8001/ws", "stream endpoint")
	flag.Parse()
	log.SetFlags(0)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	log.Printf("connecting to %s", *url)
	c, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer c.Close()

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("read:", err)
				return
			}
			var snap model.Snapshot
			if err := json.Unmarshal(message, &snap); err != nil {
				log.Println("unmarshal:", err)
				continue
			}
			fmt.Println(formatSnapshot(&snap))
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("interrupt")
		err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("write close:", err)
			return
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func formatSnapshot(s *model.Snapshot) string {
	ts := time.Unix(s.Timestamp, 0).Format("15:04:05")

	cpu := "cpu=n/a"
	if s.CPU != nil {
		if s.CPU.TemperatureCelsius != nil {
			cpu = fmt.Sprintf("cpu=%.1f%% %.1f°C", s.CPU.UsagePercent, *s.CPU.TemperatureCelsius)
		} else {
			cpu = fmt.Sprintf("cpu=%.1f%%", s.CPU.UsagePercent)
		}
	}
	mem := "mem=n/a"
	if s.Memory != nil {
		mem = fmt.Sprintf("mem=%.1f%%", s.Memory.UsedPercent)
	}
	net := "net=n/a"
	if s.Network != nil {
		net = fmt.Sprintf("net=%s ↓%.0fB/s ↑%.0fB/s", s.Network.Interface, s.Network.RecvBytesPerSec, s.Network.SentBytesPerSec)
	}
	throttle := ""
	if s.Throttling != nil && s.Throttling.IsThrottled {
		throttle = " THROTTLED"
	}
	return fmt.Sprintf("%s  %s  %s  %s%s", ts, cpu, mem, net, throttle)
}
