package http

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/olistboard/internal/adapters/nats"
	"github.com/samirrijal/olistboard/internal/pkg/metrics"
)

// wsMessage is sent from client to control the feed.
type wsMessage struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe" | "snapshot"
	Start  string `json:"start"`  // snapshot range (optional)
	End    string `json:"end"`
}

// WebSocketHandler returns a handler that upgrades to WebSocket and relays
// published dashboard snapshots as JSON. Clients start subscribed and send
// {"action":"unsubscribe"} / {"action":"subscribe"} to pause and resume, or
// {"action":"snapshot","start":"2018-01-01","end":"2018-06-30"} to request
// a fresh snapshot, which is sent back and published to everyone else.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("ws client connected", "remote", remoteAddr)

		var mu sync.Mutex
		write := func(data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			return write(data)
		}

		var sub *nats.Subscription
		subscribe := func() error {
			if deps.NATS == nil {
				return nil
			}
			s, err := deps.NATS.Subscribe(natsadapter.SnapshotSubjectAll, func(msg *nats.Msg) {
				data, err := natsadapter.SnapshotJSON(msg.Data)
				if err != nil {
					slog.Warn("ws dropping undecodable snapshot", "subject", msg.Subject, "error", err)
					return
				}
				_ = write(data)
			})
			if err != nil {
				return err
			}
			sub = s
			return nil
		}

		if err := subscribe(); err != nil {
			slog.Error("ws default subscribe error", "error", err)
			return
		}

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(raw, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			switch m.Action {
			case "subscribe":
				if sub != nil {
					_ = writeJSON(map[string]string{"status": "already subscribed"})
					continue
				}
				if err := subscribe(); err != nil {
					_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
					continue
				}
				_ = writeJSON(map[string]string{"status": "subscribed", "subject": natsadapter.SnapshotSubjectAll})

			case "unsubscribe":
				if sub == nil {
					_ = writeJSON(map[string]string{"error": "not subscribed"})
					continue
				}
				_ = sub.Unsubscribe()
				sub = nil
				_ = writeJSON(map[string]string{"status": "unsubscribed"})

			case "snapshot":
				r, err := deps.Analytics.ResolveRange(m.Start, m.End)
				if err != nil {
					_ = writeJSON(map[string]string{"error": err.Error()})
					continue
				}
				ctx := context.Background()
				snap := deps.Dashboard.Snapshot(ctx, r)
				sent, err := deps.Dashboard.Publish(ctx, snap)
				if err != nil {
					slog.Warn("ws snapshot publish failed", "snapshot", snap.ID, "error", err)
				}
				// A published snapshot comes back through the subscription.
				if !sent || sub == nil {
					_ = writeJSON(snap)
				}

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		if sub != nil {
			_ = sub.Unsubscribe()
		}
		slog.Info("ws client disconnected", "remote", remoteAddr)
	}
}
