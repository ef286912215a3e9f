package api

import (
	"context"
	"log/slog"
	"net"
	"net/url"
	"time"
)

// OfflineWatcher probes backend reachability and emits a user-visible notice
// each time connectivity drops, the way a browser announces its offline
// transitions. It never blocks or fails requests; the client's own error
// handling covers requests issued while offline.
type OfflineWatcher struct {
	notices  Notifier
	dial     func(ctx context.Context, network, addr string) (net.Conn, error)
	addr     string
	interval time.Duration
}

// OfflineWatcher creates a watcher probing this client's backend host.
func (c *Client) OfflineWatcher(interval time.Duration) (*OfflineWatcher, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}

	host := u.Host
	if u.Port() == "" {
		switch u.Scheme {
		case "https":
			host = net.JoinHostPort(u.Hostname(), "443")
		default:
			host = net.JoinHostPort(u.Hostname(), "80")
		}
	}

	if interval <= 0 {
		interval = 30 * time.Second
	}

	dialer := &net.Dialer{Timeout: 3 * time.Second}
	return &OfflineWatcher{
		notices:  c.notices,
		addr:     host,
		interval: interval,
		dial:     dialer.DialContext,
	}, nil
}

// Watch probes until ctx is canceled. Run it on its own goroutine.
func (w *OfflineWatcher) Watch(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	online := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reachable := w.probe(ctx)
			if online && !reachable {
				w.notices.Error("Network is offline")
				slog.Warn("Connectivity dropped", "addr", w.addr)
			}
			online = reachable
		}
	}
}

func (w *OfflineWatcher) probe(ctx context.Context) bool {
	conn, err := w.dial(ctx, "tcp", w.addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
