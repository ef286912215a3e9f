// Package stream maintains the live notification channel to the backend.
//
// The backend pushes a plain-text event name over a WebSocket whenever
// something changes server-side; today the only event is "transaction",
// raised when a recorded transaction generates a notification. The channel
// reacts by refetching the notifications cache, so the unread badge updates
// without polling. Channel failures never surface to the user: they are
// logged and the connection retries with exponential backoff.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

// State is the lifecycle phase of the channel.
type State int32

const (
	// StateConnecting means no connection is established yet, or the
	// channel is waiting out a backoff before retrying.
	StateConnecting State = iota
	// StateOpen means a connection is established and reading.
	StateOpen
	// StateClosed means Close was called; the channel will not reconnect.
	StateClosed
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// transactionEvent is the only event the backend pushes today.
const transactionEvent = "transaction"

// conn is the subset of the WebSocket connection the channel reads from.
type conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// dialFunc establishes a WebSocket connection. Injectable for tests.
type dialFunc func(ctx context.Context, url string) (conn, error)

func gorillaDial(ctx context.Context, u string) (conn, error) {
	c, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// EndpointURL derives the notification channel URL for a user from the API
// base URL, swapping the scheme to its WebSocket counterpart.
func EndpointURL(baseURL, userID string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	switch parsed.Scheme {
	case "https":
		parsed.Scheme = "wss"
	case "http":
		parsed.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/notifications/" + userID
	return parsed.String(), nil
}

// Channel is one live connection to the backend's notification endpoint. It
// reconnects on failure until Close is called.
type Channel struct {
	url     string
	dial    dialFunc
	refetch func(ctx context.Context)
	policy  backoff.BackOff
	state   atomic.Int32
	mu      sync.Mutex
	cancel  context.CancelFunc
	closed  bool
	done    chan struct{}
	once    sync.Once
}

// NewChannel creates a channel for url that runs refetch once per
// transaction event. The channel does not connect until Run.
func NewChannel(url string, refetch func(ctx context.Context)) (*Channel, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("channel URL is required")
	}
	if refetch == nil {
		return nil, fmt.Errorf("refetch callback is required")
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Second
	policy.MaxInterval = time.Minute
	policy.MaxElapsedTime = 0 // retry until closed

	return &Channel{
		url:     url,
		dial:    gorillaDial,
		refetch: refetch,
		policy:  policy,
		done:    make(chan struct{}),
	}, nil
}

// State returns the channel's current lifecycle phase.
func (c *Channel) State() State {
	return State(c.state.Load())
}

// Run connects and reads events until ctx is canceled or Close is called.
// Dial and read failures are logged, never returned; each triggers a
// reconnect after an exponential backoff that resets once a connection
// holds. Run always returns nil after shutdown so callers can errgroup it.
func (c *Channel) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()
	defer close(c.done)
	defer c.state.Store(int32(StateClosed))

	for {
		c.state.Store(int32(StateConnecting))

		connection, err := c.dial(ctx, c.url)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Warn("Notification channel dial failed", "url", c.url, "error", err)
			if !c.sleep(ctx, c.policy.NextBackOff()) {
				return nil
			}
			continue
		}

		c.state.Store(int32(StateOpen))
		c.policy.Reset()
		slog.Debug("Notification channel open", "url", c.url)

		c.read(ctx, connection)
		if ctx.Err() != nil {
			return nil
		}

		if !c.sleep(ctx, c.policy.NextBackOff()) {
			return nil
		}
	}
}

// read consumes events from one connection until it fails or ctx is
// canceled.
func (c *Channel) read(ctx context.Context, connection conn) {
	defer func() { _ = connection.Close() }()

	// Unblock the read when the context ends; ReadMessage has no context.
	stop := context.AfterFunc(ctx, func() { _ = connection.Close() })
	defer stop()

	for {
		_, payload, err := connection.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("Notification channel read failed", "error", err)
			}
			return
		}

		event := string(payload)
		if event != transactionEvent {
			slog.Debug("Ignoring unknown channel event", "event", event)
			continue
		}
		c.refetch(ctx)
	}
}

// sleep waits out a backoff delay, returning false if ctx ended first.
func (c *Channel) sleep(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Close stops the channel and waits for Run to return. Safe to call more
// than once, and before Run.
func (c *Channel) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		cancel := c.cancel
		c.closed = true
		c.mu.Unlock()

		if cancel != nil {
			cancel()
			<-c.done
			return
		}
		c.state.Store(int32(StateClosed))
		close(c.done)
	})
}
