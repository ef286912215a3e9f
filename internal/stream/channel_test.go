package stream

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn feeds scripted messages to the channel and fails once drained or
// closed.
type fakeConn struct {
	messages chan string
	done     chan struct{}
	once     sync.Once
}

func newFakeConn(buffer int) *fakeConn {
	return &fakeConn{
		messages: make(chan string, buffer),
		done:     make(chan struct{}),
	}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case msg := <-f.messages:
		return websocket.TextMessage, []byte(msg), nil
	case <-f.done:
		return 0, nil, errors.New("use of closed connection")
	}
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.done) })
	return nil
}

func newTestChannel(t *testing.T, dial dialFunc, refetch func(ctx context.Context)) *Channel {
	t.Helper()

	ch, err := NewChannel("ws://backend/api/v1/notifications/u-1", refetch)
	require.NoError(t, err)
	ch.dial = dial
	ch.policy = backoff.NewConstantBackOff(time.Millisecond)
	return ch
}

func TestNewChannelValidation(t *testing.T) {
	_, err := NewChannel("", func(ctx context.Context) {})
	assert.Error(t, err)

	_, err = NewChannel("ws://backend/api/v1/notifications/u-1", nil)
	assert.Error(t, err)
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		userID  string
		want    string
		wantErr bool
	}{
		{
			name:    "http base",
			baseURL: "http://127.0.0.1:5001/api/v1",
			userID:  "u-1",
			want:    "ws://127.0.0.1:5001/api/v1/notifications/u-1",
		},
		{
			name:    "https base",
			baseURL: "https://wallet.example.com/api/v1/",
			userID:  "u-2",
			want:    "wss://wallet.example.com/api/v1/notifications/u-2",
		},
		{
			name:    "unsupported scheme",
			baseURL: "ftp://wallet.example.com",
			userID:  "u-1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EndpointURL(tt.baseURL, tt.userID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChannelRefetchesPerTransactionEvent(t *testing.T) {
	fake := newFakeConn(3)
	fake.messages <- "transaction"
	fake.messages <- "heartbeat"
	fake.messages <- "transaction"

	var refetches atomic.Int32
	ch := newTestChannel(t,
		func(ctx context.Context, url string) (conn, error) { return fake, nil },
		func(ctx context.Context) { refetches.Add(1) },
	)

	go func() { _ = ch.Run(context.Background()) }()
	defer ch.Close()

	require.Eventually(t, func() bool {
		return refetches.Load() == 2
	}, time.Second, 5*time.Millisecond, "each transaction event triggers exactly one refetch")
}

func TestChannelReconnectsAfterFailure(t *testing.T) {
	var dials atomic.Int32
	ch := newTestChannel(t,
		func(ctx context.Context, url string) (conn, error) {
			dials.Add(1)
			c := newFakeConn(0)
			c.once.Do(func() { close(c.done) }) // fails on first read
			return c, nil
		},
		func(ctx context.Context) {},
	)

	go func() { _ = ch.Run(context.Background()) }()
	defer ch.Close()

	require.Eventually(t, func() bool {
		return dials.Load() >= 3
	}, time.Second, 5*time.Millisecond, "a dropped connection must redial")
}

func TestChannelReconnectsAfterDialError(t *testing.T) {
	var dials atomic.Int32
	ch := newTestChannel(t,
		func(ctx context.Context, url string) (conn, error) {
			dials.Add(1)
			return nil, errors.New("connection refused")
		},
		func(ctx context.Context) {},
	)

	go func() { _ = ch.Run(context.Background()) }()
	defer ch.Close()

	require.Eventually(t, func() bool {
		return dials.Load() >= 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, StateConnecting, ch.State())
}

func TestChannelClose(t *testing.T) {
	fake := newFakeConn(0)
	ch := newTestChannel(t,
		func(ctx context.Context, url string) (conn, error) { return fake, nil },
		func(ctx context.Context) {},
	)

	done := make(chan error, 1)
	go func() { done <- ch.Run(context.Background()) }()

	require.Eventually(t, func() bool {
		return ch.State() == StateOpen
	}, time.Second, 5*time.Millisecond)

	ch.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
	assert.Equal(t, StateClosed, ch.State())

	ch.Close() // second close is a no-op
}

func TestChannelCloseBeforeRun(t *testing.T) {
	ch := newTestChannel(t,
		func(ctx context.Context, url string) (conn, error) {
			t.Fatal("dial must not run after close")
			return nil, nil
		},
		func(ctx context.Context) {},
	)

	ch.Close()
	assert.NoError(t, ch.Run(context.Background()))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "closed", StateClosed.String())
}
