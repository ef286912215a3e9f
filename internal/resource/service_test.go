package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwachira/walletctl/internal/query"
	"github.com/kwachira/walletctl/internal/session"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

// backendCall records one request seen by the fake backend.
type backendCall struct {
	Method string
	Path   string
	Params url.Values
	Body   any
}

// fakeBackend serves canned payloads keyed by "METHOD /path" and records
// every call in order.
type fakeBackend struct {
	mu        sync.Mutex
	calls     []backendCall
	responses map[string]json.RawMessage
	failures  map[string]error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		responses: make(map[string]json.RawMessage),
		failures:  make(map[string]error),
	}
}

func (f *fakeBackend) respond(method, path string, payload string) {
	f.responses[method+" "+path] = json.RawMessage(payload)
}

func (f *fakeBackend) fail(method, path string, err error) {
	f.failures[method+" "+path] = err
}

func (f *fakeBackend) record(method, path string, params url.Values, body any) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, backendCall{Method: method, Path: path, Params: params, Body: body})
	f.mu.Unlock()

	key := method + " " + path
	if err, ok := f.failures[key]; ok {
		return nil, err
	}
	if raw, ok := f.responses[key]; ok {
		return raw, nil
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeBackend) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return f.record("GET", path, params, nil)
}

func (f *fakeBackend) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return f.record("POST", path, nil, body)
}

func (f *fakeBackend) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return f.record("PATCH", path, nil, body)
}

func (f *fakeBackend) Delete(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return f.record("DELETE", path, params, nil)
}

// callKeys flattens recorded calls into "METHOD /path" strings for easy
// order assertions.
func (f *fakeBackend) callKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		keys = append(keys, c.Method+" "+c.Path)
	}
	return keys
}

// noticeLog records user-facing notices in order.
type noticeLog struct {
	mu      sync.Mutex
	entries []string
}

func (n *noticeLog) add(level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, level+": "+message)
}

func (n *noticeLog) Success(message string) { n.add("success", message) }
func (n *noticeLog) Error(message string)   { n.add("error", message) }
func (n *noticeLog) Info(message string)    { n.add("info", message) }

func (n *noticeLog) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.entries...)
}

// fakeTokens is an in-memory token store.
type fakeTokens struct {
	mu    sync.Mutex
	token string
}

func (f *fakeTokens) SetToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeTokens) ClearToken(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	return nil
}

func (f *fakeTokens) current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

type testDeps struct {
	backend  *fakeBackend
	cache    *query.Cache
	sessions *session.Store
	tokens   *fakeTokens
	notices  *noticeLog
}

func newTestService(t *testing.T) (*Service, *testDeps) {
	t.Helper()

	deps := &testDeps{
		backend:  newFakeBackend(),
		cache:    query.NewCache(),
		sessions: session.NewStore(),
		tokens:   &fakeTokens{},
		notices:  &noticeLog{},
	}
	svc := NewService(deps.backend, deps.cache, deps.sessions, deps.tokens, deps.notices)
	return svc, deps
}

func TestBudgetsKey(t *testing.T) {
	tests := []struct {
		name      string
		accountID string
		want      string
	}{
		{
			name:      "overall scope",
			accountID: "",
			want:      "budgets",
		},
		{
			name:      "account scope",
			accountID: "acc-1",
			want:      "budgets:acc-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BudgetsKey(tt.accountID))
		})
	}
}

func TestReportKey(t *testing.T) {
	first := ReportKey("2026-01-01", "2026-01-31")
	second := ReportKey("2026-01-01", "2026-02-28")
	assert.NotEqual(t, first, second, "changing a bound must change the key")
	assert.Equal(t, first, ReportKey("2026-01-01", "2026-01-31"))
}

func TestRefetchContinuesPastFailures(t *testing.T) {
	svc, deps := newTestService(t)
	deps.backend.respond("GET", "/accounts", `[]`)
	deps.backend.fail("GET", "/notifications", fmt.Errorf("boom"))

	svc.refetch(context.Background(), Selection{}, KeyNotifications, KeyAccounts)

	assert.Equal(t, []string{"GET /notifications", "GET /accounts"}, deps.backend.callKeys(),
		"a failed refetch must not stop the remaining keys")
}
