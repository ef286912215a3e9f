package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token(_ context.Context) (string, error) {
	return s.token, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	infos     []string
}

func (r *recordingNotifier) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *recordingNotifier) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *recordingNotifier) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, message)
}

func (r *recordingNotifier) errorMessages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *recordingNotifier, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	notices := &recordingNotifier{}
	client, err := NewClient(server.URL, &staticTokens{token: token}, notices)
	require.NoError(t, err)
	return client, notices, server
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		tokens  TokenSource
		notices Notifier
		name    string
		baseURL string
		errMsg  string
	}{
		{
			name:    "missing base URL",
			tokens:  &staticTokens{},
			notices: &recordingNotifier{},
			errMsg:  "base URL is required",
		},
		{
			name:    "missing token source",
			baseURL: "http://localhost:5001",
			notices: &recordingNotifier{},
			errMsg:  "token source is required",
		},
		{
			name:    "missing notifier",
			baseURL: "http://localhost:5001",
			tokens:  &staticTokens{},
			errMsg:  "notifier is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.baseURL, tt.tokens, tt.notices)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotContentType, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"status":"success","message":"ok","data":[]}`))
	})

	client, _, _ := newTestClient(t, handler, "tok-123")
	_, err := client.Get(context.Background(), "/accounts", nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":{"access_token":"t"}}`))
	})

	client, _, _ := newTestClient(t, handler, "")
	_, err := client.Post(context.Background(), "/auth/signin", map[string]string{
		"email":    "a@b.com",
		"password": "secret1",
	})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_UnwrapsEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","message":"Request Successfully","data":{"id":"a1","name":"M-Pesa"}}`))
	})

	client, _, _ := newTestClient(t, handler, "tok")
	data, err := client.Get(context.Background(), "/accounts", nil)
	require.NoError(t, err)

	var payload struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "a1", payload.ID)
	assert.Equal(t, "M-Pesa", payload.Name)
}

func TestClient_PassesThroughBareMessages(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Logout successful"}`))
	})

	client, _, _ := newTestClient(t, handler, "tok")
	data, err := client.Get(context.Background(), "/auth/logout", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Logout successful"}`, string(data))
}

func TestClient_NetworkErrorNotice(t *testing.T) {
	notices := &recordingNotifier{}
	// Port 1 is never listening.
	client, err := NewClient("http://127.0.0.1:1", &staticTokens{}, notices)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/accounts", nil)
	require.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, []string{"Server network error!"}, notices.errorMessages())
}

func TestClient_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
		wantNotice string
		status     int
		wantUnauth bool
		wantForbid bool
	}{
		{
			name:       "401 not authenticated",
			status:     http.StatusUnauthorized,
			body:       `{"detail":"Not authenticated"}`,
			wantDetail: "Not authenticated",
			wantUnauth: true,
		},
		{
			name:       "invalid session detail with odd status",
			status:     http.StatusBadRequest,
			body:       `{"detail":"Not authenticated"}`,
			wantDetail: "Not authenticated",
			wantUnauth: true,
		},
		{
			name:       "403 forbidden",
			status:     http.StatusForbidden,
			body:       `{"detail":"Forbidden"}`,
			wantDetail: "Forbidden",
			wantForbid: true,
			wantNotice: "Unauthorized!",
		},
		{
			name:       "409 conflict with detail",
			status:     http.StatusConflict,
			body:       `{"detail":"Budget Already exist"}`,
			wantDetail: "Budget Already exist",
		},
		{
			name:   "500 without detail",
			status: http.StatusInternalServerError,
			body:   `oops`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			client, notices, _ := newTestClient(t, handler, "tok")
			_, err := client.Post(context.Background(), "/budgets", map[string]float64{"limit": 100})
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.Equal(t, tt.wantUnauth, errors.Is(err, ErrUnauthorized))
			assert.Equal(t, tt.wantForbid, errors.Is(err, ErrForbidden))

			if tt.wantNotice != "" {
				assert.Equal(t, []string{tt.wantNotice}, notices.errorMessages())
			} else {
				assert.Empty(t, notices.errorMessages())
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	withDetail := &APIError{Status: 409, Detail: "Budget Already exist"}
	assert.Equal(t, "Budget Already exist", UserMessage(withDetail, "Something went wrong"))

	withoutDetail := &APIError{Status: 500}
	assert.Equal(t, "Something went wrong", UserMessage(withoutDetail, "Something went wrong"))

	assert.Equal(t, "Something went wrong", UserMessage(ErrNetwork, "Something went wrong"))
}
