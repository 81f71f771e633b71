package healthclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NomadCrew/trcs2-health/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const healthyBody = `{"status":"healthy","timestamp":"2026-10-14T09:30:05.000Z","uptime":5000}`

func TestClient_Endpoints(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(healthyBody))
	}))
	defer srv.Close()

	client := New(srv.URL + "/")
	ctx := context.Background()

	tests := []struct {
		path string
		call func(context.Context) (*types.HealthCheckResponse, error)
	}{
		{"/health", client.GetHealth},
		{"/health/live", client.GetLiveness},
		{"/health/ready", client.GetReadiness},
		{"/health/startup", client.GetStartup},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := tt.call(ctx)

			require.NoError(t, err)
			assert.Equal(t, tt.path, gotPath)
			assert.Equal(t, types.HealthStatusHealthy, resp.Status)
			assert.Equal(t, int64(5000), resp.Uptime)
			assert.Equal(t, "2026-10-14T09:30:05.000Z", resp.Timestamp)
		})
	}
}

func TestClient_DecodesDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"degraded","timestamp":"t","uptime":1,` +
			`"details":{"memory":{"heapUsedMB":950,"heapTotalMB":1000,"heapPercentage":95}}}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).GetReadiness(context.Background())

	require.NoError(t, err)
	assert.Equal(t, types.HealthStatusDegraded, resp.Status)
	require.NotNil(t, resp.Details)
	assert.Equal(t, 95, resp.Details.Memory.HeapPercentage)
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"type":"DEPENDENCY_ERROR"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).GetHealth(context.Background())

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPStatus)
	assert.Equal(t, "health check failed: 503", err.Error())

	var clientErr *Error
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, HTTPError, clientErr.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, clientErr.StatusCode)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	resp, err := New(srv.URL, WithTimeout(50*time.Millisecond)).GetHealth(context.Background())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrNetwork)
	assert.Less(t, time.Since(start), time.Second)
	assert.Contains(t, err.Error(), "timed out")
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp, err := New(url).GetHealth(context.Background())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "network error")
}

func TestClient_DecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"unknown status", `{"status":"fine","timestamp":"t","uptime":1}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := New(srv.URL).GetHealth(context.Background())

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestClient_CallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := New(srv.URL).GetHealth(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestClient_WithHTTPClient(t *testing.T) {
	var used bool
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		used = true
		return http.DefaultTransport.RoundTrip(r)
	})}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(healthyBody))
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithHTTPClient(hc)).GetHealth(context.Background())

	require.NoError(t, err)
	assert.True(t, used)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "network", NetworkError.String())
	assert.Equal(t, "timeout", TimeoutError.String())
	assert.Equal(t, "http", HTTPError.String())
	assert.Equal(t, "decode", DecodeError.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
