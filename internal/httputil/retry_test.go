// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	RetryBaseDelay = 1 * time.Millisecond
	MaxBackoff = 10 * time.Millisecond
}

func countingServer(t *testing.T, failures int32, status int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= failures {
			w.WriteHeader(status)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func TestDoWithRetry(t *testing.T) {
	tests := []struct {
		name       string
		failures   int32
		status     int
		maxRetries int
		wantStatus int
		wantCalls  int32
	}{
		{name: "immediate success", wantStatus: http.StatusOK, wantCalls: 1},
		{name: "429 then success", failures: 2, status: http.StatusTooManyRequests, maxRetries: 5, wantStatus: http.StatusOK, wantCalls: 3},
		{name: "503 then success", failures: 1, status: http.StatusServiceUnavailable, wantStatus: http.StatusOK, wantCalls: 2},
		{name: "exhausts retries", failures: 100, status: http.StatusTooManyRequests, maxRetries: 2, wantStatus: http.StatusTooManyRequests, wantCalls: 3},
		{name: "default retry budget", failures: 100, status: http.StatusTooManyRequests, wantStatus: http.StatusTooManyRequests, wantCalls: 4},
		{name: "404 is not retried", failures: 100, status: http.StatusNotFound, maxRetries: 5, wantStatus: http.StatusNotFound, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, calls := countingServer(t, tt.failures, tt.status)
			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)

			resp, err := DoWithRetry(context.Background(), ts.Client(), req, tt.maxRetries)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(calls))
		})
	}
}

func TestDoWithRetryContextCancelled(t *testing.T) {
	ts, _ := countingServer(t, 100, http.StatusTooManyRequests)
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	saved := RetryBaseDelay
	RetryBaseDelay = time.Second
	savedMax := MaxBackoff
	MaxBackoff = time.Second
	t.Cleanup(func() {
		RetryBaseDelay = saved
		MaxBackoff = savedMax
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = DoWithRetry(ctx, ts.Client(), req, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, RetryBaseDelay, backoff(0, ""))
	assert.Equal(t, 4*RetryBaseDelay, backoff(2, "junk"))
	assert.Equal(t, MaxBackoff, backoff(0, "3600"))
	assert.Equal(t, time.Duration(0), backoff(3, "0"))
	assert.Equal(t, MaxBackoff, backoff(40, ""))
}
