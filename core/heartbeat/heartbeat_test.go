package heartbeat_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"subscriber-desk/core/heartbeat"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRunPingsUntilCancelled(t *testing.T) {
	var pings int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pings, 1)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		heartbeat.Run(ctx, srv.URL, 10*time.Millisecond, zap.NewNop())
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&pings) >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("heartbeat loop did not stop on cancel")
	}
}

func TestRunDisabled(t *testing.T) {
	// Returns immediately for a blank URL or non-positive interval.
	done := make(chan struct{})
	go func() {
		heartbeat.Run(context.Background(), "", time.Second, zap.NewNop())
		heartbeat.Run(context.Background(), "http://example.test", 0, zap.NewNop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled heartbeat should return immediately")
	}
}
