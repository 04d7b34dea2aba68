package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresherRunsRequests(t *testing.T) {
	ran := make(chan struct{}, 8)
	r := NewRefresher(func() { ran <- struct{}{} })
	r.Start()
	defer r.Stop()

	r.Request()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh never ran")
	}
}

func TestRefresherNeverBlocksCallers(t *testing.T) {
	// No worker running, so nothing drains the queue
	r := NewRefresher(func() {})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			r.Request()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Request blocked")
	}
}

func TestRefresherStopWaitsForWorker(t *testing.T) {
	ran := make(chan struct{}, 1)
	r := NewRefresher(func() { ran <- struct{}{} })
	r.Start()
	r.Request()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh never ran")
	}
	r.Stop()

	// Stop is idempotent
	assert.NotPanics(t, func() { r.Stop() })
	require.NotPanics(t, func() { r.Request() })
}
