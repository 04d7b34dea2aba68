package stats

import (
	"sync"
)

// Refresher runs refreshes on its own worker so store writes never stall
// on export I/O. The request queue is a single slot: bursts of writes
// coalesce into the latest pending refresh, and since every refresh
// recomputes from scratch, dropping the intermediate ones is harmless.
type Refresher struct {
	fn       func()
	requests chan struct{}
	quit     chan struct{}
	wg       sync.WaitGroup

	mu      sync.Mutex
	running bool
}

func NewRefresher(fn func()) *Refresher {
	return &Refresher{
		fn:       fn,
		requests: make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}
}

// Start launches the worker.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-r.quit:
				return
			case <-r.requests:
				r.fn()
			}
		}
	}()
}

// Request queues a refresh. Never blocks: if one is already pending the
// two collapse into a single run.
func (r *Refresher) Request() {
	select {
	case r.requests <- struct{}{}:
	default:
	}
}

// Stop shuts the worker down and waits for any in-flight refresh.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.running = false

	close(r.quit)
	r.wg.Wait()
}
