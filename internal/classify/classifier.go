package classify

import (
	"fmt"
	"log"
	"sync"

	"github.com/vexbolts/hunt-tracker/internal/host"
	"github.com/vexbolts/hunt-tracker/internal/store"
)

// MaxItemCardDistance is how close the player must be for a look-at event
// to count as opening the full item card. The host fires look-at for the
// small type icon too, at a slightly larger distance, which must not
// confirm a collection.
const MaxItemCardDistance = 450

// Classifier decides whether observed pickups are countable drops. A drop
// must be seen, not merely spawned, to count: a valid pickup first goes
// into the pending set, and only a close-enough look-at commits it.
type Classifier struct {
	store *store.Store
	log   *log.Logger

	mu sync.Mutex
	// pending maps instance id -> resolved balance for pickups suspected
	// valid but not yet inspected. Cleared wholesale on world change.
	pending map[string]string
}

func New(st *store.Store, logger *log.Logger) *Classifier {
	return &Classifier{
		store:   st,
		log:     logger,
		pending: make(map[string]string),
	}
}

// OnPickupCreated classifies a freshly constructed pickup. It reports
// whether the instance was marked pending; untracked items and drops from
// the wrong source are silently discarded.
func (c *Classifier) OnPickupCreated(ev host.PickupCreated) (bool, error) {
	// 1. Fast reject before touching the store
	if IgnoredCategories[ev.Category] {
		return false, nil
	}
	if ev.Balance == "" {
		return false, nil
	}

	// 2. Resolve expandable balances before any catalog lookup, the
	// catalog only stores the specific names
	balance, err := c.store.ExpandBalance(ev.Balance, ev.Parts)
	if err != nil {
		return false, err
	}

	// 3. Catalog lookup
	tracked, err := c.store.IsBalanceTracked(balance)
	if err != nil {
		return false, err
	}
	if !tracked {
		return false, nil
	}

	// 4. World drops need no source correlation
	worldDrop, err := c.store.MayWorldDrop(balance)
	if err != nil {
		return false, err
	}
	if worldDrop {
		c.markPending(ev.InstanceID, balance)
		return true, nil
	}

	// 5. Correlate against the in-flight drop requests. This matches on
	// the root balance, not the expanded one, so we find the right
	// request.
	actorClass, extraItemPool, found := findMatchingRequest(ev.Requests, ev.Balance)
	if !found {
		return false, nil
	}

	// 6. Dedicated source check
	valid, err := c.store.IsValidDrop(balance, actorClass, extraItemPool)
	if err != nil {
		return false, err
	}
	if !valid {
		return false, nil
	}

	c.markPending(ev.InstanceID, balance)
	return true, nil
}

// OnLookedAt confirms a pending pickup once the player opens its item
// card. Looking at anything not pending is a no-op.
func (c *Classifier) OnLookedAt(ev host.LookedAt) (*store.CollectionNotice, error) {
	if ev.Distance > MaxItemCardDistance {
		// Not viewing the full item card
		return nil, nil
	}

	c.mu.Lock()
	balance, ok := c.pending[ev.InstanceID]
	if ok {
		delete(c.pending, ev.InstanceID)
	}
	c.mu.Unlock()
	if !ok {
		return nil, nil
	}

	notice, err := c.store.RecordCollection(balance)
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s: %w", balance, err)
	}
	c.log.Printf("[HUNT] %s: %s", notice.Title, notice.Message)
	return &notice, nil
}

// OnWorldChanged drops every pending instance; a level transition
// invalidates them all.
func (c *Classifier) OnWorldChanged(host.WorldChanged) {
	c.mu.Lock()
	c.pending = make(map[string]string)
	c.mu.Unlock()
}

// PendingCount reports how many instances are awaiting inspection.
func (c *Classifier) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Classifier) markPending(instanceID, balance string) {
	c.mu.Lock()
	c.pending[instanceID] = balance
	c.mu.Unlock()
}
