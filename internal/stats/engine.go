package stats

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vexbolts/hunt-tracker/internal/store"
)

// sqliteTimeFormat is how datetime() renders timestamps.
const sqliteTimeFormat = "2006-01-02 15:04:05"

// Engine evaluates the statistic catalog against the store. Every value
// is recomputed from scratch on each evaluation; nothing is cached, so
// correctness only depends on the store reflecting prior writes.
type Engine struct {
	store *store.Store
	log   *log.Logger
	stats []Stat

	mu      sync.Mutex
	enabled map[string]bool

	// now is swapped out by tests
	now func() time.Time
}

func NewEngine(st *store.Store, logger *log.Logger) (*Engine, error) {
	stats, err := LoadCatalog()
	if err != nil {
		return nil, err
	}

	enabled := make(map[string]bool, len(stats))
	for _, stat := range stats {
		enabled[stat.ID] = stat.Default
	}

	return &Engine{
		store:   st,
		log:     logger,
		stats:   stats,
		enabled: enabled,
		now:     time.Now,
	}, nil
}

// Stats returns the full catalog in registration order.
func (e *Engine) Stats() []Stat {
	return e.stats
}

// SetEnabled toggles one statistic's overlay visibility.
func (e *Engine) SetEnabled(id string, on bool) error {
	if e.find(id) == nil {
		return fmt.Errorf("unknown stat %q", id)
	}
	e.mu.Lock()
	e.enabled[id] = on
	e.mu.Unlock()
	return nil
}

// Enabled reports whether a statistic is shown on the overlay.
func (e *Engine) Enabled(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled[id]
}

// Value evaluates one statistic's raw scalar.
func (e *Engine) Value(id string) (string, error) {
	stat := e.find(id)
	if stat == nil {
		return "", fmt.Errorf("unknown stat %q", id)
	}
	return e.value(*stat)
}

// Line evaluates one statistic and wraps it in its display format.
func (e *Engine) Line(id string) (string, error) {
	stat := e.find(id)
	if stat == nil {
		return "", fmt.Errorf("unknown stat %q", id)
	}
	value, err := e.value(*stat)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(stat.Format, value), nil
}

// OverlayLines evaluates every enabled statistic. An empty slice means the
// overlay should not be drawn at all. A statistic that fails to evaluate
// is logged and skipped rather than taking the whole overlay down.
func (e *Engine) OverlayLines() []string {
	var lines []string
	for _, stat := range e.stats {
		if !e.Enabled(stat.ID) {
			continue
		}
		value, err := e.value(stat)
		if err != nil {
			e.log.Printf("failed to evaluate stat %s: %v", stat.ID, err)
			continue
		}
		lines = append(lines, fmt.Sprintf(stat.Format, value))
	}
	return lines
}

func (e *Engine) value(stat Stat) (string, error) {
	raw, err := e.store.Scalar(stat.Query)
	if err != nil {
		return "", fmt.Errorf("stat %s query failed: %w", stat.ID, err)
	}

	if stat.Kind == "duration" {
		start, err := time.Parse(sqliteTimeFormat, raw)
		if err != nil {
			return "", fmt.Errorf("stat %s has a bad timestamp %q: %w", stat.ID, raw, err)
		}
		return humanize.RelTime(start, e.now().UTC(), "", ""), nil
	}

	return raw, nil
}

func (e *Engine) find(id string) *Stat {
	for i := range e.stats {
		if e.stats[i].ID == id {
			return &e.stats[i]
		}
	}
	return nil
}
