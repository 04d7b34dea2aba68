package ledger

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/vexbolts/hunt-tracker/internal/host"
	"github.com/vexbolts/hunt-tracker/internal/store"
)

// ErrStaleRedeem means a confirm arrived for a redemption that was never
// begun, already finished, or invalidated by a world change.
var ErrStaleRedeem = errors.New("no matching redemption in progress")

// Ledger tracks mission completions, the world drop token economy and the
// save-quit tally. Redemption is irreversible and spends a limited
// resource, so it is split into a begin/confirm pair: begin checks the
// gates and hands out a one-time handle, confirm re-checks them inside the
// committing transaction.
type Ledger struct {
	store *store.Store
	log   *log.Logger

	mu            sync.Mutex
	redeemHandle  string
	redeemBalance string
}

func New(st *store.Store, logger *log.Logger) *Ledger {
	return &Ledger{store: st, log: logger}
}

// OnMissionComplete records the completion and returns how many tokens it
// granted. The completion is recorded even for missions without a token
// rule, for the history.
func (l *Ledger) OnMissionComplete(ev host.MissionComplete) (int, error) {
	granted, err := l.store.RecordMission(ev.MissionClass)
	if err != nil {
		return 0, err
	}
	if granted > 0 {
		l.log.Printf("[HUNT] mission complete, +%d world drop token(s)", granted)
	}
	return granted, nil
}

// OnSaveQuit appends one save-quit event. An undecided "None" choice is a
// menu cancellation, not a real quit.
func (l *Ledger) OnSaveQuit(ev host.SaveQuit) (bool, error) {
	if ev.Choice == "None" {
		return false, nil
	}

	station := ev.Station
	if station == "" {
		station = "Unknown"
	}

	if err := l.store.RecordSaveQuit(ev.Map, station); err != nil {
		return false, err
	}
	return true, nil
}

// BeginRedeem checks the redemption gates for this balance and, if they
// pass, returns a one-time confirmation handle plus the prompt to show.
func (l *Ledger) BeginRedeem(balance string) (handle, prompt string, err error) {
	collected, err := l.store.AlreadyCollected(balance)
	if err != nil {
		return "", "", err
	}
	if collected {
		return "", "", store.ErrAlreadyCollected
	}

	tokens, err := l.store.AvailableTokens()
	if err != nil {
		return "", "", err
	}
	if tokens <= 0 {
		return "", "", store.ErrNoTokens
	}

	handle = uuid.NewString()
	l.mu.Lock()
	l.redeemHandle = handle
	l.redeemBalance = balance
	l.mu.Unlock()

	return handle, fmt.Sprintf("Available Tokens: %d", tokens), nil
}

// ConfirmRedeem spends the token. The gates are re-checked inside the
// store's transaction; a failure there leaves no partial state behind.
func (l *Ledger) ConfirmRedeem(handle string) (store.CollectionNotice, error) {
	l.mu.Lock()
	if handle == "" || handle != l.redeemHandle {
		l.mu.Unlock()
		return store.CollectionNotice{}, ErrStaleRedeem
	}
	balance := l.redeemBalance
	l.redeemHandle = ""
	l.redeemBalance = ""
	l.mu.Unlock()

	notice, err := l.store.RedeemWithToken(balance)
	if err != nil {
		return store.CollectionNotice{}, err
	}
	l.log.Printf("[HUNT] redeemed %s with a world drop token", notice.Title)
	return notice, nil
}

// CancelRedeem drops any in-progress redemption. Also called on world
// change, since the inspected item no longer exists afterwards.
func (l *Ledger) CancelRedeem() {
	l.mu.Lock()
	l.redeemHandle = ""
	l.redeemBalance = ""
	l.mu.Unlock()
}
