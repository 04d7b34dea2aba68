package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/vexbolts/hunt-tracker/internal/classify"
	"github.com/vexbolts/hunt-tracker/internal/ledger"
	"github.com/vexbolts/hunt-tracker/internal/menu"
	"github.com/vexbolts/hunt-tracker/internal/stats"
	"github.com/vexbolts/hunt-tracker/internal/store"
)

// API exposes the tracker core to the in-game shim over local HTTP. The
// shim forwards hook events as POSTs and pulls display trees as GETs.
type API struct {
	Log        *log.Logger
	Store      *store.Store
	Classifier *classify.Classifier
	Engine     *stats.Engine
	Ledger     *ledger.Ledger
	Menu       *menu.Menu
	Refresher  *stats.Refresher

	mu sync.Mutex
	// world is the last reported world name, used for the "Current Map"
	// menu entry.
	world string
	// resetHandle guards the two-step database reset.
	resetHandle string
}

// Routes registers every endpoint on the given mux.
func (a *API) Routes(mux *http.ServeMux) {
	// --- General ---
	mux.HandleFunc("GET /health", a.HandleHealth)

	// --- Host Events ---
	mux.HandleFunc("POST /api/v1/events/pickup", a.HandlePickup)
	mux.HandleFunc("POST /api/v1/events/lookat", a.HandleLookAt)
	mux.HandleFunc("POST /api/v1/events/world-change", a.HandleWorldChange)
	mux.HandleFunc("POST /api/v1/events/mission-complete", a.HandleMissionComplete)
	mux.HandleFunc("POST /api/v1/events/save-quit", a.HandleSaveQuit)

	// --- Overlay & Stats ---
	mux.HandleFunc("GET /api/v1/overlay", a.HandleOverlay)
	mux.HandleFunc("GET /api/v1/stats", a.HandleStatList)
	mux.HandleFunc("POST /api/v1/stats/toggle", a.HandleStatToggle)

	// --- Progress Menu ---
	mux.HandleFunc("GET /api/v1/menu", a.HandleMenuRoot)
	mux.HandleFunc("GET /api/v1/menu/planet/{id}", a.HandleMenuPlanet)
	mux.HandleFunc("GET /api/v1/menu/map/{id}", a.HandleMenuMap)
	mux.HandleFunc("GET /api/v1/menu/item/{id}", a.HandleMenuItem)
	mux.HandleFunc("GET /api/v1/tokens", a.HandleTokens)

	// --- Token Redemption ---
	mux.HandleFunc("POST /api/v1/redeem/begin", a.HandleRedeemBegin)
	mux.HandleFunc("POST /api/v1/redeem/confirm", a.HandleRedeemConfirm)
	mux.HandleFunc("POST /api/v1/redeem/cancel", a.HandleRedeemCancel)

	// --- Database Reset ---
	mux.HandleFunc("POST /api/v1/reset/begin", a.HandleResetBegin)
	mux.HandleFunc("POST /api/v1/reset/confirm", a.HandleResetConfirm)
}

// currentWorld returns the last reported world name.
func (a *API) currentWorld() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.world
}

func (a *API) setWorld(name string) {
	a.mu.Lock()
	a.world = name
	a.mu.Unlock()
}
