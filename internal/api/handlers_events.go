package api

import (
	"net/http"

	"github.com/vexbolts/hunt-tracker/internal/host"
)

// ==========================================
// HOST EVENT OPERATIONS
// ==========================================

// These handlers receive the shim's hook forwards. Every event that can
// change the database also queues an export refresh, so the on-disk OSD
// file tracks the live state.

// HandlePickup - POST /api/v1/events/pickup
func (a *API) HandlePickup(w http.ResponseWriter, r *http.Request) {
	var ev host.PickupCreated
	if !decodeBody(w, r, &ev) {
		return
	}

	pending, err := a.Classifier.OnPickupCreated(ev)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	okResponse(w, PickupResponse{Pending: pending})
}

// HandleLookAt - POST /api/v1/events/lookat
func (a *API) HandleLookAt(w http.ResponseWriter, r *http.Request) {
	var ev host.LookedAt
	if !decodeBody(w, r, &ev) {
		return
	}

	notice, err := a.Classifier.OnLookedAt(ev)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if notice != nil {
		a.Refresher.Request()
	}
	okResponse(w, LookAtResponse{Collected: notice != nil, Notice: notice})
}

// HandleWorldChange - POST /api/v1/events/world-change
func (a *API) HandleWorldChange(w http.ResponseWriter, r *http.Request) {
	var ev host.WorldChanged
	if !decodeBody(w, r, &ev) {
		return
	}

	a.Classifier.OnWorldChanged(ev)
	// The inspected item is gone after a transition, so any half-done
	// redemption must not survive it.
	a.Ledger.CancelRedeem()
	a.setWorld(ev.WorldName)
	okResponse(w, nil)
}

// HandleMissionComplete - POST /api/v1/events/mission-complete
func (a *API) HandleMissionComplete(w http.ResponseWriter, r *http.Request) {
	var ev host.MissionComplete
	if !decodeBody(w, r, &ev) {
		return
	}

	granted, err := a.Ledger.OnMissionComplete(ev)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Refresher.Request()
	okResponse(w, MissionResponse{TokensGranted: granted})
}

// HandleSaveQuit - POST /api/v1/events/save-quit
func (a *API) HandleSaveQuit(w http.ResponseWriter, r *http.Request) {
	var ev host.SaveQuit
	if !decodeBody(w, r, &ev) {
		return
	}

	recorded, err := a.Ledger.OnSaveQuit(ev)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if recorded {
		a.Refresher.Request()
	}
	okResponse(w, SaveQuitResponse{Recorded: recorded})
}
