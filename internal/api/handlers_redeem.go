package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/vexbolts/hunt-tracker/internal/ledger"
	"github.com/vexbolts/hunt-tracker/internal/store"
)

// ==========================================
// CONFIRMATION FLOWS
// ==========================================

// Redemption and reset both destroy something the player can't get back,
// so both run as begin/confirm pairs. The shim shows the begin prompt in a
// dialog and posts the handle back only on an explicit yes.

// HandleRedeemBegin - POST /api/v1/redeem/begin
func (a *API) HandleRedeemBegin(w http.ResponseWriter, r *http.Request) {
	var req RedeemBeginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Balance == "" {
		errorResponse(w, http.StatusBadRequest, "missing balance")
		return
	}

	handle, prompt, err := a.Ledger.BeginRedeem(req.Balance)
	switch {
	case errors.Is(err, store.ErrAlreadyCollected), errors.Is(err, store.ErrNoTokens):
		errorResponse(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	okResponse(w, ConfirmResponse{Handle: handle, Prompt: prompt})
}

// HandleRedeemConfirm - POST /api/v1/redeem/confirm
func (a *API) HandleRedeemConfirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if !decodeBody(w, r, &req) {
		return
	}

	notice, err := a.Ledger.ConfirmRedeem(req.Handle)
	switch {
	case errors.Is(err, ledger.ErrStaleRedeem):
		errorResponse(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, store.ErrAlreadyCollected), errors.Is(err, store.ErrNoTokens):
		errorResponse(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Refresher.Request()
	okResponse(w, RedeemResponse{Notice: notice})
}

// HandleRedeemCancel - POST /api/v1/redeem/cancel
func (a *API) HandleRedeemCancel(w http.ResponseWriter, r *http.Request) {
	a.Ledger.CancelRedeem()
	okResponse(w, nil)
}

// HandleResetBegin - POST /api/v1/reset/begin
func (a *API) HandleResetBegin(w http.ResponseWriter, r *http.Request) {
	handle := uuid.NewString()
	a.mu.Lock()
	a.resetHandle = handle
	a.mu.Unlock()

	okResponse(w, ConfirmResponse{
		Handle: handle,
		Prompt: "This will delete all your data! Are you sure?",
	})
}

// HandleResetConfirm - POST /api/v1/reset/confirm
func (a *API) HandleResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a.mu.Lock()
	valid := req.Handle != "" && req.Handle == a.resetHandle
	a.resetHandle = ""
	a.mu.Unlock()
	if !valid {
		errorResponse(w, http.StatusConflict, "no matching reset in progress")
		return
	}

	// Anything pending refers to the old database.
	a.Ledger.CancelRedeem()
	if err := a.Store.Reset(); err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Log.Printf("[HUNT] database reset")
	a.Refresher.Request()
	jsonResponse(w, http.StatusOK, StandardResponse{Success: true, Message: "Database reset"})
}
