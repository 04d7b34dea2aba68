package api

import (
	"github.com/vexbolts/hunt-tracker/internal/menu"
	"github.com/vexbolts/hunt-tracker/internal/store"
)

// ==========================================
// 1. STANDARD ENVELOPE
// ==========================================

// StandardResponse wraps all API responses to ensure consistency.
// The shim checks "success" first; if false it displays "error".
type StandardResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ==========================================
// 2. EVENT RESPONSES
// ==========================================

// PickupResponse reports whether a constructed pickup was marked pending.
type PickupResponse struct {
	Pending bool `json:"pending"`
}

// LookAtResponse reports whether an inspection confirmed a collection.
// Notice is only set when it did.
type LookAtResponse struct {
	Collected bool                    `json:"collected"`
	Notice    *store.CollectionNotice `json:"notice,omitempty"`
}

// MissionResponse reports how many tokens a completion granted; zero for
// missions without a token rule.
type MissionResponse struct {
	TokensGranted int `json:"tokens_granted"`
}

// SaveQuitResponse reports whether the quit was recorded (a cancelled
// menu isn't).
type SaveQuitResponse struct {
	Recorded bool `json:"recorded"`
}

// ==========================================
// 3. DISPLAY RESPONSES
// ==========================================

// OverlayResponse carries the formatted overlay lines. An empty list
// means the overlay should not be drawn.
type OverlayResponse struct {
	Lines []string `json:"lines"`
}

// StatInfo describes one catalog statistic for the settings menu.
type StatInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// ToggleRequest switches one overlay statistic on or off.
type ToggleRequest struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// MenuResponse carries a display tree.
type MenuResponse struct {
	Nodes []menu.Node `json:"nodes"`
}

// TokensResponse is the token overview.
type TokensResponse struct {
	Available int `json:"available"`
}

// ==========================================
// 4. CONFIRMATION FLOWS
// ==========================================

// RedeemBeginRequest names the balance being inspected.
type RedeemBeginRequest struct {
	Balance string `json:"balance"`
}

// ConfirmResponse hands out a one-time handle plus the prompt the shim
// should show in its confirmation dialog.
type ConfirmResponse struct {
	Handle string `json:"handle"`
	Prompt string `json:"prompt"`
}

// ConfirmRequest commits a previously begun flow.
type ConfirmRequest struct {
	Handle string `json:"handle"`
}

// RedeemResponse is the committed redemption's HUD notice.
type RedeemResponse struct {
	Notice store.CollectionNotice `json:"notice"`
}
