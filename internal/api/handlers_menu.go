package api

import (
	"net/http"
	"strconv"
)

// ==========================================
// DISPLAY OPERATIONS
// ==========================================

// HandleOverlay - GET /api/v1/overlay
func (a *API) HandleOverlay(w http.ResponseWriter, r *http.Request) {
	okResponse(w, OverlayResponse{Lines: a.Engine.OverlayLines()})
}

// HandleStatList - GET /api/v1/stats
func (a *API) HandleStatList(w http.ResponseWriter, r *http.Request) {
	var infos []StatInfo
	for _, stat := range a.Engine.Stats() {
		infos = append(infos, StatInfo{
			ID:          stat.ID,
			Label:       stat.Label,
			Description: stat.Description,
			Enabled:     a.Engine.Enabled(stat.ID),
		})
	}
	okResponse(w, infos)
}

// HandleStatToggle - POST /api/v1/stats/toggle
func (a *API) HandleStatToggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := a.Engine.SetEnabled(req.ID, req.Enabled); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	a.Refresher.Request()
	okResponse(w, nil)
}

// HandleMenuRoot - GET /api/v1/menu
func (a *API) HandleMenuRoot(w http.ResponseWriter, r *http.Request) {
	okResponse(w, MenuResponse{Nodes: a.Menu.Root(a.currentWorld())})
}

// HandleMenuPlanet - GET /api/v1/menu/planet/{id}
func (a *API) HandleMenuPlanet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	okResponse(w, a.Menu.Planet(id))
}

// HandleMenuMap - GET /api/v1/menu/map/{id}
func (a *API) HandleMenuMap(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	okResponse(w, a.Menu.Map(id))
}

// HandleMenuItem - GET /api/v1/menu/item/{id}
func (a *API) HandleMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	okResponse(w, a.Menu.Item(id))
}

// HandleTokens - GET /api/v1/tokens
func (a *API) HandleTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := a.Store.AvailableTokens()
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	okResponse(w, TokensResponse{Available: tokens})
}

// pathID parses the {id} path segment, replying with a 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid id: "+r.PathValue("id"))
		return 0, false
	}
	return id, true
}
