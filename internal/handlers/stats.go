package handlers

import "net/http"

// StatsResponse reports in-memory operational counters.
type StatsResponse struct {
	PendingConfirmations int `json:"pending_confirmations"`
	RelayRoutes          int `json:"relay_routes"`
}

// Stats handles GET /v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{}
	if h.gate != nil {
		resp.PendingConfirmations = h.gate.PendingCount()
	}
	if h.relay != nil {
		resp.RelayRoutes = h.relay.RouteCount()
	}
	h.JSON(w, http.StatusOK, resp)
}
