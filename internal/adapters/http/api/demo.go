package api

import "net/http"

// handleDemoPayload handles GET /demo/payload. It returns a sample request
// that can be pasted straight into POST /schedule/generate; the timestamps
// are generated fresh so the payload never goes stale.
func (s *Server) handleDemoPayload(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.DemoPayload(r.Context()))
}
