package adapthttp

import "net/http"

func (s *Server) handleDailyProgress(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	days, err := s.progressSvc.Daily(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// handleStats reports cumulative progress. ?unit=lb converts the current
// weight; kg is the default.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	stats, err := s.progressSvc.Stats(r.Context(), user.ID, r.URL.Query().Get("unit"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
