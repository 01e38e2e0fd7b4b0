package api

import (
	"net/http"

	"github.com/upsidescan/potential-tracker/history"
)

// handleChart responds with the chart view for the current selection
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.trackerService.Chart())
}

// handleRanges responds with the supported time range catalog
func (s *Server) handleRanges(w http.ResponseWriter, r *http.Request) {
	type rangeEntry struct {
		Token        history.RangeToken `json:"token"`
		Interval     string             `json:"interval"`
		LookbackDays int                `json:"lookbackDays"`
	}

	specs := history.AllRanges()
	entries := make([]rangeEntry, 0, len(specs))
	for _, spec := range specs {
		entries = append(entries, rangeEntry{
			Token:        spec.Token,
			Interval:     spec.Interval,
			LookbackDays: spec.LookbackDays,
		})
	}
	s.sendJSONResponse(w, entries)
}

// handleSelect changes the selected asset and triggers a history fetch
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	assetID := r.URL.Query().Get("asset")
	if assetID == "" {
		http.Error(w, "Missing asset parameter", http.StatusBadRequest)
		return
	}

	s.trackerService.Select(assetID)
	w.WriteHeader(http.StatusAccepted)
}

// handleRange changes the selected time range
func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token parameter", http.StatusBadRequest)
		return
	}

	if err := s.trackerService.SetRange(history.RangeToken(token)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
