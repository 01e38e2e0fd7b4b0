package api

import (
	"net/http"
)

// handleBoard responds with the current ranked board
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.trackerService.Board())
}

// handleBoardPrices responds with the latest streamed prices for the
// ranked assets
func (s *Server) handleBoardPrices(w http.ResponseWriter, r *http.Request) {
	prices := s.streamService.LatestPrices()
	if len(prices) == 0 {
		http.Error(w, "No live prices available", http.StatusServiceUnavailable)
		return
	}

	s.sendJSONResponse(w, prices)
}

// handleRefresh triggers an immediate board refresh. The refresh runs
// asynchronously; poll the board endpoint for the result.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.trackerService.Refresh()
	w.WriteHeader(http.StatusAccepted)
}
