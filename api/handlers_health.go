package api

import (
	"net/http"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"assets":  "unknown",
			"history": "unknown",
		},
	}

	if s.assetsClient != nil && s.assetsClient.Healthy() {
		status["services"].(map[string]string)["assets"] = "up"
	}

	if s.historyService != nil && s.historyService.Healthy() {
		status["services"].(map[string]string)["history"] = "up"
	}

	s.sendJSONResponse(w, status)
}
