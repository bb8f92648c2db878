package siobridge

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// statusRoute contributes the bridge's status endpoint to the HTTP API via
// the "httpapi:routes" extension point.
type statusRoute struct{}

func (s *statusRoute) Mount(r *mux.Router) {
	r.HandleFunc("/api/siobridge", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"extension": "siobridge",
			"version":   Version,
		})
	})
}
