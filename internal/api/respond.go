package api

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON shape of every error the API returns. Kind is a
// stable machine-readable identifier; Detail carries optional context such
// as a sample of an unparseable value.
type errorResponse struct {
	Error  string                 `json:"error"`
	Kind   string                 `json:"kind"`
	Detail map[string]interface{} `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: message, Kind: kind})
}

func writeErrorDetail(w http.ResponseWriter, status int, kind, message string, detail map[string]interface{}) {
	writeJSON(w, status, errorResponse{Error: message, Kind: kind, Detail: detail})
}
