package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON encodes v with the given status
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		L.Error("encode response", "error", err)
	}
}

// WriteMessage writes the {"message": "..."} body used for errors and acknowledgements
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}
