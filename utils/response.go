package utils

import (
	"encoding/json"
	"net/http"
)

func ResponseWithJson(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func ResponseWithError(w http.ResponseWriter, status int, message string) {
	ResponseWithJson(w, status, map[string]string{"error": message})
}
