package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it as an application/json response with
// the given status code. Handlers use it for note payloads and error bodies
// alike:
//
//	WriteJSON(w, note, http.StatusOK)
//	WriteJSON(w, map[string]string{"error": "note not found"}, http.StatusNotFound)
//
// On a marshal failure it answers 500 and returns the wrapped error; nothing
// of the intended body is written in that case. The returned int is the
// number of body bytes written.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
