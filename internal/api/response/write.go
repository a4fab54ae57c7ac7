// Package response writes the API's JSON envelope.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON encodes data as the response body under the given status. A nil
// data writes the status line alone.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent answers 204 for mutations with nothing to report
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
