package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/apperr"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads a single JSON object from the request body into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.Validation("", "Request body is required")
		case errors.As(err, &maxErr):
			return apperr.Validation("", "Request body is too large")
		default:
			return apperr.Validation("", "Invalid JSON body: %v", err)
		}
	}
	return nil
}

// PathID reads a positive integer route variable.
func PathID(r *http.Request, name string) (uint, error) {
	id, ok := ParseID(mux.Vars(r)[name])
	if !ok {
		return 0, apperr.NotFound("Resource not found")
	}
	return id, nil
}
