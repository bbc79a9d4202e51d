package helpers

import (
	"encoding/json"
	"net/http"
)

// DecodeJSON decodes the request body into dest, rejecting unknown fields. On failure it
// writes a 400 JSON error and returns false; callers return immediately in that case.
// Field rules belong to the service the request is handed to.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
