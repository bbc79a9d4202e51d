package helpers

import (
	"net/http"
	"strings"

	"devevents/internal/domain"
)

// SlugFromPath reads the {slug} path value, trims and lowercases it, and checks it
// against the slug pattern. On failure it writes a 400 and returns false.
func SlugFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.PathValue("slug")
	if strings.TrimSpace(raw) == "" {
		WriteJSONError(w, http.StatusBadRequest, "Invalid or missing slug parameter")
		return "", false
	}
	slug, ok := domain.NormalizeSlug(raw)
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, domain.InvalidSlugMessage)
		return "", false
	}
	return slug, true
}
