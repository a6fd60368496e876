// internal/httpserver/routes_recipes.go
//
// Public recipe routes, mounted under /api:
//   - GET /recipes            → the whole catalog
//   - GET /recipes/{idOrSlug} → one recipe by numeric id or slug, 404 otherwise
//
// Responses carry a strong ETag (xxhash of the body) and honour If-None-Match.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
)

// mountRecipes registers the catalog routes on r.
func (s *Server) mountRecipes(r chi.Router) {
	r.Get("/recipes", s.handleListRecipes)
	r.Get("/recipes/{idOrSlug}", s.handleGetRecipe)
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	if err := writeCacheableJSON(w, r, s.catalog.All()); err != nil {
		s.fail(w, r, err)
	}
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.catalog.Find(chi.URLParam(r, "idOrSlug"))
	if !ok {
		s.fail(w, r, ErrNotFound)
		return
	}
	if err := writeCacheableJSON(w, r, rec); err != nil {
		s.fail(w, r, err)
	}
}

// writeCacheableJSON writes v with an ETag, or 304 when the client already has it.
func writeCacheableJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	tag := etag(body)
	w.Header().Set("ETag", tag)
	if etagMatches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
	return nil
}

func etag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
}

// etagMatches implements the weak comparison used for If-None-Match.
func etagMatches(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}
