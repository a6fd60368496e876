// internal/httpserver/routes_auth.go
//
// Authentication routes, mounted under /api:
//   - POST /login     → check credentials, issue a bearer token (public)
//   - GET  /favorites → the caller's favorite recipes (access guard)

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/recipes-api/internal/auth"
	"github.com/robalobadob/recipes-api/internal/recipes"
)

const maxLoginBody = 1 << 16

// loginReq is the payload for POST /api/login.
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRes is returned on a successful login.
type loginRes struct {
	Logged bool   `json:"logged"`
	Pseudo string `json:"pseudo"`
	Token  string `json:"token"`
}

type favoritesRes struct {
	Favorites []recipes.Recipe `json:"favorites"`
}

// mountAuth registers login and the guarded favorites route.
func (s *Server) mountAuth(r chi.Router) {
	r.Post("/login", s.handleLogin)
	r.With(auth.RequireIdentity(s.fail)).Get("/favorites", s.handleFavorites)
}

// handleLogin never tells the caller whether the email or the password was wrong.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBody)).Decode(&body); err != nil {
		s.fail(w, r, fmt.Errorf("%w: login body: %v", ErrBadRequest, err))
		return
	}
	u, tok, err := s.auth.Login(body.Email, body.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.authEvent(eventLoginOK)
	hlog.FromRequest(r).Info().Int("user_id", u.ID).Msg("login succeeded")
	writeJSON(w, http.StatusOK, loginRes{Logged: true, Pseudo: u.Username, Token: tok})
}

// handleFavorites returns all and only the catalog recipes in the caller's favorites.
func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	u, ok := s.users.FindByID(id.UserID)
	if !ok {
		s.fail(w, r, errUnknownUser)
		return
	}
	writeJSON(w, http.StatusOK, favoritesRes{Favorites: s.catalog.Filter(u.HasFavorite)})
}
