// internal/httpserver/errors.go
//
// Terminal error handling. Every failed request, whether it fails in the
// token gate, the access guard, a handler, or a panic, ends in Server.fail,
// which maps the error to one of a fixed set of JSON responses. Internal
// messages go to the log only.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/recipes-api/internal/auth"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")

	// errTimeout means the handler ran past its deadline without responding.
	errTimeout = errors.New("handler deadline exceeded")

	// errUnknownUser means a verified token names a user the store does not hold.
	errUnknownUser = errors.New("token subject is not a known user")
)

type message struct {
	Message string `json:"message"`
}

// classify maps err to its status code, client message and auth metric event.
func classify(err error) (status int, msg string, event string) {
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token", eventTokenInvalid
	case errors.Is(err, auth.ErrBadCredentials):
		return http.StatusUnauthorized, "Unauthorized", eventLoginFailed
	case errors.Is(err, auth.ErrAccessDenied), errors.Is(err, errUnknownUser):
		return http.StatusUnauthorized, "Unauthorized", eventAccessDenied
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "Not found", ""
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "Bad request", ""
	case errors.Is(err, errTimeout):
		return http.StatusGatewayTimeout, "Gateway Timeout", ""
	default:
		return http.StatusInternalServerError, "Internal Server Error", ""
	}
}

// fail writes the JSON error response for err. It satisfies auth.ErrorResponder.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg, event := classify(err)
	logger := hlog.FromRequest(r)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Debug().Str("reason", err.Error()).Int("status", status).Msg("request rejected")
	}
	if event != "" {
		s.metrics.authEvent(event)
	}
	writeJSON(w, status, message{Message: msg})
}

// recoverJSON turns a handler panic into a 500 response.
func (s *Server) recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			hlog.FromRequest(r).Error().Bytes("stack", debug.Stack()).Msg("panic recovered")
			s.fail(w, r, fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}

// timeout cancels the request context after d. A handler that gives up
// without writing anything gets a 504 through fail.
func (s *Server) timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))
			if ww.Status() == 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				s.fail(w, r, errTimeout)
			}
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
