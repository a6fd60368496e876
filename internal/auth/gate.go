// internal/auth/gate.go
//
// Request-level authentication middleware.
//   - Gate runs before routing. Public routes skip verification entirely.
//     Elsewhere a presented Authorization header must carry a valid bearer
//     token or the request is rejected with ErrInvalidToken. Requests with
//     no header continue without an identity.
//   - RequireIdentity guards individual handlers and rejects requests that
//     reached them without an identity (ErrAccessDenied).
//
// Failures are reported through an ErrorResponder so the server keeps a
// single place that turns errors into HTTP responses.

package auth

import (
	"errors"
	"net/http"
	"strings"
)

// ErrAccessDenied is reported when a protected handler is reached without an identity.
var ErrAccessDenied = errors.New("access denied")

// ErrorResponder writes the response for a failed request.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// Gate verifies bearer tokens on every request not matched by public.
func Gate(tokens *Tokens, public AllowList, fail ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public.Allows(r.Method, routePath(r)) {
				next.ServeHTTP(w, r)
				return
			}
			hdr, present := r.Header["Authorization"]
			if !present {
				next.ServeHTTP(w, r)
				return
			}
			raw, err := bearerToken(strings.Join(hdr, ","))
			if err != nil {
				fail(w, r, err)
				return
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				fail(w, r, err)
				return
			}
			ctx := WithIdentity(r.Context(), Identity{UserID: claims.UserID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity rejects requests that carry no identity.
func RequireIdentity(fail ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFrom(r.Context()); !ok {
				fail(w, r, ErrAccessDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// routePath is the path a chi router matches on: the escaped form when the
// request carries one, so "/recipes/a%2Fb" stays two segments.
func routePath(r *http.Request) string {
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	return r.URL.Path
}

// bearerToken extracts <token> from "Bearer <token>".
func bearerToken(header string) (string, error) {
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", errors.Join(ErrInvalidToken, errors.New("authorization header is not a bearer credential"))
	}
	tok := strings.TrimSpace(header[7:])
	if tok == "" || strings.ContainsAny(tok, " \t") {
		return "", errors.Join(ErrInvalidToken, errors.New("malformed bearer credential"))
	}
	return tok, nil
}
