// internal/auth/token.go
//
// HS256 bearer tokens.
// Responsibilities:
//   - Issue: sign {userId, aud, iat, exp} with the configured secret.
//   - Parse: verify signature, algorithm, audience and expiry, returning the claims.
//
// Notes:
//   - Time comes from Tokens.Now so tests can move the clock past expiry.
//   - Every parse failure wraps ErrInvalidToken; callers map it to a single 401.

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Audience is the aud claim carried by every token this service issues and accepts.
	Audience = "api.users"
	// DefaultTTL is the validity window of an issued token.
	DefaultTTL = 3 * time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("jwt secret must not be empty")
)

// Claims is the token payload.
type Claims struct {
	UserID int `json:"userId"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies bearer tokens with a shared HMAC secret.
type Tokens struct {
	secret   []byte
	ttl      time.Duration
	audience string

	// Now is the clock used for iat/exp on issue and for expiry on parse.
	Now func() time.Time
}

// TokenOption customizes a Tokens value built by NewTokens.
type TokenOption func(*Tokens)

// WithTTL overrides DefaultTTL.
func WithTTL(d time.Duration) TokenOption {
	return func(t *Tokens) { t.ttl = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenOption {
	return func(t *Tokens) { t.Now = now }
}

// WithAudience replaces Audience. Only tests and tools should need this.
func WithAudience(aud string) TokenOption {
	return func(t *Tokens) { t.audience = aud }
}

// NewTokens builds a Tokens for secret. The secret is copied.
func NewTokens(secret []byte, opts ...TokenOption) (*Tokens, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	t := &Tokens{
		secret:   append([]byte(nil), secret...),
		ttl:      DefaultTTL,
		audience: Audience,
		Now:      time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	if t.ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %v", t.ttl)
	}
	return t, nil
}

// TTL reports the validity window applied by Issue.
func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue signs a token for userID that expires TTL from now.
func (t *Tokens) Issue(userID int) (string, error) {
	now := t.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})
	return tok.SignedString(t.secret)
}

// Parse verifies raw and returns its claims. Any failure wraps ErrInvalidToken.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: missing userId", ErrInvalidToken)
	}
	return claims, nil
}
