package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-that-is-at-least-32-bytes!!")

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestIssueAndParse(t *testing.T) {
	clock := newFakeClock()
	tokens, err := NewTokens(testSecret, WithClock(clock.Now))
	require.NoError(t, err)

	raw, err := tokens.Issue(32)
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, 32, claims.UserID)
	require.Equal(t, jwt.ClaimStrings{Audience}, claims.Audience)
	require.Equal(t, clock.t.Add(3*time.Hour).Unix(), claims.ExpiresAt.Unix())
	require.Equal(t, clock.t.Unix(), claims.IssuedAt.Unix())
}

func TestParse_Expiry(t *testing.T) {
	clock := newFakeClock()
	tokens, err := NewTokens(testSecret, WithClock(clock.Now))
	require.NoError(t, err)
	raw, err := tokens.Issue(7)
	require.NoError(t, err)

	clock.Advance(3*time.Hour - time.Second)
	_, err = tokens.Parse(raw)
	require.NoError(t, err, "token must still be valid just before expiry")

	clock.Advance(2 * time.Second)
	_, err = tokens.Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_Rejects(t *testing.T) {
	clock := newFakeClock()
	tokens, err := NewTokens(testSecret, WithClock(clock.Now))
	require.NoError(t, err)

	other, err := NewTokens([]byte("some-other-secret"), WithClock(clock.Now))
	require.NoError(t, err)
	wrongSecret, err := other.Issue(1)
	require.NoError(t, err)

	foreign, err := NewTokens(testSecret, WithClock(clock.Now), WithAudience("api.admins"))
	require.NoError(t, err)
	wrongAudience, err := foreign.Issue(1)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}).SignedString(testSecret)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{Audience: jwt.ClaimStrings{Audience}},
	}).SignedString(testSecret)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}).SignedString(testSecret)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"wrong secret":   wrongSecret,
		"wrong audience": wrongAudience,
		"hs512":          hs512,
		"no expiry":      noExpiry,
		"no user id":     noUser,
		"alg none":       unsigned,
		"malformed":      "not.a.jwt",
		"empty":          "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Parse(raw)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokens_Validation(t *testing.T) {
	_, err := NewTokens(nil)
	require.ErrorIs(t, err, ErrEmptySecret)

	_, err = NewTokens(testSecret, WithTTL(0))
	require.Error(t, err)
}

func TestIssue_Nondeterministic(t *testing.T) {
	clock := newFakeClock()
	tokens, err := NewTokens(testSecret, WithClock(clock.Now))
	require.NoError(t, err)

	a, err := tokens.Issue(5)
	require.NoError(t, err)
	clock.Advance(time.Second)
	b, err := tokens.Issue(5)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
