package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/recipes-api/internal/users"
)

// ErrBadCredentials is returned by Login for an unknown email or a wrong password alike.
var ErrBadCredentials = errors.New("invalid email or password")

// missingUserHash is compared against when the email is unknown, so both
// failure paths pay for one bcrypt comparison at the default cost.
var missingUserHash = sync.OnceValue(func() string {
	h, err := bcrypt.GenerateFromPassword([]byte("no such user"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(h)
})

// Authenticator checks credentials against a user store and issues tokens.
type Authenticator struct {
	users  users.Store
	tokens *Tokens
	verify func(hash, pw string) bool
}

// NewAuthenticator returns an Authenticator over st and tokens.
func NewAuthenticator(st users.Store, tokens *Tokens) *Authenticator {
	return &Authenticator{users: st, tokens: tokens, verify: CheckPassword}
}

// Login returns the user and a fresh token when email and password match.
func (a *Authenticator) Login(email, password string) (users.User, string, error) {
	u, ok := a.users.FindByEmail(email)
	if !ok {
		a.verify(missingUserHash(), password)
		return users.User{}, "", ErrBadCredentials
	}
	if !a.verify(u.PasswordHash, password) {
		return users.User{}, "", ErrBadCredentials
	}
	tok, err := a.tokens.Issue(u.ID)
	if err != nil {
		return users.User{}, "", err
	}
	return u, tok, nil
}

// Tokens exposes the issuer/verifier shared with Gate.
func (a *Authenticator) Tokens() *Tokens { return a.tokens }
