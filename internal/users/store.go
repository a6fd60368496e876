// internal/users/store.go
//
// Credential store.
// Holds the fixed user list loaded at startup and answers lookups by email
// and by id. The store is built once and never mutated, so lookups need no
// locking and are safe from any number of request goroutines.
//
// Characteristics:
//   - Email match is exact (case-sensitive).
//   - Construction fails on duplicate ids or emails.
//   - Unknown keys report ok=false; lookups never error.

package users

import (
	"fmt"
	"slices"
)

// User is one account allowed to log in.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Favorites    []int  `json:"favorites"`
}

// HasFavorite reports whether recipeID is in u's favorites.
func (u User) HasFavorite(recipeID int) bool {
	return slices.Contains(u.Favorites, recipeID)
}

// Store defines read-only user lookups.
type Store interface {
	// FindByEmail returns the user with exactly this email.
	FindByEmail(email string) (User, bool)

	// FindByID returns the user with this id.
	FindByID(id int) (User, bool)

	// Len reports the number of users.
	Len() int
}

// memory is an immutable map-based Store.
type memory struct {
	byID    map[int]User
	byEmail map[string]int
}

// NewMemoryStore validates list and indexes it by id and email.
func NewMemoryStore(list []User) (Store, error) {
	m := &memory{
		byID:    make(map[int]User, len(list)),
		byEmail: make(map[string]int, len(list)),
	}
	for _, u := range list {
		if err := validate(u); err != nil {
			return nil, err
		}
		if _, dup := m.byID[u.ID]; dup {
			return nil, fmt.Errorf("duplicate user id %d", u.ID)
		}
		if _, dup := m.byEmail[u.Email]; dup {
			return nil, fmt.Errorf("duplicate user email %q", u.Email)
		}
		u.Favorites = slices.Clone(u.Favorites)
		m.byID[u.ID] = u
		m.byEmail[u.Email] = u.ID
	}
	return m, nil
}

func validate(u User) error {
	switch {
	case u.ID <= 0:
		return fmt.Errorf("user %q: id must be positive", u.Email)
	case u.Email == "":
		return fmt.Errorf("user %d: email is required", u.ID)
	case u.PasswordHash == "":
		return fmt.Errorf("user %d: password hash is required", u.ID)
	}
	return nil
}

func (m *memory) FindByEmail(email string) (User, bool) {
	id, ok := m.byEmail[email]
	if !ok {
		return User{}, false
	}
	return m.byID[id], true
}

func (m *memory) FindByID(id int) (User, bool) {
	u, ok := m.byID[id]
	return u, ok
}

func (m *memory) Len() int { return len(m.byID) }
