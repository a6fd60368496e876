package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/recipes-api/internal/config"
	"github.com/robalobadob/recipes-api/internal/db"
	"github.com/robalobadob/recipes-api/internal/users"
)

func TestLoadUsers_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 55, "username": "Burt", "email": "alice@mail.io", "passwordHash": "$2a$10$x", "favorites": [8965, 11]}]`), 0o600))

	store, err := loadUsers(context.Background(), &config.Config{UsersFile: path})
	require.NoError(t, err)
	u, ok := store.FindByEmail("alice@mail.io")
	require.True(t, ok)
	require.Equal(t, 55, u.ID)
}

func TestLoadUsers_DatabaseWins(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "users.db")
	conn, err := db.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, conn))
	require.NoError(t, users.Insert(ctx, conn, users.User{ID: 123, Username: "Karin", Email: "dave@mail.io", PasswordHash: "$2a$10$z", Favorites: []int{8762}}))
	require.NoError(t, conn.Close())

	store, err := loadUsers(ctx, &config.Config{DatabasePath: dbPath, UsersFile: filepath.Join(dir, "ignored.json")})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	u, ok := store.FindByID(123)
	require.True(t, ok)
	require.Equal(t, []int{8762}, u.Favorites)

	_, err = loadUsers(ctx, &config.Config{DatabasePath: filepath.Join(dir, "missing.db")})
	require.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	c, err := loadCatalog(&config.Config{})
	require.NoError(t, err)
	require.NotZero(t, c.Len())

	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "title": "Tatin", "slug": "tatin"}]`), 0o600))
	c, err = loadCatalog(&config.Config{RecipesFile: path})
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
}
