package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/recipes-api/internal/db"
)

func TestInsertAndLoadDB(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")
	conn, err := db.Open(path)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, db.Migrate(ctx, conn))

	for _, u := range seed() {
		require.NoError(t, Insert(ctx, conn, u))
	}
	require.Error(t, Insert(ctx, conn, seed()[0]), "duplicate id must fail")

	dupEmail := User{ID: 7, Username: "x", Email: "alice@mail.io", PasswordHash: "h"}
	require.Error(t, Insert(ctx, conn, dupEmail))

	loaded, err := LoadDB(ctx, conn)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	require.Equal(t, User{ID: 32, Username: "jennifer", Email: "bouclierman@herocorp.io", PasswordHash: "$2a$10$x", Favorites: []int{462, 21453}}, loaded[0])
	require.Equal(t, []int{11, 8965}, loaded[1].Favorites)

	st, err := NewMemoryStore(loaded)
	require.NoError(t, err)
	_, ok := st.FindByEmail("dave@mail.io")
	require.True(t, ok)

	ro, err := db.OpenReadOnly(path)
	require.NoError(t, err)
	defer ro.Close()
	again, err := LoadDB(ctx, ro)
	require.NoError(t, err)
	require.Equal(t, loaded, again)
}
