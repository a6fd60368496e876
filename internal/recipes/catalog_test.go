package recipes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]Recipe{
		{ID: 1, Title: "Spaghetti Carbonara", Slug: "spaghetti-carbonara"},
		{ID: 462, Title: "Ratatouille", Slug: "ratatouille"},
		{ID: 21453, Title: "Crêpes", Slug: "21453-crepes"},
		{ID: 7, Title: "Numeric slug", Slug: "462"},
	})
	require.NoError(t, err)
	return c
}

func TestFind(t *testing.T) {
	c := testCatalog(t)

	r, ok := c.Find("462")
	require.True(t, ok)
	assert.Equal(t, "Ratatouille", r.Title, "id match comes first in catalog order")

	r, ok = c.Find("spaghetti-carbonara")
	require.True(t, ok)
	assert.Equal(t, 1, r.ID)

	r, ok = c.Find("21453-crepes")
	require.True(t, ok)
	assert.Equal(t, 21453, r.ID)

	for _, key := range []string{"", "999", "1abc", "Spaghetti-Carbonara", " 1"} {
		_, ok := c.Find(key)
		assert.False(t, ok, key)
	}

	a, _ := c.Find("1")
	b, _ := c.Find("1")
	assert.Equal(t, a, b)
}

func TestFilter(t *testing.T) {
	c := testCatalog(t)
	favs := map[int]bool{21453: true, 462: true, 8762: true}

	got := c.Filter(func(id int) bool { return favs[id] })
	require.Len(t, got, 2)
	assert.Equal(t, 462, got[0].ID)
	assert.Equal(t, 21453, got[1].ID)

	none := c.Filter(func(int) bool { return false })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestNew_Duplicates(t *testing.T) {
	_, err := New([]Recipe{{ID: 1, Slug: "a"}, {ID: 1, Slug: "b"}})
	assert.Error(t, err)
	_, err = New([]Recipe{{ID: 1, Slug: "a"}, {ID: 2, Slug: "a"}})
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(`[{"id": 3, "title": "Tatin", "slug": "tatin", "ingredients": ["pommes"], "instructions": ["cuire"]}]`))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"pommes"}, c.All()[0].Ingredients)

	_, err = Decode(strings.NewReader(`{"id": 3}`))
	assert.Error(t, err)
}

func TestEmbedded(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)
	require.NotZero(t, c.Len())
	for _, r := range c.All() {
		assert.NotEmpty(t, r.Slug)
		assert.NotEmpty(t, r.Title)
		found, ok := c.Find(r.Slug)
		require.True(t, ok)
		assert.Equal(t, r.ID, found.ID)
	}
}
