// internal/recipes/catalog.go
//
// Read-only recipe catalog.
// Recipes are loaded once (embedded default or a JSON file) and served by
// reference; callers must not modify returned slices.

package recipes

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/robalobadob/recipes-api/assets"
)

// Recipe is a single catalog entry.
type Recipe struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Thumbnail    string   `json:"thumbnail"`
	Author       string   `json:"author"`
	Difficulty   string   `json:"difficulty"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Catalog is an immutable, ordered list of recipes.
type Catalog struct {
	list []Recipe
}

// New builds a Catalog from list. Ids and slugs must be unique.
func New(list []Recipe) (*Catalog, error) {
	ids := make(map[int]struct{}, len(list))
	slugs := make(map[string]struct{}, len(list))
	for _, r := range list {
		if _, dup := ids[r.ID]; dup {
			return nil, fmt.Errorf("duplicate recipe id %d", r.ID)
		}
		if _, dup := slugs[r.Slug]; dup && r.Slug != "" {
			return nil, fmt.Errorf("duplicate recipe slug %q", r.Slug)
		}
		ids[r.ID] = struct{}{}
		slugs[r.Slug] = struct{}{}
	}
	return &Catalog{list: list}, nil
}

// Decode reads a JSON array of recipes.
func Decode(r io.Reader) (*Catalog, error) {
	var list []Recipe
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	return New(list)
}

// LoadFile reads the catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Embedded returns the catalog shipped with the binary.
func Embedded() (*Catalog, error) {
	f, err := assets.Recipes()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// All returns every recipe in catalog order.
func (c *Catalog) All() []Recipe { return c.list }

// Len reports the number of recipes.
func (c *Catalog) Len() int { return len(c.list) }

// Find returns the first recipe whose id is the decimal value of key or whose slug is key.
func (c *Catalog) Find(key string) (Recipe, bool) {
	id, err := strconv.Atoi(key)
	numeric := err == nil
	for _, r := range c.list {
		if (numeric && r.ID == id) || r.Slug == key {
			return r, true
		}
	}
	return Recipe{}, false
}

// Filter returns, in catalog order, the recipes whose id satisfies keep.
// The result is never nil.
func (c *Catalog) Filter(keep func(id int) bool) []Recipe {
	out := []Recipe{}
	for _, r := range c.list {
		if keep(r.ID) {
			out = append(out, r)
		}
	}
	return out
}
