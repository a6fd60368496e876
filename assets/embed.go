package assets

import (
	"embed"
	"io/fs"
)

//go:embed recipes.json index.html
var FS embed.FS

// Recipes opens the embedded recipe catalog.
func Recipes() (fs.File, error) {
	return FS.Open("recipes.json")
}

// IndexHTML returns the landing page served at "/".
func IndexHTML() ([]byte, error) {
	return FS.ReadFile("index.html")
}
