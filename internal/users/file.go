package users

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a JSON array of users (with bcrypt password hashes) from path.
func LoadFile(path string) ([]User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var list []User
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return list, nil
}
