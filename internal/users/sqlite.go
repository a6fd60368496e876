// internal/users/sqlite.go
//
// SQLite user source.
//   - LoadDB reads every user and its favorites once, at startup.
//   - Insert is used by the offline `users add` command only; the running
//     server never writes.

package users

import (
	"context"
	"database/sql"
	"fmt"
)

// LoadDB returns all users with their favorites, ordered by id.
func LoadDB(ctx context.Context, db *sql.DB) ([]User, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, username, email, password_hash FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []User
	idx := map[int]int{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash); err != nil {
			return nil, err
		}
		idx[u.ID] = len(out)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	favs, err := db.QueryContext(ctx, `SELECT user_id, recipe_id FROM user_favorites ORDER BY user_id, recipe_id`)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer favs.Close()
	for favs.Next() {
		var uid, rid int
		if err := favs.Scan(&uid, &rid); err != nil {
			return nil, err
		}
		if i, ok := idx[uid]; ok {
			out[i].Favorites = append(out[i].Favorites, rid)
		}
	}
	return out, favs.Err()
}

// Insert stores u and its favorites in one transaction.
func Insert(ctx context.Context, db *sql.DB, u User) error {
	if err := validate(u); err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.Email, u.PasswordHash,
	); err != nil {
		return fmt.Errorf("insert user %d: %w", u.ID, err)
	}
	for _, rid := range u.Favorites {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO user_favorites (user_id, recipe_id) VALUES (?,?)`, u.ID, rid,
		); err != nil {
			return fmt.Errorf("insert favorite %d for user %d: %w", rid, u.ID, err)
		}
	}
	return tx.Commit()
}
