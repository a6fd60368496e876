package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/robalobadob/recipes-api/internal/auth"
	"github.com/robalobadob/recipes-api/internal/config"
	"github.com/robalobadob/recipes-api/internal/db"
	"github.com/robalobadob/recipes-api/internal/users"
)

const defaultPasswordEnvVar = "RECIPES_USER_PASSWORD"

func usersCmd() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Offline management of the user source",
		Subcommands: []*cli.Command{
			usersAddCmd(),
			usersHashCmd(),
		},
	}
}

func usersAddCmd() *cli.Command {
	var (
		dbPath   string
		u        users.User
		pwEnvVar = defaultPasswordEnvVar
	)
	return &cli.Command{
		Name:  "add",
		Usage: "Hash a password and insert a user into the SQLite user database",
		Flags: []cli.Flag{
			config.DatabaseFlag(&dbPath),
			&cli.IntFlag{Name: "id", Required: true, Destination: &u.ID},
			&cli.StringFlag{Name: "username", Required: true, Destination: &u.Username},
			&cli.StringFlag{Name: "email", Required: true, Destination: &u.Email},
			&cli.StringFlag{
				Name:        "password-env",
				Usage:       "Name of the environment variable holding the password. The password itself is never a flag",
				Value:       pwEnvVar,
				Destination: &pwEnvVar,
			},
			&cli.IntSliceFlag{Name: "favorite", Usage: "Favorite recipe id (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			if dbPath == "" {
				return errors.New("--db is required")
			}
			pw := os.Getenv(pwEnvVar)
			_ = os.Unsetenv(pwEnvVar)
			if pw == "" {
				return fmt.Errorf("environment variable %s is empty", pwEnvVar)
			}
			hash, err := auth.HashPassword(pw, 0)
			if err != nil {
				return err
			}
			u.PasswordHash = hash
			u.Favorites = c.IntSlice("favorite")

			conn, err := db.Open(dbPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := db.Migrate(c.Context, conn); err != nil {
				return err
			}
			if err := users.Insert(c.Context, conn, u); err != nil {
				return err
			}
			log.Info().Int("id", u.ID).Str("db", dbPath).Msg("user added")
			return nil
		},
	}
}

func usersHashCmd() *cli.Command {
	return &cli.Command{
		Name:  "hash",
		Usage: "Read a password from stdin and print its bcrypt hash (for USERS_FILE entries)",
		Action: func(c *cli.Context) error {
			pw, err := readPassword(c)
			if err != nil {
				return err
			}
			hash, err := auth.HashPassword(pw, 0)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, hash)
			return err
		},
	}
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(c *cli.Context) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(c.App.ErrWriter, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(c.App.ErrWriter)
		return string(b), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
