package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/robalobadob/recipes-api/internal/auth"
	"github.com/robalobadob/recipes-api/internal/config"
	"github.com/robalobadob/recipes-api/internal/db"
	"github.com/robalobadob/recipes-api/internal/httpserver"
	"github.com/robalobadob/recipes-api/internal/recipes"
	"github.com/robalobadob/recipes-api/internal/users"
)

func serveCmd() *cli.Command {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Flags: config.Flags(cfg),
		Action: func(c *cli.Context) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			setupLogging(cfg)
			if cfg.WeakSecret() {
				log.Warn().Int("min_len", config.MinSecretLen).Msg("JWT secret is shorter than recommended")
			}
			return serve(c.Context, cfg)
		},
	}
}

func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	store, err := loadUsers(ctx, cfg)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokens([]byte(cfg.JWTSecret), auth.WithTTL(cfg.TokenTTL))
	if err != nil {
		return err
	}
	srv, err := httpserver.New(httpserver.Options{
		Users:        store,
		Catalog:      catalog,
		Tokens:       tokens,
		ClientOrigin: cfg.ClientOrigin,
	})
	if err != nil {
		return err
	}
	log.Info().
		Str("port", cfg.Port).
		Int("users", store.Len()).
		Int("recipes", catalog.Len()).
		Dur("token_ttl", tokens.TTL()).
		Msg("starting recipes-api")
	return srv.Start(ctx, cfg.Addr())
}

// loadUsers builds the credential store once. The database wins over the users file.
func loadUsers(ctx context.Context, cfg *config.Config) (users.Store, error) {
	var (
		list []users.User
		err  error
	)
	if cfg.DatabasePath != "" {
		conn, oerr := db.OpenReadOnly(cfg.DatabasePath)
		if oerr != nil {
			return nil, fmt.Errorf("open user database: %w", oerr)
		}
		defer conn.Close()
		list, err = users.LoadDB(ctx, conn)
	} else {
		list, err = users.LoadFile(cfg.UsersFile)
	}
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users.NewMemoryStore(list)
}

func loadCatalog(cfg *config.Config) (*recipes.Catalog, error) {
	if cfg.RecipesFile != "" {
		return recipes.LoadFile(cfg.RecipesFile)
	}
	return recipes.Embedded()
}
