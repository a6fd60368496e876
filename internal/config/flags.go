package config

import "github.com/urfave/cli/v2"

// Flags binds every Config field to a flag and its environment variable.
// Call LoadDefaults first; current field values become the flag defaults.
func Flags(c *Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "port",
			Usage:       "TCP port to listen on",
			EnvVars:     []string{"PORT"},
			Value:       c.Port,
			Destination: &c.Port,
		},
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "HMAC secret used to sign tokens; prefer the environment variable over the flag",
			EnvVars:     []string{"JWT_SECRET"},
			Destination: &c.JWTSecret,
		},
		&cli.DurationFlag{
			Name:        "token-ttl",
			Usage:       "Validity window of issued tokens",
			EnvVars:     []string{"JWT_TTL"},
			Value:       c.TokenTTL,
			Destination: &c.TokenTTL,
		},
		&cli.StringFlag{
			Name:        "users-file",
			Usage:       "JSON file with users and bcrypt password hashes",
			EnvVars:     []string{"USERS_FILE"},
			Value:       c.UsersFile,
			Destination: &c.UsersFile,
		},
		DatabaseFlag(&c.DatabasePath),
		&cli.StringFlag{
			Name:        "recipes-file",
			Usage:       "JSON recipe catalog; the embedded catalog is used when empty",
			EnvVars:     []string{"RECIPES_FILE"},
			Value:       c.RecipesFile,
			Destination: &c.RecipesFile,
		},
		&cli.StringFlag{
			Name:        "client-origin",
			Usage:       "Allowed CORS origin",
			EnvVars:     []string{"CLIENT_ORIGIN"},
			Value:       c.ClientOrigin,
			Destination: &c.ClientOrigin,
		},
		&cli.StringFlag{
			Name:        "log-level",
			EnvVars:     []string{"LOG_LEVEL"},
			Value:       c.LogLevel,
			Destination: &c.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "json or console",
			EnvVars:     []string{"LOG_FORMAT"},
			Value:       c.LogFormat,
			Destination: &c.LogFormat,
		},
	}
}

// DatabaseFlag is the SQLite user database flag, shared with the users commands.
func DatabaseFlag(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "db",
		Usage:       "SQLite database holding users and favorites",
		EnvVars:     []string{"DATABASE_PATH"},
		Value:       *out,
		Destination: out,
	}
}
