package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	AdminPassword     string
	AdminPasswordHash string
	AdminTokenSalt    string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	// Best-effort .env loading for local development; real deployments
	// set the environment directly.
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("brew-haha", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")
	fs.StringVar(&cfg.AdminPasswordHash, "admin-password-hash", "", "Bcrypt hash of admin password (prefer env)")
	fs.StringVar(&cfg.AdminTokenSalt, "token-salt", "", "Admin session token salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4117 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, errors.New("database type must be postgres or sqlite")
	}

	// Secrets - MUST be provided
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminPasswordHash == "" {
		cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return Config{}, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH required")
	}

	if cfg.AdminTokenSalt == "" {
		cfg.AdminTokenSalt = os.Getenv("ADMIN_TOKEN_SALT")
	}
	if cfg.AdminTokenSalt == "" {
		return Config{}, errors.New("ADMIN_TOKEN_SALT required")
	}

	return cfg, nil
}
