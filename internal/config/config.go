package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/intima/internal/constants"
	"github.com/julianstephens/intima/internal/keyring"
	"github.com/julianstephens/intima/internal/logger"
	"github.com/julianstephens/intima/internal/security"
	"github.com/julianstephens/intima/internal/storage/postgres"
)

// Source records where the database location came from
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceDefault Source = "default"
)

// Database is a resolved database location
type Database struct {
	Location string
	Source   Source
	Postgres bool
}

// LoadEnv reads .env files into the process environment. Missing files are ignored and
// variables that are already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
		logger.Debug("Loaded environment file", "path", f)
	}
	return nil
}

// ResolveDatabase picks the database location. flagValue is the --db flag, which kong
// already fills from INTIMA_DB. After that come INTIMA_DB_CONNECTION, the keyring and
// finally the default SQLite path.
func ResolveDatabase(flagValue string) (Database, error) {
	if flagValue != "" {
		db, err := newDatabase(flagValue, SourceFlag)
		if err != nil {
			return Database{}, err
		}
		if db.Postgres {
			if _, err := postgres.ValidateConnString(db.Location); err != nil {
				return Database{}, err
			}
		}
		return db, nil
	}

	if conn := strings.TrimSpace(os.Getenv(constants.EnvDatabaseConnection)); conn != "" {
		return newDatabase(conn, SourceEnv)
	}

	conn, found, err := keyring.DatabaseConnection.Lookup()
	if err != nil {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	if found {
		return newDatabase(conn, SourceKeyring)
	}

	return newDatabase(constants.DefaultConfigPath, SourceDefault)
}

func newDatabase(location string, source Source) (Database, error) {
	if postgres.IsConnString(location) {
		return Database{Location: location, Source: source, Postgres: true}, nil
	}
	path, err := ExpandHome(location)
	if err != nil {
		return Database{}, err
	}
	return Database{Location: path, Source: source}, nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigDir is the directory that holds logs and, for SQLite, the database
func (d Database) ConfigDir() (string, error) {
	if !d.Postgres {
		return filepath.Dir(d.Location), nil
	}
	path, err := ExpandHome(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// BcryptCost returns INTIMA_BCRYPT_COST bounded to bcrypt's range, or the default cost
func BcryptCost() int {
	raw := strings.TrimSpace(os.Getenv(constants.EnvBcryptCost))
	if raw == "" {
		return security.DefaultCost
	}
	cost, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("Ignoring invalid bcrypt cost", "value", raw)
		return security.DefaultCost
	}
	return security.NormalizeCost(cost)
}
