// Package schema applies the embedded table definitions for a storage backend and tracks
// which version of them a database was created with. It only moves forward: files are
// applied once, in version order, and there are no down steps.
package schema

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Dialect selects the bind placeholder style used for the schema_version bookkeeping
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// ErrNewerSchema is returned when the database was created by a newer binary
var ErrNewerSchema = errors.New("database schema is newer than supported")

// File is one versioned schema script (e.g. "001_init.sql")
type File struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies schema files from fsys to db
type Runner struct {
	db      *sql.DB
	fs      fs.FS
	dialect Dialect
}

func NewRunner(db *sql.DB, fsys fs.FS, dialect Dialect) *Runner {
	return &Runner{
		db:      db,
		fs:      fsys,
		dialect: dialect,
	}
}

func (r *Runner) bind() string {
	if r.dialect == DialectPostgres {
		return "$1"
	}
	return "?"
}

// EnsureVersionTable creates the schema_version table if it doesn't exist
func (r *Runner) EnsureVersionTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`)
	return err
}

// CurrentVersion returns the recorded schema version, or 0 for a fresh database
func (r *Runner) CurrentVersion() (int, error) {
	if err := r.EnsureVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// ReadFiles parses NNN_name.sql files from the runner's filesystem, sorted by version
func (r *Runner) ReadFiles() ([]File, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid schema filename format: %s (expected NNN_name.sql)", entry.Name())
		}

		version, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid version number in filename %s: %w", entry.Name(), err)
		}
		if version < 1 {
			return nil, fmt.Errorf("invalid version number in filename %s: version must be at least 1", entry.Name())
		}

		content, err := fs.ReadFile(r.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", entry.Name(), err)
		}

		files = append(files, File{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Version < files[j].Version
	})

	for i := 1; i < len(files); i++ {
		if files[i].Version == files[i-1].Version {
			return nil, fmt.Errorf("duplicate schema version %d", files[i].Version)
		}
	}

	return files, nil
}

// LatestVersion returns the highest version available in the runner's filesystem
func (r *Runner) LatestVersion() (int, error) {
	files, err := r.ReadFiles()
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}
	return files[len(files)-1].Version, nil
}

// Apply runs every pending file in its own transaction and returns how many were applied.
// logFn receives progress lines and may be nil.
func (r *Runner) Apply(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	current, err := r.CurrentVersion()
	if err != nil {
		return 0, err
	}

	files, err := r.ReadFiles()
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		logFn("No schema files found")
		return 0, nil
	}

	latest := files[len(files)-1].Version
	if current > latest {
		return 0, fmt.Errorf("%w: database is at version %d, binary supports %d", ErrNewerSchema, current, latest)
	}

	var pending []File
	for _, f := range files {
		if f.Version > current {
			pending = append(pending, f)
		}
	}
	if len(pending) == 0 {
		logFn(fmt.Sprintf("Database schema is up to date (version %d)", current))
		return 0, nil
	}

	logFn(fmt.Sprintf("Applying %d schema file(s) (version %d -> %d)", len(pending), current, latest))

	start := time.Now()
	applied := 0
	for _, f := range pending {
		tx, err := r.db.Begin()
		if err != nil {
			return applied, fmt.Errorf("failed to begin transaction for schema %d: %w", f.Version, err)
		}

		if _, err := tx.Exec(f.SQL); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to apply schema %d (%s): %w", f.Version, f.Name, err)
		}
		if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to clear version in schema %d: %w", f.Version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES ("+r.bind()+")", f.Version); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to set version in schema %d: %w", f.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("failed to commit schema %d: %w", f.Version, err)
		}

		applied++
		logFn(fmt.Sprintf("  applied schema %d: %s", f.Version, f.Name))
	}

	logFn(fmt.Sprintf("Applied %d schema file(s) in %v", applied, time.Since(start)))
	return applied, nil
}

// Validate checks that the database is not newer than the embedded schema
func (r *Runner) Validate() error {
	current, err := r.CurrentVersion()
	if err != nil {
		return err
	}
	latest, err := r.LatestVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("%w: database is at version %d, binary supports %d - please upgrade", ErrNewerSchema, current, latest)
	}
	return nil
}

// Pending reports whether schema files exist that the database has not applied
func (r *Runner) Pending() (bool, error) {
	current, err := r.CurrentVersion()
	if err != nil {
		return false, err
	}
	latest, err := r.LatestVersion()
	if err != nil {
		return false, err
	}
	return current < latest, nil
}
