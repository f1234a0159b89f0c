package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/intima/internal/constants"
	"github.com/julianstephens/intima/internal/logger"
	"github.com/julianstephens/intima/internal/schema"
	"github.com/julianstephens/intima/internal/security"
	"github.com/julianstephens/intima/internal/storage"
	"github.com/julianstephens/intima/migrations"
)

type Store struct {
	path         string
	db           *sql.DB
	passwordCost int
}

// Option configures a Store
type Option func(*Store)

// WithPasswordCost sets the bcrypt cost used by CreateUser
func WithPasswordCost(cost int) Option {
	return func(s *Store) {
		s.passwordCost = security.NormalizeCost(cost)
	}
}

func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:         path,
		passwordCost: security.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ storage.Provider = (*Store)(nil)

var errNotLoaded = errors.New("database not loaded")

// dsn enables foreign keys on every pooled connection; a one-off PRAGMA would only
// reach whichever connection happened to run it.
func (s *Store) dsn() string {
	return fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", s.path, constants.SQLiteBusyTimeoutMs)
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if err := s.runSchema(); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.validateSchemaVersion(); err != nil {
		s.discard()
		return err
	}
	return nil
}

// discard drops a handle that failed to load so the next Load starts over
func (s *Store) discard() {
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
}

// conn returns the open handle, or ErrStorage for op when the store is not open
func (s *Store) conn(op string) (*sql.DB, error) {
	if s.db == nil {
		return nil, storage.Fail(op, errNotLoaded)
	}
	return s.db, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	db, err := s.conn("ping")
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (s *Store) runner() (*schema.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite schema: %w", err)
	}
	return schema.NewRunner(s.db, subFS, schema.DialectSQLite), nil
}

func (s *Store) runSchema() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.Apply(func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Validate()
}

// SchemaPending reports whether Init has schema files left to apply
func (s *Store) SchemaPending() (bool, error) {
	runner, err := s.runner()
	if err != nil {
		return false, err
	}
	return runner.Pending()
}

// CheckIntegrity lists rows whose foreign keys point at missing parents. Databases written
// with foreign keys disabled can contain these.
func (s *Store) CheckIntegrity(ctx context.Context) ([]storage.IntegrityIssue, error) {
	const op = "check integrity"
	db, err := s.conn(op)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return nil, storage.Fail(op, err)
	}
	defer rows.Close()

	var issues []storage.IntegrityIssue
	for rows.Next() {
		var table, parent string
		var rowID sql.NullInt64
		var fkID int
		if err := rows.Scan(&table, &rowID, &parent, &fkID); err != nil {
			return nil, storage.Fail(op, err)
		}
		issues = append(issues, storage.IntegrityIssue{
			Table:  table,
			RowID:  rowID.Int64,
			Parent: parent,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Fail(op, err)
	}
	return issues, nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Init/Load
func (s *Store) GetDB() *sql.DB {
	return s.db
}
