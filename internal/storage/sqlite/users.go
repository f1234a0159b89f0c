package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/julianstephens/intima/internal/models"
	"github.com/julianstephens/intima/internal/security"
	"github.com/julianstephens/intima/internal/storage"
)

func (s *Store) CreateUser(ctx context.Context, username, password string) (int64, error) {
	const op = "create user"
	if strings.TrimSpace(username) == "" || password == "" {
		return 0, storage.Kind(op, storage.ErrInvalidInput)
	}

	db, err := s.conn(op)
	if err != nil {
		return 0, err
	}

	hash, err := security.HashPassword(password, s.passwordCost)
	if err != nil {
		return 0, storage.Fail(op, err)
	}

	res, err := db.ExecContext(ctx, `INSERT INTO user (username, password) VALUES (?, ?)`, username, hash)
	if err != nil {
		if isUniqueViolation(err, "user.username") {
			return 0, storage.Kind(op, storage.ErrUsernameTaken)
		}
		return 0, storage.Fail(op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storage.Fail(op, err)
	}
	return id, nil
}

func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	const op = "get all users"
	db, err := s.conn(op)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, username, password FROM user ORDER BY username`)
	if err != nil {
		return nil, storage.Fail(op, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
			return nil, storage.Fail(op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Fail(op, err)
	}
	return users, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "get user by id"
	db, err := s.conn(op)
	if err != nil {
		return nil, err
	}
	return scanUser(db.QueryRowContext(ctx, `SELECT id, username, password FROM user WHERE id = ?`, id), op)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "get user by username"
	db, err := s.conn(op)
	if err != nil {
		return nil, err
	}
	return scanUser(db.QueryRowContext(ctx, `SELECT id, username, password FROM user WHERE username = ?`, username), op)
}

func scanUser(row *sql.Row, op string) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storage.Fail(op, err)
	}
	return &u, nil
}

func (s *Store) userExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM user WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}
