package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/julianstephens/intima/internal/models"
	"github.com/julianstephens/intima/internal/storage"
)

func (s *Store) CreateEmotion(ctx context.Context, userID int64, logID *int64, emotionType string) (int64, error) {
	const op = "create emotion"
	if strings.TrimSpace(emotionType) == "" {
		return 0, storage.Kind(op, storage.ErrInvalidInput)
	}

	db, err := s.conn(op)
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO emotion (log_id, user_id, type) VALUES (?, ?, ?)`,
		nullInt64(logID), userID, emotionType,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, s.emotionReferenceError(ctx, op, userID, logID, err)
		}
		return 0, storage.Fail(op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storage.Fail(op, err)
	}
	return id, nil
}

func (s *Store) emotionReferenceError(ctx context.Context, op string, userID int64, logID *int64, cause error) error {
	ok, err := s.userExists(ctx, userID)
	if err != nil {
		return storage.Fail(op, err)
	}
	if !ok {
		return storage.Kind(op, storage.ErrUserNotFound)
	}
	if logID != nil {
		var exists bool
		if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM log WHERE id = ?)`, *logID).Scan(&exists); err != nil {
			return storage.Fail(op, err)
		}
		if !exists {
			return storage.Kind(op, storage.ErrLogNotFound)
		}
	}
	return storage.Fail(op, cause)
}

// GetAllEmotions returns emotions in insertion (id) order; emotions carry no date.
func (s *Store) GetAllEmotions(ctx context.Context) ([]models.Emotion, error) {
	const op = "get all emotions"
	db, err := s.conn(op)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, log_id, user_id, type FROM emotion ORDER BY id`)
	if err != nil {
		return nil, storage.Fail(op, err)
	}
	defer rows.Close()

	var emotions []models.Emotion
	for rows.Next() {
		e, err := scanEmotion(rows)
		if err != nil {
			return nil, storage.Fail(op, err)
		}
		emotions = append(emotions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Fail(op, err)
	}
	return emotions, nil
}

func (s *Store) GetEmotionByID(ctx context.Context, id int64) (*models.Emotion, error) {
	const op = "get emotion by id"
	db, err := s.conn(op)
	if err != nil {
		return nil, err
	}

	e, err := scanEmotion(db.QueryRowContext(ctx, `SELECT id, log_id, user_id, type FROM emotion WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storage.Fail(op, err)
	}
	return &e, nil
}

func scanEmotion(row rowScanner) (models.Emotion, error) {
	var e models.Emotion
	var logID sql.NullInt64
	if err := row.Scan(&e.ID, &logID, &e.UserID, &e.Type); err != nil {
		return models.Emotion{}, err
	}
	e.LogID = int64Ptr(logID)
	return e, nil
}

func (s *Store) emotionExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM emotion WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}
