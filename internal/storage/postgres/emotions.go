package postgres

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

	var id int64
	err = db.QueryRowContext(ctx,
		`INSERT INTO emotion (log_id, user_id, type) VALUES ($1, $2, $3) RETURNING id`,
		nullInt64(logID), userID, emotionType,
	).Scan(&id)
	if err != nil {
		return 0, classify(op, err)
	}
	return id, nil
}

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

	e, err := scanEmotion(db.QueryRowContext(ctx, `SELECT id, log_id, user_id, type FROM emotion WHERE id = $1`, id))
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
