package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/intima/internal/models"
	"github.com/julianstephens/intima/internal/storage"
)

const logColumns = `id, user_id, content, emotion_id, date`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (models.Log, error) {
	var l models.Log
	var emotionID sql.NullInt64
	var date int64
	if err := row.Scan(&l.ID, &l.UserID, &l.Content, &emotionID, &date); err != nil {
		return models.Log{}, err
	}
	l.EmotionID = int64Ptr(emotionID)
	l.Date = models.EpochToDate(date)
	return l, nil
}

func (s *Store) CreateLog(ctx context.Context, userID int64, content string, date time.Time, emotionID *int64) (int64, error) {
	const op = "create log"
	db, err := s.conn(op)
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.QueryRowContext(ctx,
		`INSERT INTO log (user_id, content, date, emotion_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, content, models.DateToEpoch(date), nullInt64(emotionID),
	).Scan(&id)
	if err != nil {
		return 0, classify(op, err)
	}
	return id, nil
}

func (s *Store) GetAllLogs(ctx context.Context) ([]models.Log, error) {
	return s.queryLogs(ctx, "get all logs", `SELECT `+logColumns+` FROM log ORDER BY date, id`)
}

func (s *Store) GetLogsByUserID(ctx context.Context, userID int64) ([]models.Log, error) {
	return s.queryLogs(ctx, "get logs by user id", `SELECT `+logColumns+` FROM log WHERE user_id = $1 ORDER BY date, id`, userID)
}

func (s *Store) queryLogs(ctx context.Context, op, query string, args ...any) ([]models.Log, error) {
	db, err := s.conn(op)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Fail(op, err)
	}
	defer rows.Close()

	var logs []models.Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, storage.Fail(op, err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Fail(op, err)
	}
	return logs, nil
}

func (s *Store) GetLogByID(ctx context.Context, id int64) (*models.Log, error) {
	const op = "get log by id"
	db, err := s.conn(op)
	if err != nil {
		return nil, err
	}

	l, err := scanLog(db.QueryRowContext(ctx, `SELECT `+logColumns+` FROM log WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storage.Fail(op, err)
	}
	return &l, nil
}

func (s *Store) UpdateLogByID(ctx context.Context, id int64, content string, emotionID *int64) (bool, error) {
	const op = "update log"
	db, err := s.conn(op)
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx,
		`UPDATE log SET content = $1, emotion_id = $2 WHERE id = $3`,
		content, nullInt64(emotionID), id,
	)
	if err != nil {
		return false, classify(op, err)
	}
	return affectedOne(res, op)
}

func (s *Store) DeleteLogByID(ctx context.Context, id int64) (bool, error) {
	const op = "delete log"
	db, err := s.conn(op)
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM log WHERE id = $1`, id)
	if err != nil {
		return false, classify(op, err)
	}
	return affectedOne(res, op)
}

func affectedOne(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, storage.Fail(op, err)
	}
	return n == 1, nil
}
