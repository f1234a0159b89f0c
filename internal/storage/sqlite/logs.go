package sqlite

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

	res, err := db.ExecContext(ctx,
		`INSERT INTO log (user_id, content, date, emotion_id) VALUES (?, ?, ?, ?)`,
		userID, content, models.DateToEpoch(date), nullInt64(emotionID),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, s.logReferenceError(ctx, op, userID, emotionID, err)
		}
		return 0, storage.Fail(op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storage.Fail(op, err)
	}
	return id, nil
}

// logReferenceError works out which foreign key a failed log write tripped. SQLite's
// constraint message does not name the column, so the parents are looked up directly.
func (s *Store) logReferenceError(ctx context.Context, op string, userID int64, emotionID *int64, cause error) error {
	ok, err := s.userExists(ctx, userID)
	if err != nil {
		return storage.Fail(op, err)
	}
	if !ok {
		return storage.Kind(op, storage.ErrUserNotFound)
	}
	if emotionID != nil {
		ok, err := s.emotionExists(ctx, *emotionID)
		if err != nil {
			return storage.Fail(op, err)
		}
		if !ok {
			return storage.Kind(op, storage.ErrEmotionNotFound)
		}
	}
	return storage.Fail(op, cause)
}

func (s *Store) GetAllLogs(ctx context.Context) ([]models.Log, error) {
	return s.queryLogs(ctx, "get all logs", `SELECT `+logColumns+` FROM log ORDER BY date, id`)
}

func (s *Store) GetLogsByUserID(ctx context.Context, userID int64) ([]models.Log, error) {
	return s.queryLogs(ctx, "get logs by user id", `SELECT `+logColumns+` FROM log WHERE user_id = ? ORDER BY date, id`, userID)
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

	l, err := scanLog(db.QueryRowContext(ctx, `SELECT `+logColumns+` FROM log WHERE id = ?`, id))
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
		`UPDATE log SET content = ?, emotion_id = ? WHERE id = ?`,
		content, nullInt64(emotionID), id,
	)
	if err != nil {
		if isForeignKeyViolation(err) && emotionID != nil {
			ok, lookupErr := s.emotionExists(ctx, *emotionID)
			if lookupErr == nil && !ok {
				return false, storage.Kind(op, storage.ErrEmotionNotFound)
			}
		}
		return false, storage.Fail(op, err)
	}
	return affectedOne(res, op)
}

func (s *Store) DeleteLogByID(ctx context.Context, id int64) (bool, error) {
	const op = "delete log"
	db, err := s.conn(op)
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM log WHERE id = ?`, id)
	if err != nil {
		return false, storage.Fail(op, err)
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
