package postgres

import (
	"database/sql"
	"errors"

	pq "github.com/lib/pq"

	"github.com/julianstephens/intima/internal/storage"
)

const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeNotNullViolation    pq.ErrorCode = "23502"
)

// constraintKinds maps the named constraints in the schema to the error kind a caller sees
var constraintKinds = map[string]error{
	"uq_user_username": storage.ErrUsernameTaken,
	"fk_log_user":      storage.ErrUserNotFound,
	"fk_log_emotion":   storage.ErrEmotionNotFound,
	"fk_emotion_user":  storage.ErrUserNotFound,
	"fk_emotion_log":   storage.ErrLogNotFound,
}

// classify turns a driver error into one of the storage error kinds. Unknown failures are
// logged and reported as ErrStorage.
func classify(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation, codeForeignKeyViolation:
			if kind, ok := constraintKinds[pqErr.Constraint]; ok {
				return storage.Kind(op, kind)
			}
		case codeNotNullViolation:
			return storage.Kind(op, storage.ErrInvalidInput)
		}
	}
	return storage.Fail(op, err)
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
