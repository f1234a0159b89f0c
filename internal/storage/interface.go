package storage

import (
	"context"
	"time"

	"github.com/julianstephens/intima/internal/models"
)

// Provider is the journal data store. Single-row lookups return nil when the row does not
// exist; update and delete report whether a row was affected. Every other failure is one of
// the sentinel errors in errors.go.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Ping(ctx context.Context) error
	CheckIntegrity(ctx context.Context) ([]IntegrityIssue, error)

	// Users
	CreateUser(ctx context.Context, username, password string) (int64, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// Logs
	CreateLog(ctx context.Context, userID int64, content string, date time.Time, emotionID *int64) (int64, error)
	GetAllLogs(ctx context.Context) ([]models.Log, error)
	GetLogByID(ctx context.Context, id int64) (*models.Log, error)
	GetLogsByUserID(ctx context.Context, userID int64) ([]models.Log, error)
	UpdateLogByID(ctx context.Context, id int64, content string, emotionID *int64) (bool, error)
	DeleteLogByID(ctx context.Context, id int64) (bool, error)

	// Emotions
	CreateEmotion(ctx context.Context, userID int64, logID *int64, emotionType string) (int64, error)
	GetAllEmotions(ctx context.Context) ([]models.Emotion, error)
	GetEmotionByID(ctx context.Context, id int64) (*models.Emotion, error)

	// Utils
	GetConfigPath() string
}

// IntegrityIssue is a row whose foreign key points at a missing parent
type IntegrityIssue struct {
	Table  string
	RowID  int64
	Parent string
}
