package postgres

import (
	"errors"
	"os"
	"slices"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/intima/internal/storage"
)

// TestStore_Integration exercises the store against a real server.
// Example: INTIMA_POSTGRES_TEST_URL="postgres://intima@localhost:5432/intima_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("INTIMA_POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("INTIMA_POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr, WithPasswordCost(bcrypt.MinCost))
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	// Running Init twice must be a no-op.
	if err := store.Init(); err != nil {
		t.Fatalf("Second Init failed: %v", err)
	}

	ctx := t.Context()
	username := "it-" + time.Now().Format("150405.000000000")

	var userID int64
	t.Run("Users", func(t *testing.T) {
		id, err := store.CreateUser(ctx, username, "hunter2")
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		userID = id

		if _, err := store.CreateUser(ctx, username, "other"); !errors.Is(err, storage.ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}

		u, err := store.GetUserByUsername(ctx, username)
		if err != nil || u == nil || u.ID != userID {
			t.Fatalf("GetUserByUsername = %+v, %v", u, err)
		}
		if u.PasswordHash == "hunter2" {
			t.Error("password stored in plain text")
		}

		for _, suffix := range []string{"-B", "-a", "_c"} {
			if _, err := store.CreateUser(ctx, username+suffix, "pw"); err != nil {
				t.Fatalf("CreateUser(%q) failed: %v", username+suffix, err)
			}
		}
		users, err := store.GetAllUsers(ctx)
		if err != nil {
			t.Fatalf("GetAllUsers failed: %v", err)
		}
		names := make([]string, len(users))
		for i, u := range users {
			names[i] = u.Username
		}
		// bytewise, matching the SQLite backend
		if !slices.IsSorted(names) {
			t.Errorf("GetAllUsers not in bytewise username order: %v", names)
		}

		missing, err := store.GetUserByID(ctx, -1)
		if err != nil || missing != nil {
			t.Fatalf("GetUserByID(-1) = %+v, %v; want nil, nil", missing, err)
		}
	})

	t.Run("LogsAndEmotions", func(t *testing.T) {
		date := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
		logID, err := store.CreateLog(ctx, userID, "slept well", date, nil)
		if err != nil {
			t.Fatalf("CreateLog failed: %v", err)
		}

		emotionID, err := store.CreateEmotion(ctx, userID, &logID, "calm")
		if err != nil {
			t.Fatalf("CreateEmotion failed: %v", err)
		}

		ok, err := store.UpdateLogByID(ctx, logID, "slept very well", &emotionID)
		if err != nil || !ok {
			t.Fatalf("UpdateLogByID = %v, %v", ok, err)
		}

		got, err := store.GetLogByID(ctx, logID)
		if err != nil || got == nil {
			t.Fatalf("GetLogByID = %+v, %v", got, err)
		}
		if !got.Date.Equal(date) || got.Content != "slept very well" || got.EmotionID == nil || *got.EmotionID != emotionID {
			t.Errorf("unexpected log %+v", got)
		}

		if _, err := store.CreateLog(ctx, -1, "x", date, nil); !errors.Is(err, storage.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
		missingEmotion := int64(-1)
		if _, err := store.CreateLog(ctx, userID, "x", date, &missingEmotion); !errors.Is(err, storage.ErrEmotionNotFound) {
			t.Errorf("expected ErrEmotionNotFound, got %v", err)
		}
		missingLog := int64(-1)
		if _, err := store.CreateEmotion(ctx, userID, &missingLog, "sad"); !errors.Is(err, storage.ErrLogNotFound) {
			t.Errorf("expected ErrLogNotFound, got %v", err)
		}

		ok, err = store.DeleteLogByID(ctx, logID)
		if err != nil || !ok {
			t.Fatalf("DeleteLogByID = %v, %v", ok, err)
		}
		if e, err := store.GetEmotionByID(ctx, emotionID); err != nil || e != nil {
			t.Errorf("emotion should cascade with its log, got %+v, %v", e, err)
		}
		ok, err = store.DeleteLogByID(ctx, logID)
		if err != nil || ok {
			t.Errorf("second DeleteLogByID = %v, %v; want false, nil", ok, err)
		}
	})
}
