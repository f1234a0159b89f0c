package backups

import (
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/intima/internal/backup"
	"github.com/julianstephens/intima/internal/cli"
	"github.com/julianstephens/intima/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "intima.db"), sqlite.WithPasswordCost(bcrypt.MinCost))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}, store
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, store := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupListCmd.Run() with no backups failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupCreateCmd.Run() failed: %v", err)
	}

	backups, err := backup.NewManager(store.GetConfigPath()).ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("BackupListCmd.Run() failed: %v", err)
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, store := setupTestContext(t)
	mgr := backup.NewManager(store.GetConfigPath())

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateUser(t.Context(), "alice", "pw"); err != nil {
		t.Fatal(err)
	}

	// restore by file name, resolved inside the backup directory
	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() failed: %v", err)
	}

	if err := store.Load(); err != nil {
		t.Fatalf("failed to reload restored database: %v", err)
	}
	u, err := store.GetUserByUsername(t.Context(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if u != nil {
		t.Error("restored database should not contain users added after the backup")
	}

	backups, _ := mgr.ListBackups()
	if len(backups) != 2 {
		t.Errorf("expected the pre-restore backup to be kept, got %d backups", len(backups))
	}
}

func TestBackupRestoreCmdMissingFile(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("restoring a missing backup should fail")
	}
}

func TestBackupCmdsRequireSQLite(t *testing.T) {
	ctx := &cli.Context{}

	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, errNotSQLite) {
		t.Errorf("BackupCreateCmd.Run() = %v, want errNotSQLite", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); !errors.Is(err, errNotSQLite) {
		t.Errorf("BackupListCmd.Run() = %v, want errNotSQLite", err)
	}
}
