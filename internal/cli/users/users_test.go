package users

import (
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/intima/internal/cli"
	"github.com/julianstephens/intima/internal/security"
	"github.com/julianstephens/intima/internal/storage"
	"github.com/julianstephens/intima/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "intima.db"), sqlite.WithPasswordCost(bcrypt.MinCost))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}
}

func TestUserAddCmd(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &UserAddCmd{Username: "alice", Password: "correct horse"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("UserAddCmd.Run() failed: %v", err)
	}

	u, err := ctx.Store.GetUserByUsername(t.Context(), "alice")
	if err != nil || u == nil {
		t.Fatalf("user not stored: %+v, %v", u, err)
	}
	ok, err := security.CheckPassword(u.PasswordHash, "correct horse")
	if err != nil || !ok {
		t.Errorf("stored hash does not match password: %v", err)
	}

	if err := cmd.Run(ctx); !errors.Is(err, storage.ErrUsernameTaken) {
		t.Errorf("second add error = %v, want %v", err, storage.ErrUsernameTaken)
	}
}

func TestUserAddCmdValidate(t *testing.T) {
	if err := (&UserAddCmd{Username: "  "}).Validate(); err == nil {
		t.Error("Validate() should reject a blank username")
	}
	if err := (&UserAddCmd{Username: "bob"}).Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestUserListAndShow(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&UserListCmd{}).Run(ctx); err != nil {
		t.Fatalf("UserListCmd.Run() on empty store failed: %v", err)
	}
	if err := (&UserAddCmd{Username: "alice", Password: "pw"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&UserListCmd{}).Run(ctx); err != nil {
		t.Errorf("UserListCmd.Run() failed: %v", err)
	}
	if err := (&UserShowCmd{User: "alice"}).Run(ctx); err != nil {
		t.Errorf("UserShowCmd.Run() failed: %v", err)
	}
	if err := (&UserShowCmd{User: "nobody"}).Run(ctx); !errors.Is(err, storage.ErrUserNotFound) {
		t.Errorf("UserShowCmd.Run() for unknown user = %v, want %v", err, storage.ErrUserNotFound)
	}
}
