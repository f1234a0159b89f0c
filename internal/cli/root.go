package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/intima/internal/backup"
	"github.com/julianstephens/intima/internal/logger"
	"github.com/julianstephens/intima/internal/models"
	"github.com/julianstephens/intima/internal/storage"
	"github.com/julianstephens/intima/internal/storage/sqlite"
)

// DefaultTimeout bounds a single command's database work
const DefaultTimeout = 30 * time.Second

type Context struct {
	Store   storage.Provider
	Timeout time.Duration
}

// Ctx returns a context bounded by the command timeout
func (c *Context) Ctx() (context.Context, context.CancelFunc) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// IsSQLite reports whether the journal lives in a local SQLite file
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// LookupUser resolves ref as a numeric id first and then as a username
func (c *Context) LookupUser(ctx context.Context, ref string) (*models.User, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("a user is required")
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		u, err := c.Store.GetUserByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u != nil {
			return u, nil
		}
	}

	u, err := c.Store.GetUserByUsername(ctx, ref)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %q: %w", ref, storage.ErrUserNotFound)
	}
	return u, nil
}

// ParseDate accepts RFC3339, "YYYY-MM-DD HH:MM" or a bare date. The last two are read in local
// time. An empty string means now.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected RFC3339, YYYY-MM-DD HH:MM or YYYY-MM-DD)", s)
}
