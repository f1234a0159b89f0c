package system

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/intima/internal/cli"
	"github.com/julianstephens/intima/internal/models"
)

type DebugCmd struct {
	DBPath   *DebugDBPathCmd   `cmd:"" help:"Show database location."`
	DumpUser *DebugDumpUserCmd `cmd:"" help:"Dump a user's journal as JSON."`
	DumpLog  *DebugDumpLogCmd  `cmd:"" help:"Dump a journal entry as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	backend := "sqlite"
	if !ctx.IsSQLite() {
		backend = "postgres"
	}
	return writeJSON(os.Stdout, map[string]string{
		"backend": backend,
		"path":    ctx.Store.GetConfigPath(),
	})
}

// userDump is a user's journal without the password hash
type userDump struct {
	ID       int64            `json:"id"`
	Username string           `json:"username"`
	Logs     []models.Log     `json:"logs"`
	Emotions []models.Emotion `json:"emotions"`
}

type DebugDumpUserCmd struct {
	User string `arg:"" help:"User ID or username."`
}

func (cmd *DebugDumpUserCmd) Run(ctx *cli.Context) error {
	return cmd.dump(ctx, os.Stdout)
}

func (cmd *DebugDumpUserCmd) dump(ctx *cli.Context, w io.Writer) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	u, err := ctx.LookupUser(rctx, cmd.User)
	if err != nil {
		return err
	}
	logs, err := ctx.Store.GetLogsByUserID(rctx, u.ID)
	if err != nil {
		return err
	}
	all, err := ctx.Store.GetAllEmotions(rctx)
	if err != nil {
		return err
	}

	out := userDump{ID: u.ID, Username: u.Username, Logs: logs, Emotions: []models.Emotion{}}
	if out.Logs == nil {
		out.Logs = []models.Log{}
	}
	for _, e := range all {
		if e.UserID == u.ID {
			out.Emotions = append(out.Emotions, e)
		}
	}
	return writeJSON(w, out)
}

type DebugDumpLogCmd struct {
	ID int64 `arg:"" help:"Journal entry ID."`
}

func (cmd *DebugDumpLogCmd) Run(ctx *cli.Context) error {
	return cmd.dump(ctx, os.Stdout)
}

func (cmd *DebugDumpLogCmd) dump(ctx *cli.Context, w io.Writer) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	l, err := ctx.Store.GetLogByID(rctx, cmd.ID)
	if err != nil {
		return err
	}
	if l == nil {
		return fmt.Errorf("log entry %d not found", cmd.ID)
	}
	return writeJSON(w, l)
}

func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
