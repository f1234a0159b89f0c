package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/intima/internal/cli"
	"github.com/julianstephens/intima/internal/cli/backups"
	"github.com/julianstephens/intima/internal/cli/emotions"
	"github.com/julianstephens/intima/internal/cli/logs"
	"github.com/julianstephens/intima/internal/cli/system"
	"github.com/julianstephens/intima/internal/cli/users"
	"github.com/julianstephens/intima/internal/config"
	"github.com/julianstephens/intima/internal/constants"
	"github.com/julianstephens/intima/internal/errors"
	"github.com/julianstephens/intima/internal/logger"
	"github.com/julianstephens/intima/internal/storage"
	"github.com/julianstephens/intima/internal/storage/postgres"
	"github.com/julianstephens/intima/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite file path or PostgreSQL connection string. PostgreSQL passwords belong in the keyring or INTIMA_DB_CONNECTION, not here." env:"INTIMA_DB"`
	Verbose bool   `short:"v" help:"Write debug logs to stderr as well as the log file."`

	Init   system.InitCmd   `cmd:"" help:"Initialize intima storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Browse a journal interactively."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for inspecting stored data."`
	User   struct {
		Add  users.UserAddCmd  `cmd:"" help:"Create a user."`
		List users.UserListCmd `cmd:"" help:"List users."`
		Show users.UserShowCmd `cmd:"" help:"Show a user."`
	} `cmd:"" help:"Manage users."`
	Log struct {
		Add    logs.LogAddCmd    `cmd:"" help:"Write a journal entry."`
		List   logs.LogListCmd   `cmd:"" help:"List journal entries."`
		Show   logs.LogShowCmd   `cmd:"" help:"Show a journal entry."`
		Edit   logs.LogEditCmd   `cmd:"" help:"Edit a journal entry."`
		Delete logs.LogDeleteCmd `cmd:"" help:"Delete a journal entry."`
	} `cmd:"" help:"Manage journal entries."`
	Emotion struct {
		Add  emotions.EmotionAddCmd  `cmd:"" help:"Record an emotion."`
		List emotions.EmotionListCmd `cmd:"" help:"List emotions."`
		Show emotions.EmotionShowCmd `cmd:"" help:"Show an emotion."`
	} `cmd:"" help:"Manage emotions."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage SQLite database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// skipsLoad lists commands that run before, or without, a loaded store
func skipsLoad(command string) bool {
	for _, prefix := range []string{"init", "doctor", "keyring"} {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Private journal with emotion tracking"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	db, err := config.ResolveDatabase(CLI.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s\n", errors.Format(err))
		fmt.Fprintf(os.Stderr, "       Store credentials with '%s keyring set' or export %s instead.\n",
			constants.AppName, constants.EnvDatabaseConnection)
		os.Exit(1)
	}

	configDir, err := db.ConfigDir()
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Verbose: CLI.Verbose, Dir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	logger.Debug("Resolved database", "source", db.Source, "postgres", db.Postgres)

	cost := config.BcryptCost()
	var store storage.Provider
	if db.Postgres {
		store = postgres.New(db.Location, postgres.WithPasswordCost(cost))
	} else {
		store = sqlite.NewStore(db.Location, sqlite.WithPasswordCost(cost))
	}
	defer store.Close()

	appCtx := &cli.Context{Store: store}

	if !skipsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			store.Close()
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
