package system

import (
	"fmt"
	"strings"

	"github.com/julianstephens/intima/internal/backup"
	"github.com/julianstephens/intima/internal/cli"
	"github.com/julianstephens/intima/internal/constants"
	"github.com/julianstephens/intima/internal/keyring"
)

type DoctorCmd struct{}

// schemaChecker is implemented by stores that track an applied schema version
type schemaChecker interface {
	SchemaPending() (bool, error)
}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Foreign key integrity", needsDB: true, run: checkIntegrity},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	rctx, cancel := ctx.Ctx()
	defer cancel()
	if err := ctx.Store.Ping(rctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sc, ok := ctx.Store.(schemaChecker)
	if !ok {
		return nil
	}
	pending, err := sc.SchemaPending()
	if err != nil {
		return err
	}
	if pending {
		return fmt.Errorf("schema is out of date - run '%s init' to apply pending changes", constants.AppName)
	}
	return nil
}

func checkIntegrity(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	issues, err := ctx.Store.CheckIntegrity(rctx)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		return nil
	}

	var lines []string
	for _, issue := range issues {
		lines = append(lines, fmt.Sprintf("%s row %d references a missing %s", issue.Table, issue.RowID, issue.Parent))
	}
	return fmt.Errorf("%d orphaned row(s):\n   %s", len(issues), strings.Join(lines, "\n   "))
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; PostgreSQL credentials must come from %s", constants.EnvDatabaseConnection)
	}
	return nil
}
