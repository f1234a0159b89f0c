package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/intima/internal/cli"
	"github.com/julianstephens/intima/internal/tui"
)

type TuiCmd struct {
	User string `short:"u" help:"User ID or username whose journal to open." required:""`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	u, err := ctx.LookupUser(rctx, c.User)
	cancel()
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Store, *u), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
