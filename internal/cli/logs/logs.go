package logs

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/intima/internal/cli"
	"github.com/julianstephens/intima/internal/constants"
	"github.com/julianstephens/intima/internal/models"
)

type LogAddCmd struct {
	User    string `short:"u" help:"User ID or username." required:""`
	Content string `arg:"" help:"Journal entry text."`
	Date    string `short:"d" help:"Entry date (RFC3339, 'YYYY-MM-DD HH:MM' or 'YYYY-MM-DD'). Defaults to now."`
	Emotion string `short:"e" help:"Tag the entry with a new emotion of this type."`
}

func (c *LogAddCmd) Validate() error {
	if _, err := cli.ParseDate(c.Date); err != nil {
		return err
	}
	return nil
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}

	rctx, cancel := ctx.Ctx()
	defer cancel()

	u, err := ctx.LookupUser(rctx, c.User)
	if err != nil {
		return err
	}

	id, err := ctx.Store.CreateLog(rctx, u.ID, c.Content, date, nil)
	if err != nil {
		return err
	}

	if strings.TrimSpace(c.Emotion) != "" {
		emotionID, err := TagLog(rctx, ctx, u.ID, id, c.Content, c.Emotion)
		if err != nil {
			return fmt.Errorf("entry %d was saved but tagging it failed: %w", id, err)
		}
		fmt.Printf("✓ Added entry %d for %s, feeling %s (emotion %d)\n", id, u.Username, c.Emotion, emotionID)
		return nil
	}

	fmt.Printf("✓ Added entry %d for %s\n", id, u.Username)
	return nil
}

// TagLog records an emotion against a log and links the log back to it
func TagLog(rctx context.Context, ctx *cli.Context, userID, logID int64, content, emotionType string) (int64, error) {
	emotionID, err := ctx.Store.CreateEmotion(rctx, userID, &logID, strings.TrimSpace(emotionType))
	if err != nil {
		return 0, err
	}
	if _, err := ctx.Store.UpdateLogByID(rctx, logID, content, &emotionID); err != nil {
		return 0, err
	}
	return emotionID, nil
}

type LogListCmd struct {
	User string `short:"u" help:"Only show entries for this user ID or username."`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	var (
		logs []models.Log
		err  error
	)
	if c.User != "" {
		u, lookupErr := ctx.LookupUser(rctx, c.User)
		if lookupErr != nil {
			return lookupErr
		}
		logs, err = ctx.Store.GetLogsByUserID(rctx, u.ID)
	} else {
		logs, err = ctx.Store.GetAllLogs(rctx)
	}
	if err != nil {
		return err
	}

	if len(logs) == 0 {
		fmt.Println("No journal entries found.")
		return nil
	}

	emotions, err := ctx.Store.GetAllEmotions(rctx)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderLogs(logs, cli.EmotionTypes(emotions)))
	return nil
}

type LogShowCmd struct {
	ID int64 `arg:"" help:"Entry ID."`
}

func (c *LogShowCmd) Run(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	l, err := ctx.Store.GetLogByID(rctx, c.ID)
	if err != nil {
		return err
	}
	if l == nil {
		return fmt.Errorf("entry %d not found", c.ID)
	}

	fmt.Printf("Entry %d (user %d) on %s\n", l.ID, l.UserID, l.Date.Local().Format(constants.DateTimeFormat))
	if l.HasEmotion() {
		e, err := ctx.Store.GetEmotionByID(rctx, *l.EmotionID)
		if err != nil {
			return err
		}
		if e != nil {
			fmt.Printf("Feeling: %s\n", e.Type)
		}
	}
	fmt.Println()
	fmt.Println(l.Content)
	return nil
}

type LogEditCmd struct {
	ID           int64  `arg:"" help:"Entry ID."`
	Content      string `short:"c" help:"New entry text. Keeps the current text when omitted."`
	EmotionID    int64  `name:"emotion-id" help:"Link the entry to an existing emotion."`
	ClearEmotion bool   `help:"Remove the entry's emotion link."`
}

func (c *LogEditCmd) Validate() error {
	if c.EmotionID != 0 && c.ClearEmotion {
		return fmt.Errorf("--emotion-id and --clear-emotion cannot be used together")
	}
	return nil
}

func (c *LogEditCmd) Run(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	current, err := ctx.Store.GetLogByID(rctx, c.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("entry %d not found", c.ID)
	}

	content := current.Content
	if c.Content != "" {
		content = c.Content
	}
	emotionID := current.EmotionID
	switch {
	case c.ClearEmotion:
		emotionID = nil
	case c.EmotionID != 0:
		emotionID = &c.EmotionID
	}

	ok, err := ctx.Store.UpdateLogByID(rctx, c.ID, content, emotionID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("entry %d not found", c.ID)
	}

	fmt.Printf("✓ Updated entry %d\n", c.ID)
	return nil
}

type LogDeleteCmd struct {
	ID  int64 `arg:"" help:"Entry ID."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *LogDeleteCmd) Run(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	l, err := ctx.Store.GetLogByID(rctx, c.ID)
	if err != nil {
		return err
	}
	if l == nil {
		return fmt.Errorf("entry %d not found", c.ID)
	}

	if !c.Yes {
		ok, err := cli.Confirm(
			fmt.Sprintf("Delete entry %d from %s?", l.ID, l.Date.Local().Format(constants.DateTimeFormat)),
			"Emotions recorded against it are deleted too.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	deleted, err := ctx.Store.DeleteLogByID(rctx, c.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("entry %d not found", c.ID)
	}

	fmt.Printf("Deleted entry %d\n", c.ID)
	return nil
}
