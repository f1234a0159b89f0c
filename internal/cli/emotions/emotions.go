package emotions

import (
	"fmt"

	"github.com/julianstephens/intima/internal/cli"
	"github.com/julianstephens/intima/internal/models"
)

type EmotionAddCmd struct {
	User string `short:"u" help:"User ID or username." required:""`
	Type string `arg:"" help:"Emotion type, e.g. calm or anxious."`
	Log  int64  `short:"l" help:"Attach the emotion to this entry ID."`
}

func (c *EmotionAddCmd) Run(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	u, err := ctx.LookupUser(rctx, c.User)
	if err != nil {
		return err
	}

	var logID *int64
	if c.Log != 0 {
		logID = &c.Log
	}

	id, err := ctx.Store.CreateEmotion(rctx, u.ID, logID, c.Type)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Recorded %s for %s (ID: %d)\n", c.Type, u.Username, id)
	return nil
}

type EmotionListCmd struct {
	User string `short:"u" help:"Only show emotions for this user ID or username."`
}

func (c *EmotionListCmd) Run(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	emotions, err := ctx.Store.GetAllEmotions(rctx)
	if err != nil {
		return err
	}

	if c.User != "" {
		u, err := ctx.LookupUser(rctx, c.User)
		if err != nil {
			return err
		}
		emotions = ForUser(emotions, u.ID)
	}

	if len(emotions) == 0 {
		fmt.Println("No emotions recorded.")
		return nil
	}

	fmt.Println(cli.RenderEmotions(emotions))
	return nil
}

// ForUser keeps the emotions owned by userID, preserving order
func ForUser(emotions []models.Emotion, userID int64) []models.Emotion {
	var out []models.Emotion
	for _, e := range emotions {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

type EmotionShowCmd struct {
	ID int64 `arg:"" help:"Emotion ID."`
}

func (c *EmotionShowCmd) Run(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	e, err := ctx.Store.GetEmotionByID(rctx, c.ID)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("emotion %d not found", c.ID)
	}

	fmt.Printf("ID:   %d\n", e.ID)
	fmt.Printf("Type: %s\n", e.Type)
	fmt.Printf("User: %d\n", e.UserID)
	if e.LogID != nil {
		fmt.Printf("Log:  %d\n", *e.LogID)
	}
	return nil
}
