package users

import (
	"fmt"
	"strings"

	"github.com/julianstephens/intima/internal/cli"
)

type UserAddCmd struct {
	Username string `arg:"" help:"Username for the new user."`
	Password string `help:"Password. Prompted for when omitted." env:"INTIMA_PASSWORD"`
}

func (c *UserAddCmd) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("username cannot be empty")
	}
	return nil
}

func (c *UserAddCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		var err error
		password, err = cli.PromptPassword(c.Username)
		if err != nil {
			return err
		}
	}

	rctx, cancel := ctx.Ctx()
	defer cancel()

	id, err := ctx.Store.CreateUser(rctx, c.Username, password)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created user %s (ID: %d)\n", c.Username, id)
	return nil
}

type UserListCmd struct{}

func (c *UserListCmd) Run(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	users, err := ctx.Store.GetAllUsers(rctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("No users yet. Add one with 'intima user add USERNAME'.")
		return nil
	}

	fmt.Println(cli.RenderUsers(users))
	return nil
}

type UserShowCmd struct {
	User string `arg:"" help:"User ID or username."`
}

func (c *UserShowCmd) Run(ctx *cli.Context) error {
	rctx, cancel := ctx.Ctx()
	defer cancel()

	u, err := ctx.LookupUser(rctx, c.User)
	if err != nil {
		return err
	}

	logs, err := ctx.Store.GetLogsByUserID(rctx, u.ID)
	if err != nil {
		return err
	}

	fmt.Printf("ID:       %d\n", u.ID)
	fmt.Printf("Username: %s\n", u.Username)
	fmt.Printf("Entries:  %d\n", len(logs))
	return nil
}
