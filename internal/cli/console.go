package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mangestic/ctfctl/internal/dependencies/clock"
	"github.com/mangestic/ctfctl/internal/model"
	"github.com/mangestic/ctfctl/internal/notify"
	"github.com/mangestic/ctfctl/internal/session"
	"github.com/mangestic/ctfctl/internal/testutil"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start an interactive session",
		Long: `console starts an interactive session against the platform.

The session keeps the leaderboard and challenge list cached locally,
refreshing them after every successful mutation, and surfaces the same
transient notifications the web client shows.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd)
		},
	}
}

// console drives a session.Controller from stdin commands
type console struct {
	controller *session.Controller
	reader     *bufio.Reader
}

func runConsole(cmd *cobra.Command) error {
	center := notify.NewCenter(clock.New(), 0)
	controller := session.NewController(gateway, center, testutil.NopLogger())

	// Populate both collections up front, mirroring page load
	controller.Start(cmd.Context())

	c := &console{
		controller: controller,
		reader:     bufio.NewReader(os.Stdin),
	}

	fmt.Println("ctfctl console. Type 'help' for commands, 'quit' to exit.")

	for {
		fmt.Print("> ")
		line, err := c.reader.ReadString('\n')
		if err != nil {
			// EOF ends the session
			fmt.Println()
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		c.dispatch(cmd, fields)
		c.printNotification()
	}
}

func (c *console) dispatch(cmd *cobra.Command, fields []string) {
	ctx := cmd.Context()

	switch fields[0] {
	case "help":
		c.printHelp()
	case "login":
		if len(fields) != 3 {
			fmt.Println("usage: login <username> <password>")
			return
		}
		c.controller.EditLogin(fields[1], fields[2])
		c.runOp(c.controller.Login(ctx))
	case "register":
		if len(fields) != 4 {
			fmt.Println("usage: register <username> <email> <password>")
			return
		}
		c.controller.EditRegister(fields[1], fields[2], fields[3])
		c.runOp(c.controller.Register(ctx))
	case "board":
		c.controller.RefreshLeaderboard(ctx)
		c.printLeaderboard()
	case "challenges":
		c.controller.RefreshChallenges(ctx)
		c.printChallenges()
	case "contribute":
		c.runContribute(ctx)
	case "submit":
		if len(fields) != 3 {
			fmt.Println("usage: submit <challenge-id> <flag>")
			return
		}
		c.controller.ArmFlag(model.ChallengeID(fields[1]))
		c.controller.TypeFlag(fields[2])
		c.runOp(c.controller.SubmitFlag(ctx))
	case "whoami":
		sess := c.controller.Session()
		if sess.Authenticated() {
			fmt.Printf("Logged in as %s\n", sess.Username)
		} else {
			fmt.Println("Not logged in")
		}
	default:
		fmt.Printf("unknown command: %s (try 'help')\n", fields[0])
	}
}

func (c *console) runContribute(ctx context.Context) {
	title := c.prompt("Title")
	description := c.prompt("Description")
	flag := c.prompt("Flag")
	points := c.prompt("Points [100]")
	tags := c.prompt("Tags (comma-separated)")

	form := c.controller.Contribution()
	if points == "" {
		points = form.Points
	}

	c.controller.EditContribution(title, description, flag, points, tags)
	c.runOp(c.controller.Contribute(ctx))
}

func (c *console) runOp(err error) {
	switch {
	case err == nil:
	case errors.Is(err, session.ErrBusy):
		fmt.Println("Operation already in progress")
	case errors.Is(err, session.ErrInvalidInput):
		// Validation failures already raised a notification
	default:
		// Gateway failures already raised a notification
	}
}

func (c *console) prompt(label string) string {
	fmt.Printf("%s: ", label)
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (c *console) printLeaderboard() {
	entries := c.controller.Leaderboard()
	if len(entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}
	for i, e := range entries {
		fmt.Printf("%3d. %-24s %d\n", i+1, e.Username, e.Score)
	}
}

func (c *console) printChallenges() {
	challenges := c.controller.Challenges()
	if len(challenges) == 0 {
		fmt.Println("No challenges yet")
		return
	}
	for _, ch := range challenges {
		fmt.Printf("[%s] %s (%d pts)\n", ch.ID, ch.Title, ch.Points)
		if len(ch.Tags) > 0 {
			fmt.Printf("     tags: %s\n", strings.Join(ch.Tags, ", "))
		}
	}
}

func (c *console) printNotification() {
	if msg := c.controller.Notification(); msg != nil {
		prefix := "*"
		if msg.Kind == notify.KindError {
			prefix = "!"
		}
		fmt.Printf("%s %s\n", prefix, msg.Text)
	}
}

func (c *console) printHelp() {
	fmt.Println(`Commands:
  login <username> <password>       log in
  register <username> <email> <password>
                                    create an account and log in
  board                             refresh and show the leaderboard
  challenges                        refresh and show the challenge list
  contribute                        contribute a challenge (prompts for fields)
  submit <challenge-id> <flag>      submit a flag
  whoami                            show the current session
  quit                              exit the console`)
}
