package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mangestic/ctfctl/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case []model.LeaderboardEntry:
		o.printLeaderboard(v)
	case []model.Challenge:
		o.printChallenges(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult is the outcome of a register or login call
type AuthResult struct {
	Username string `json:"username"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Logged in as: %s\n", a.Username)
}

func (o *Output) printLeaderboard(entries []model.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}
	for i, e := range entries {
		fmt.Printf("%3d. %-24s %d\n", i+1, e.Username, e.Score)
	}
}

func (o *Output) printChallenges(challenges []model.Challenge) {
	if len(challenges) == 0 {
		fmt.Println("No challenges yet")
		return
	}
	for _, c := range challenges {
		fmt.Printf("[%s] %s (%d pts)\n", c.ID, c.Title, c.Points)
		if c.Description != "" {
			fmt.Printf("     %s\n", c.Description)
		}
		if len(c.Tags) > 0 {
			fmt.Printf("     tags: %s\n", strings.Join(c.Tags, ", "))
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
