package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangestic/ctfctl/internal/devserver"
	"github.com/mangestic/ctfctl/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "ctfctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ctfctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := devserver.NewRouter(devserver.RouterConfig{
		Logger:           logger,
		AccountService:   app.AccountService,
		ChallengeService: app.ChallengeService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing

type authResponse struct {
	Username string `json:"username"`
}

type leaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type challengeEntry struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Points int      `json:"points"`
	Tags   []string `json:"tags"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AccountCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("account", "register",
		"--user", "alice", "--email", "alice@example.com", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var resp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "alice", resp.Username)

	// Login with the same credentials
	output, err = cli.run("account", "login", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "alice", resp.Username)

	// Wrong password fails
	_, err = cli.run("account", "login", "--user", "alice", "--pass", "wrong")
	assert.Error(t, err)
}

func TestCLI_ChallengeLifecycle(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Contribute a challenge
	output, err := cli.run("contribute",
		"--title", "Web 101",
		"--description", "Find the flag",
		"--flag", "CTF{hello}",
		"--points", "150",
		"--tags", "web,easy")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Tantangan dikirim!", msg.Message)

	// It shows up in the list
	output, err = cli.run("challenges")
	require.NoError(t, err, "output: %s", output)

	var challenges []challengeEntry
	require.NoError(t, json.Unmarshal([]byte(output), &challenges))
	require.Len(t, challenges, 1)
	assert.Equal(t, "Web 101", challenges[0].Title)
	assert.Equal(t, 150, challenges[0].Points)
	assert.Equal(t, []string{"web", "easy"}, challenges[0].Tags)

	// Solve it as a registered user
	_, err = cli.run("account", "register",
		"--user", "alice", "--email", "alice@example.com", "--pass", "secret123")
	require.NoError(t, err)

	output, err = cli.run("submit",
		"--challenge", challenges[0].ID, "--flag", "CTF{hello}")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Flag benar!", msg.Message)

	// Wrong flag fails
	_, err = cli.run("submit", "--challenge", challenges[0].ID, "--flag", "CTF{wrong}")
	assert.Error(t, err)
}

func TestCLI_Leaderboard(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	_, err := cli.run("account", "register",
		"--user", "alice", "--email", "alice@example.com", "--pass", "secret123")
	require.NoError(t, err)
	_, err = cli.run("account", "register",
		"--user", "bob", "--email", "bob@example.com", "--pass", "secret123")
	require.NoError(t, err)

	output, err := cli.run("board")
	require.NoError(t, err, "output: %s", output)

	var entries []leaderboardEntry
	require.NoError(t, json.Unmarshal([]byte(output), &entries))
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, 0, e.Score)
	}
}
