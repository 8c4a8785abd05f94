package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/boggle-go/internal/api"
	redisevents "github.com/mcoot/boggle-go/internal/events/redis"
	"github.com/mcoot/boggle-go/internal/factory"
	"github.com/mcoot/boggle-go/internal/services/match"
)

const eventsChannel = "e2e:events"

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	redisURL   string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL, redisURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "boggle-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/boggle")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		redisURL:   redisURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) baseArgs() []string {
	return []string{
		"--server", r.serverURL,
		"--redis-url", r.redisURL,
		"--channel", eventsChannel,
		"--output", "json",
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append(r.baseArgs(), "--token-file", r.tokenFile)
	cmd := exec.Command(r.binaryPath, append(fullArgs, args...)...)
	cmd.Env = cliEnv()
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append(r.baseArgs(), "--token", token)
	cmd := exec.Command(r.binaryPath, append(fullArgs, args...)...)
	cmd.Env = cliEnv()
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// cliEnv drops any BOGGLE_ settings of the machine running the tests
func cliEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "BOGGLE_") {
			env = append(env, kv)
		}
	}
	return env
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

// startTestServer runs the real application on a free port, publishing events
// to the given redis
func startTestServer(t *testing.T, redisURL string) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	redisConfig := redisevents.DefaultConfig()
	redisConfig.URL = redisURL
	redisConfig.Channel = eventsChannel

	app, err := factory.New(factory.Config{
		Logger:      logger,
		Match:       match.Config{MinTimeLimit: 1, MaxTimeLimit: 120},
		RedisConfig: &redisConfig,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{Logger: logger, Engine: app.Engine})
	server := api.NewServer(router, api.DefaultServerConfig(), logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Serve(ctx, ln); err != nil {
			t.Logf("server error: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return "http://" + ln.Addr().String()
}

// lockedBuffer collects output of a background process
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Response types for JSON parsing
type registerResponse struct {
	UserToken string `json:"user_token"`
}

type joinResponse struct {
	GameID string `json:"game_id"`
	Paired bool   `json:"paired"`
}

type playResponse struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

type playerResponse struct {
	Nickname    string `json:"nickname"`
	Score       int    `json:"score"`
	WordsPlayed []struct {
		Word  string `json:"word"`
		Score int    `json:"score"`
	} `json:"words_played"`
}

type statusResponse struct {
	GameState string          `json:"game_state"`
	Board     string          `json:"board"`
	TimeLimit *int            `json:"time_limit"`
	TimeLeft  *int            `json:"time_left"`
	Player1   *playerResponse `json:"player1"`
	Player2   *playerResponse `json:"player2"`
}

type eventLine struct {
	Type    string `json:"type"`
	MatchID int64  `json:"match_id"`
	Player  string `json:"player"`
}

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestCLIEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	mini := miniredis.RunT(t)
	redisURL := "redis://" + mini.Addr()
	serverURL := startTestServer(t, redisURL)
	cli := newCLIRunner(t, serverURL, redisURL)

	// Tail events in the background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var eventsOut lockedBuffer
	eventsCmd := exec.CommandContext(ctx, cli.binaryPath, append(cli.baseArgs(), "events", "--json")...)
	eventsCmd.Env = cliEnv()
	eventsCmd.Stdout = &eventsOut
	eventsCmd.Stderr = &eventsOut
	require.NoError(t, eventsCmd.Start())
	defer func() {
		cancel()
		_ = eventsCmd.Wait()
	}()

	require.Eventually(t, func() bool {
		return mini.PubSubNumSub(eventsChannel)[eventsChannel] > 0
	}, 5*time.Second, 20*time.Millisecond)

	out, err := cli.run("health")
	require.NoError(t, err, out)
	assert.Equal(t, "ok", decodeJSON[map[string]string](t, out)["status"])

	// Register both players; alice keeps her token in the token file
	out, err = cli.run("user", "register", "alice")
	require.NoError(t, err, out)
	alice := decodeJSON[registerResponse](t, out).UserToken
	require.NotEmpty(t, alice)

	out, err = cli.run("user", "register", "--no-save", "bob")
	require.NoError(t, err, out)
	bob := decodeJSON[registerResponse](t, out).UserToken
	require.NotEqual(t, alice, bob)

	out, err = cli.run("game", "join", "--time-limit", "2")
	require.NoError(t, err, out)
	first := decodeJSON[joinResponse](t, out)
	assert.False(t, first.Paired)

	out, err = cli.runWithToken(bob, "game", "join", "--time-limit", "4")
	require.NoError(t, err, out)
	second := decodeJSON[joinResponse](t, out)
	assert.True(t, second.Paired)
	assert.Equal(t, first.GameID, second.GameID)

	out, err = cli.run("game", "status", first.GameID)
	require.NoError(t, err, out)
	status := decodeJSON[statusResponse](t, out)
	assert.Equal(t, "active", status.GameState)
	assert.Len(t, status.Board, 16)
	require.NotNil(t, status.TimeLimit)
	assert.Equal(t, 3, *status.TimeLimit)

	// A word of the board's first three letters is always formable
	word := status.Board[:3]
	out, err = cli.run("game", "play", first.GameID, word)
	require.NoError(t, err, out)
	played := decodeJSON[playResponse](t, out)
	assert.Equal(t, word, played.Word)
	assert.Equal(t, 1, played.Score)

	// Wait for the clock to run out
	require.Eventually(t, func() bool {
		out, err := cli.run("game", "status", "--brief", first.GameID)
		var brief statusResponse
		return err == nil && json.Unmarshal([]byte(out), &brief) == nil && brief.GameState == "complete"
	}, 10*time.Second, 250*time.Millisecond)

	out, err = cli.run("game", "status", first.GameID)
	require.NoError(t, err, out)
	final := decodeJSON[statusResponse](t, out)
	require.NotNil(t, final.Player1)
	require.NotNil(t, final.Player2)
	assert.Equal(t, "alice", final.Player1.Nickname)
	assert.Equal(t, 1, final.Player1.Score)
	require.Len(t, final.Player1.WordsPlayed, 1)
	assert.Equal(t, word, final.Player1.WordsPlayed[0].Word)
	assert.Empty(t, final.Player2.WordsPlayed)

	// Play after completion is rejected
	_, err = cli.runWithToken(bob, "game", "play", first.GameID, word)
	assert.Error(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(eventsOut.String(), `"match_completed"`)
	}, 5*time.Second, 50*time.Millisecond)

	var types []string
	for _, line := range strings.Split(strings.TrimSpace(eventsOut.String()), "\n") {
		var e eventLine
		if json.Unmarshal([]byte(line), &e) == nil && e.Type != "" {
			types = append(types, e.Type)
			assert.NotEqual(t, alice, e.Player)
			assert.NotEqual(t, bob, e.Player)
		}
	}
	assert.Equal(t, []string{
		"user_registered",
		"user_registered",
		"player_joined",
		"player_joined",
		"match_activated",
		"word_played",
		"match_completed",
	}, types)
}

func TestCLIRejectsUnknownToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	mini := miniredis.RunT(t)
	redisURL := "redis://" + mini.Addr()
	cli := newCLIRunner(t, startTestServer(t, redisURL), redisURL)

	out, err := cli.runWithToken("not-a-token", "game", "join")
	require.Error(t, err)
	assert.Contains(t, out, "UNKNOWN_USER")
}
