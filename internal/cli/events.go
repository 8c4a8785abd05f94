package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/boggle-go/internal/events"
	redisevents "github.com/mcoot/boggle-go/internal/events/redis"
)

func newEventsCmd() *cobra.Command {
	var (
		jsonOutput bool
		gameID     int64
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream game events from Redis",
		Long: `Subscribe to the server's Redis event channel and print events as they happen.

Events include:
  - user_registered: A user was created
  - player_joined: A player took a seat in the pending game
  - join_cancelled: A player left the pending game
  - match_activated: A game started
  - word_played: A word was played
  - match_completed: A game ran out of time

Players are identified by a fingerprint of their token, never the token itself.
Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sub, err := redisevents.NewSubscriber(ctx, redisevents.Config{
				URL:     cfg.RedisURL,
				Channel: cfg.Channel,
			})
			if err != nil {
				return fmt.Errorf("failed to connect to redis: %w", err)
			}
			defer func() { _ = sub.Close() }()

			return streamEvents(ctx, cmd, sub, gameID, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().Int64Var(&gameID, "game", 0, "Only show events for this game")

	return cmd
}

func streamEvents(ctx context.Context, cmd *cobra.Command, sub *redisevents.Subscriber, gameID int64, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	if !jsonOutput {
		fmt.Fprintf(out, "Listening on %s...\n", cfg.Channel)
	}

	return sub.Listen(ctx, func(env *events.Envelope) error {
		if gameID != 0 && int64(env.MatchID) != gameID {
			return nil
		}
		if jsonOutput {
			data, err := json.Marshal(env)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		ts := env.Timestamp.Format("15:04:05")
		line := fmt.Sprintf("[%s] %s", ts, env.Type)
		if env.MatchID != 0 {
			line += fmt.Sprintf(" game=%d", env.MatchID)
		}
		if env.Player != "" {
			line += " player=" + env.Player
		}
		if len(env.Payload) > 0 {
			line += " " + string(env.Payload)
		}
		fmt.Fprintln(out, line)
		return nil
	}, func(e *redisevents.InvalidMessageError) {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipping invalid message: %v\n", e.Err)
	})
}
