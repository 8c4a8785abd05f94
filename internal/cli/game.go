package cli

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var errNoToken = errors.New("no user token: run 'boggle user register' or pass --token")

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameCancelCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGameStatusCmd())

	return cmd
}

func newGameJoinCmd() *cobra.Command {
	var timeLimit int

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the pending game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return errNoToken
			}
			body := map[string]any{"user_token": cfg.Token, "time_limit": timeLimit}

			var result JoinResult
			status, err := client.Post(cmd.Context(), "/api/v1/games", body, &result)
			if err != nil {
				return err
			}
			result.Paired = status == http.StatusCreated

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&timeLimit, "time-limit", "t", 60, "Requested time limit in seconds")

	return cmd
}

func newGameCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Leave the pending game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return errNoToken
			}
			body := map[string]string{"user_token": cfg.Token}

			if err := client.Put(cmd.Context(), "/api/v1/games", body, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Left the pending game")
			return nil
		},
	}
}

func newGamePlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <game-id> <word>",
		Short: "Play a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return errNoToken
			}
			gameID, word := args[0], args[1]
			body := map[string]string{"user_token": cfg.Token, "word": word}

			var result PlayResult
			if err := client.Put(cmd.Context(), "/api/v1/games/"+url.PathEscape(gameID), body, &result); err != nil {
				return err
			}
			result.Word = strings.ToUpper(strings.TrimSpace(word))

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameStatusCmd() *cobra.Command {
	var brief bool

	cmd := &cobra.Command{
		Use:   "status <game-id>",
		Short: "Show game status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/games/%s", url.PathEscape(args[0]))
			if brief {
				path += "?brief=yes"
			}

			var result GameStatus
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&brief, "brief", false, "Only show state, time left and scores")

	return cmd
}
