package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}

	cmd.AddCommand(newUserRegisterCmd())

	return cmd
}

func newUserRegisterCmd() *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "register <nickname>",
		Short: "Register a user and save its token",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"nickname": strings.Join(args, " ")}

			var result RegisterResult
			if _, err := client.Post(cmd.Context(), "/api/v1/users", body, &result); err != nil {
				return err
			}

			if !noSave {
				if err := cfg.SaveToken(result.UserToken); err != nil {
					return err
				}
				client.SetToken(result.UserToken)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not write the token to the token file")

	return cmd
}
