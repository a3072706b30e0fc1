package main

import (
	"fmt"

	"github.com/maxaizer/jobbridge/internal/services"
	"github.com/spf13/cobra"
)

var linkTokenCmd = &cobra.Command{
	Use:   "link-token <username>",
	Short: "Issue a one-time code that links a Telegram chat to the account",
	Long: "Issue a one-time code for an account without a linked Telegram chat. " +
		"The account holder sends \"/start <code>\" to the bot; the code is cleared once used.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		a, err := newApplication()
		if err != nil {
			return err
		}
		defer a.Close()

		token, err := services.NewChatLinks(a.users).IssueToken(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}
