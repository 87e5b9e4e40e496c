package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	var credFlag string
	var remove bool

	cmd := &cobra.Command{
		Use:   "apply <message-id> <label-id>",
		Short: "Apply a label to a message through the Gmail API",
		Long: `Apply (or with --remove, remove) a label on a message. The message ID
is the canonical hex form, as printed by the resolve command.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGmailClient(cmd, credFlag)
			if err != nil {
				return err
			}
			messageID, labelID := args[0], args[1]
			if remove {
				if err := client.RemoveLabel(messageID, labelID); err != nil {
					return err
				}
				fmt.Printf("removed %s from %s\n", labelID, messageID)
				return nil
			}
			if err := client.ApplyLabel(messageID, labelID); err != nil {
				return err
			}
			fmt.Printf("applied %s to %s\n", labelID, messageID)
			return nil
		},
	}

	cmd.Flags().StringVar(&credFlag, "credentials", "", "Path to OAuth client credentials JSON")
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the label instead of applying it")
	return cmd
}
