package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajramos/labelpanel/internal/catalog"
	"github.com/ajramos/labelpanel/internal/gmail"
	"github.com/ajramos/labelpanel/pkg/auth"
)

// gmailScopes is the minimum the panel needs: reading labels and
// modifying message label sets.
var gmailScopes = []string{
	"https://www.googleapis.com/auth/gmail.labels",
	"https://www.googleapis.com/auth/gmail.modify",
}

// newGmailClient authenticates and builds the API client.
func newGmailClient(cmd *cobra.Command, credFlag string) (*gmail.Client, error) {
	credPath := getCredentialsPath(credFlag)
	if credPath == "" {
		return nil, fmt.Errorf("gmail credentials file is required; provide it via --credentials or config file")
	}
	service, err := auth.NewGmailService(cmd.Context(), credPath, getTokenPath(), gmailScopes...)
	if err != nil {
		return nil, fmt.Errorf("initialize Gmail service: %w", err)
	}
	return gmail.NewClient(service), nil
}

func newLabelsCmd() *cobra.Command {
	var credFlag, account, storePath string

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List labels through the Gmail API",
		Long: `Fetch the authoritative label catalog from the Gmail API: real label
IDs, types and visibility states, which the sidebar scrape can only
approximate. Label colors reported by the API are persisted to the
override store so the panel can tint chips offline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := newGmailClient(cmd, credFlag)
			if err != nil {
				return err
			}
			source := catalog.NewAPISource(client)
			labels, colors, err := source.FetchLabels(ctx, account)
			if err != nil {
				return err
			}
			if len(colors) > 0 {
				st, ov, err := openOverrides(ctx, getStorePath(storePath))
				if err != nil {
					return err
				}
				defer st.Close()
				ov.MergeColors(colors)
				if err := ov.Save(ctx, st); err != nil {
					return fmt.Errorf("persist label colors: %w", err)
				}
			}
			for _, l := range labels {
				fmt.Printf("%-20s %-30s %-8s %s\n", l.ID, l.Name, l.Type, l.State)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&credFlag, "credentials", "", "Path to OAuth client credentials JSON")
	cmd.Flags().StringVar(&account, "account", "0", "Account key for the label cache")
	cmd.Flags().StringVar(&storePath, "store", "", "Override database path")
	return cmd
}
