package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajramos/labelpanel/internal/identity"
)

func newResolveCmd() *cobra.Command {
	var pageURL, selector string

	cmd := &cobra.Command{
		Use:   "resolve <capture.html>",
		Short: "Resolve the Gmail message ID of a row in a captured page",
		Long: `Parse a captured Gmail page, select a message row with a CSS selector
and resolve its API message ID through the extraction strategy chain.
The resolved ID is printed in canonical hex form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(args[0], pageURL)
			if err != nil {
				return err
			}
			row := snap.Find(selector)
			if row.Length() == 0 {
				return fmt.Errorf("no element matches %q", selector)
			}
			resolver := identity.NewResolver(logger)
			id := resolver.Resolve(row.First(), snap)
			if id == "" {
				return fmt.Errorf("could not resolve a message ID for %q", selector)
			}
			fmt.Println(id)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "Page URL the capture was taken from")
	cmd.Flags().StringVar(&selector, "selector", `tr[role="row"]`, "CSS selector for the message row")
	return cmd
}
