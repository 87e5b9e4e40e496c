package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajramos/labelpanel/internal/catalog"
)

func newScanCmd() *cobra.Command {
	var pageURL string

	cmd := &cobra.Command{
		Use:   "scan <capture.html>",
		Short: "Scan a captured Gmail page for sidebar labels",
		Long: `Parse a captured Gmail page and print the label catalog scraped from
its sidebar: name, type (system/user) and visibility state. Use "-" to
read the capture from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(args[0], pageURL)
			if err != nil {
				return err
			}
			scanner, err := catalog.NewScanner(nil, logger)
			if err != nil {
				return err
			}
			labels := scanner.ScanSidebar(snap.Root())
			if len(labels) == 0 {
				fmt.Println("no labels found")
				return nil
			}
			for _, l := range labels {
				fmt.Printf("%-30s %-8s %s\n", l.Name, l.Type, l.State)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "Page URL the capture was taken from")
	return cmd
}
