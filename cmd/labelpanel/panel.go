package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajramos/labelpanel/internal/catalog"
	"github.com/ajramos/labelpanel/internal/panel"
)

func newPanelCmd() *cobra.Command {
	var pageURL, storePath, filter string
	var expanded bool

	cmd := &cobra.Command{
		Use:   "panel <capture.html>",
		Short: "Build the grouped panel view for a captured Gmail page",
		Long: `Scan the sidebar of a captured Gmail page, apply the stored overrides
(custom names, hidden labels, groups and ordering) and print the
resulting grouped panel view. When the panel is collapsed, either by
the persisted toggle or by panel.start_collapsed in the configuration,
only a summary is printed; pass --expanded to list labels anyway.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			snap, err := loadSnapshot(args[0], pageURL)
			if err != nil {
				return err
			}
			scanner, err := catalog.NewScanner(nil, logger)
			if err != nil {
				return err
			}
			st, ov, err := openOverrides(ctx, getStorePath(storePath))
			if err != nil {
				return err
			}
			defer st.Close()

			view := panel.BuildView(scanner.ScanSidebar(snap.Root()), ov, filter, nil)
			if len(view) == 0 {
				fmt.Println("no labels to show")
				return nil
			}
			if !expanded && (ov.PanelCollapsed || cfg.Panel.StartCollapsed) {
				total := 0
				for _, g := range view {
					total += len(g.Labels)
				}
				fmt.Printf("panel collapsed: %d labels in %d groups\n", total, len(view))
				return nil
			}
			for _, g := range view {
				fmt.Printf("%s\n", g.Name)
				for _, l := range g.Labels {
					if l.DisplayName != l.Name {
						fmt.Printf("  %s (%s)\n", l.DisplayName, l.Name)
						continue
					}
					fmt.Printf("  %s\n", l.DisplayName)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "Page URL the capture was taken from")
	cmd.Flags().StringVar(&storePath, "store", "", "Override database path")
	cmd.Flags().StringVar(&filter, "filter", "", "Filter labels by name substring")
	cmd.Flags().BoolVar(&expanded, "expanded", false, "List labels even when the panel is collapsed")
	return cmd
}
