package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajramos/labelpanel/internal/dom"
	"github.com/ajramos/labelpanel/internal/panel"
)

func newQueryCmd() *cobra.Command {
	var orMode, andMode bool
	var pageURL string

	cmd := &cobra.Command{
		Use:   "query <label>...",
		Short: "Compose a Gmail search query from label names",
		Long: `Compose the search query the panel issues for a set of selected labels.
Labels combine per the configured panel.query_mode ("and" unless set);
--or and --and override it for one invocation. With --url the full
search navigation URL is printed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := panel.ModeAnd
			if strings.EqualFold(cfg.Panel.QueryMode, "or") {
				mode = panel.ModeOr
			}
			switch {
			case orMode:
				mode = panel.ModeOr
			case andMode:
				mode = panel.ModeAnd
			}
			q := panel.BuildQuery(args, mode)
			if pageURL != "" {
				fmt.Println(dom.SearchURL(pageURL, q))
				return nil
			}
			fmt.Println(q)
			return nil
		},
	}

	cmd.Flags().BoolVar(&orMode, "or", false, "Combine labels with OR regardless of configuration")
	cmd.Flags().BoolVar(&andMode, "and", false, "Combine labels with AND regardless of configuration")
	cmd.Flags().StringVar(&pageURL, "url", "", "Print the search URL for this page URL's account")
	return cmd
}
