package main

import (
	"github.com/spf13/cobra"
)

func newRenameCmd() *cobra.Command {
	var storePath string
	var clear bool

	cmd := &cobra.Command{
		Use:   "rename <real-name> [custom-name]",
		Short: "Set or clear a label's custom display name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, ov, err := openOverrides(ctx, getStorePath(storePath))
			if err != nil {
				return err
			}
			defer st.Close()

			custom := ""
			if len(args) == 2 {
				custom = args[1]
			}
			if clear {
				custom = ""
			}
			ov.SetDisplayName(args[0], custom)
			return ov.Save(ctx, st)
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "Override database path")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the custom name, restoring the real one")
	return cmd
}

func newHideCmd() *cobra.Command {
	var storePath string
	var show bool

	cmd := &cobra.Command{
		Use:   "hide <real-name>",
		Short: "Hide a label from the panel (or unhide with --show)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, ov, err := openOverrides(ctx, getStorePath(storePath))
			if err != nil {
				return err
			}
			defer st.Close()

			ov.SetHidden(args[0], !show)
			return ov.Save(ctx, st)
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "Override database path")
	cmd.Flags().BoolVar(&show, "show", false, "Unhide instead of hide")
	return cmd
}
