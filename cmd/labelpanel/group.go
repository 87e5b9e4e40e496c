package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGroupCmd() *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage label groups in the override store",
	}
	cmd.PersistentFlags().StringVar(&storePath, "store", "", "Override database path")

	list := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, ov, err := openOverrides(ctx, getStorePath(storePath))
			if err != nil {
				return err
			}
			defer st.Close()
			for _, g := range ov.Groups {
				fmt.Printf("%s  %s\n", g.ID, g.Name)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, ov, err := openOverrides(ctx, getStorePath(storePath))
			if err != nil {
				return err
			}
			defer st.Close()
			g := ov.AddGroup(args[0])
			if err := ov.Save(ctx, st); err != nil {
				return err
			}
			fmt.Printf("created group %s (%s)\n", g.Name, g.ID)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <group-id>",
		Short: "Delete a group; its labels return to Ungrouped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, ov, err := openOverrides(ctx, getStorePath(storePath))
			if err != nil {
				return err
			}
			defer st.Close()
			if !ov.DeleteGroup(args[0]) {
				return fmt.Errorf("no such group: %s", args[0])
			}
			return ov.Save(ctx, st)
		},
	}

	rename := &cobra.Command{
		Use:   "rename <group-id> <name>",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, ov, err := openOverrides(ctx, getStorePath(storePath))
			if err != nil {
				return err
			}
			defer st.Close()
			if !ov.RenameGroup(args[0], args[1]) {
				return fmt.Errorf("no such group: %s", args[0])
			}
			return ov.Save(ctx, st)
		},
	}

	var position int
	assign := &cobra.Command{
		Use:   "assign <label-id> <group-id>",
		Short: "Assign a label to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, ov, err := openOverrides(ctx, getStorePath(storePath))
			if err != nil {
				return err
			}
			defer st.Close()
			// An unknown group would be silently dropped on the next load;
			// catch the typo here instead
			if !ov.HasGroup(args[1]) {
				return fmt.Errorf("no such group: %s", args[1])
			}
			ov.AssignToGroup(args[0], args[1], position)
			return ov.Save(ctx, st)
		},
	}
	assign.Flags().IntVar(&position, "position", -1, "Insert position within the group (-1 appends)")

	cmd.AddCommand(list, add, rm, rename, assign)
	return cmd
}
