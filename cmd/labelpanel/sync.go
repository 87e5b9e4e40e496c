package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajramos/labelpanel/internal/catalog"
	"github.com/ajramos/labelpanel/internal/dom"
	"github.com/ajramos/labelpanel/internal/observer"
	"github.com/ajramos/labelpanel/internal/store"
)

func newSyncCmd() *cobra.Command {
	var pageURL, storePath string
	var wait bool

	cmd := &cobra.Command{
		Use:   "sync <capture.html>",
		Short: "Apply stored overrides to a captured sidebar tree",
		Long: `Run the sidebar synchronization pass over a captured Gmail page:
rewrite label nodes to their custom display names and reorder siblings
to match the stored per-group sequences, then print the rewritten
document. The mutation settle window honors observer.debounce_ms.

With --wait the capture file is re-read at observer.ready_poll_ms
intervals until the Gmail main region appears, up to
observer.ready_timeout_ms, which covers captures still being streamed
to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var snap *dom.Snapshot
			var err error
			if wait {
				if args[0] == "-" {
					return fmt.Errorf("--wait requires a capture file, not stdin")
				}
				snap = dom.WaitReady(ctx, func(context.Context) (*dom.Snapshot, error) {
					return loadSnapshot(args[0], pageURL)
				}, cfg.ReadyPoll(), cfg.ReadyTimeout())
				if snap == nil {
					return fmt.Errorf("capture %s never became readable", args[0])
				}
			} else {
				snap, err = loadSnapshot(args[0], pageURL)
				if err != nil {
					return err
				}
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

			obs := observer.New(scanner,
				func() *store.Overrides { return ov },
				nil, cfg.Debounce(), logger)
			defer obs.Close()
			obs.Attach(snap.Root())

			out, err := snap.HTML()
			if err != nil {
				return fmt.Errorf("serialize document: %w", err)
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "Page URL the capture was taken from")
	cmd.Flags().StringVar(&storePath, "store", "", "Override database path")
	cmd.Flags().BoolVar(&wait, "wait", false, "Poll the capture until the Gmail main region appears")
	return cmd
}
