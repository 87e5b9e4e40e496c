package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ajramos/labelpanel/internal/dom"
	"github.com/ajramos/labelpanel/internal/store"
)

// loadSnapshot parses a captured Gmail page from a file, or stdin when the
// path is "-".
func loadSnapshot(path, pageURL string) (*dom.Snapshot, error) {
	if path == "-" {
		return dom.Parse(os.Stdin, pageURL)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()
	return dom.Parse(f, pageURL)
}

// openOverrides opens the override store and loads the override set.
func openOverrides(ctx context.Context, storePath string) (*store.Store, *store.Overrides, error) {
	st, err := store.Open(ctx, storePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open override store: %w", err)
	}
	ov, err := store.Load(ctx, st, logger)
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("load overrides: %w", err)
	}
	return st, ov, nil
}
