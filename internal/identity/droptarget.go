package identity

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/ajramos/labelpanel/internal/dom"
)

// Gmail renders "the message under the pointer" in at least three DOM
// shapes: a list row, a split-pane reading view carrying message-id data
// attributes, and a full-thread view where only the URL hash identifies the
// conversation. Each selector below covers one shape.
const (
	rowSelector       = `tr[role="row"], div[role="row"]`
	messageIDSelector = `[data-message-id], [data-legacy-message-id]`
	mainSelector      = `div[role="main"]`
)

// DropTarget finds the nearest element that can act as the destination of a
// label drop, starting from the pointer event's target. Returns nil when
// nothing applicable is found.
func (r *Resolver) DropTarget(target *goquery.Selection, snap *dom.Snapshot) *goquery.Selection {
	if target != nil {
		if row := target.Closest(rowSelector); row.Length() > 0 {
			return row
		}
		// Split-pane reading view: no row, but the pane carries the ID
		if pane := target.Closest(messageIDSelector); pane.Length() > 0 {
			return pane
		}
	}
	// Full thread view: the hash names the open conversation, so the main
	// region as a whole is an acceptable target.
	if snap != nil && hashHexRe.MatchString(snap.Hash()) {
		if main := snap.Find(mainSelector).First(); main.Length() > 0 {
			return main
		}
	}
	return nil
}
