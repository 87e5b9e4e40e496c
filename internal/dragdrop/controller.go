package dragdrop

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/ajramos/labelpanel/internal/dom"
	"github.com/ajramos/labelpanel/internal/identity"
)

// Drag payload MIME types, set at drag-start on the panel chip and read at
// drop. Foreign drags (text, files) never carry these and are ignored.
const (
	MimeLabelID   = "application/x-labelpanel-label-id"
	MimeLabelName = "application/x-labelpanel-label-name"
)

// HighlightClass marks the currently hovered drop target.
const HighlightClass = "lp-drag-over"

// Payload carries the drag data by MIME type.
type Payload map[string]string

// Notifier surfaces user-visible feedback; the toast UI implements it.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Applier dispatches the asynchronous apply-label request to the background
// collaborator.
type Applier interface {
	ApplyLabel(ctx context.Context, accountKey, messageID, labelID string) error
}

// ApplyOutcome names the optimistic-apply transitions: the UI shows success
// at Pending, and Corrected retracts it on the rare failure path.
type ApplyOutcome string

const (
	ApplyPending   ApplyOutcome = "pending"
	ApplyConfirmed ApplyOutcome = "confirmed"
	ApplyCorrected ApplyOutcome = "corrected"
)

// Controller sequences the pointer/drag lifecycle for dropping a label chip
// onto an email: Idle → DraggingOverCandidate → (Dropped | LeftCandidate).
// The only state it owns between events is the highlighted target.
type Controller struct {
	resolver   *identity.Resolver
	applier    Applier
	notifier   Notifier
	accountKey func() string
	refresh    func() // post-success host view refresh (hash round-trip)
	logger     *log.Logger

	// OnResult observes apply transitions; nil outside tests.
	OnResult func(ApplyOutcome)

	highlighted *goquery.Selection
	inflight    sync.WaitGroup
}

// NewController wires the drag-drop controller. notifier and refresh may be
// nil; accountKey must return the key of the account the page belongs to.
func NewController(resolver *identity.Resolver, applier Applier, notifier Notifier, accountKey func() string, refresh func(), logger *log.Logger) *Controller {
	if accountKey == nil {
		accountKey = func() string { return "0" }
	}
	return &Controller{
		resolver:   resolver,
		applier:    applier,
		notifier:   notifier,
		accountKey: accountKey,
		refresh:    refresh,
		logger:     logger,
	}
}

// DragOverEvent is a dragover on the host document.
type DragOverEvent struct {
	Types    []string
	Target   *goquery.Selection
	Snapshot *dom.Snapshot
}

// DragOver hit-tests the pointer position against the live DOM and moves the
// highlight. It reports whether the drop should be allowed (the caller's cue
// to preventDefault and show the copy cursor).
func (c *Controller) DragOver(ev DragOverEvent) bool {
	if !hasType(ev.Types, MimeLabelID) {
		return false
	}
	target := c.resolver.DropTarget(ev.Target, ev.Snapshot)
	if target == nil || target.Length() == 0 {
		c.clearHighlight()
		return false
	}
	if !sameNode(target, c.highlighted) {
		c.clearHighlight()
		c.highlighted = target
		target.AddClass(HighlightClass)
	}
	return true
}

// DragLeaveEvent is a dragleave; Related is the element the pointer moved to.
type DragLeaveEvent struct {
	Related *goquery.Selection
}

// DragLeave clears the highlight only when the pointer actually left the
// highlighted target; moving between its child nodes, or from a child back
// onto the target itself, keeps the highlight to avoid flicker.
func (c *Controller) DragLeave(ev DragLeaveEvent) {
	if c.highlighted == nil {
		return
	}
	if ev.Related != nil && len(ev.Related.Nodes) > 0 {
		// Inclusive containment: the target counts as inside itself
		if sameNode(ev.Related, c.highlighted) || c.highlighted.Contains(ev.Related.Nodes[0]) {
			return
		}
	}
	c.clearHighlight()
}

// DropEvent is a drop on the host document.
type DropEvent struct {
	Payload  Payload
	Snapshot *dom.Snapshot
}

// Drop turns a successful drop into an asynchronous apply-label request.
// With no highlighted target the event is a complete no-op. The success
// indication is optimistic: shown before the call resolves, corrected by a
// follow-up notification if it fails.
func (c *Controller) Drop(ctx context.Context, ev DropEvent) {
	if c.highlighted == nil {
		return
	}
	labelID := ev.Payload[MimeLabelID]
	labelName := ev.Payload[MimeLabelName]
	if labelID == "" {
		return
	}

	messageID := c.resolver.Resolve(c.highlighted, ev.Snapshot)
	// Visual feedback is synchronous even though the apply is async
	c.clearHighlight()

	if messageID == "" {
		c.failure("Could not identify message")
		return
	}

	c.success(fmt.Sprintf("Applying label %q...", labelName))
	c.result(ApplyPending)

	account := c.accountKey()
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		if err := c.applier.ApplyLabel(ctx, account, messageID, labelID); err != nil {
			c.logf("dragdrop: apply %q to %s failed: %v", labelName, messageID, err)
			c.failure(fmt.Sprintf("Failed to apply %q: %v", labelName, err))
			c.result(ApplyCorrected)
			return
		}
		c.success(fmt.Sprintf("Label %q applied", labelName))
		c.result(ApplyConfirmed)
		if c.refresh != nil {
			c.refresh()
		}
	}()
}

// Wait blocks until in-flight apply requests finish. Drops are independent
// requests; this exists for orderly shutdown and tests.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) clearHighlight() {
	if c.highlighted != nil {
		c.highlighted.RemoveClass(HighlightClass)
		c.highlighted = nil
	}
}

func (c *Controller) result(outcome ApplyOutcome) {
	if c.OnResult != nil {
		c.OnResult(outcome)
	}
}

func (c *Controller) success(msg string) {
	if c.notifier != nil {
		c.notifier.Success(msg)
	}
}

func (c *Controller) failure(msg string) {
	if c.notifier != nil {
		c.notifier.Failure(msg)
	}
}

func (c *Controller) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func sameNode(a, b *goquery.Selection) bool {
	if a == nil || b == nil || len(a.Nodes) == 0 || len(b.Nodes) == 0 {
		return false
	}
	return a.Nodes[0] == b.Nodes[0]
}
